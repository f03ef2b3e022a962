package handlers

import (
	"net/http"

	"gymdesk_backend/internal/services"
	"gymdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ExerciseHandler struct {
	*BaseHandler
	exerciseService services.ExerciseService
}

func NewExerciseHandler(base *BaseHandler, exerciseService services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{
		BaseHandler:     base,
		exerciseService: exerciseService,
	}
}

func (h *ExerciseHandler) RegisterRoutes(r *gin.RouterGroup) {
	exercises := r.Group("/exercises")
	{
		exercises.GET("", h.ListExercises)
		exercises.POST("", h.CreateExercise)
		exercises.PUT("/:exerciseId", h.UpdateExercise)
		exercises.DELETE("/:exerciseId", h.DeleteExercise)
	}

	categories := r.Group("/exercise-categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:categoryId", h.UpdateCategory)
		categories.DELETE("/:categoryId", h.DeleteCategory)
	}
}

func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exercises)
}

func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	var req dto.CreateExerciseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	exerciseID := c.Param("exerciseId")

	var req dto.UpdateExerciseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.exerciseService.UpdateExercise(c.Request.Context(), actor, exerciseID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise updated"})
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	exerciseID := c.Param("exerciseId")

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), actor, exerciseID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted"})
}

// --- Categories ---

func (h *ExerciseHandler) ListCategories(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	categories, err := h.exerciseService.ListCategories(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *ExerciseHandler) CreateCategory(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	category, err := h.exerciseService.CreateCategory(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *ExerciseHandler) UpdateCategory(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	categoryID := c.Param("categoryId")

	var req dto.CreateCategoryRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.exerciseService.UpdateCategory(c.Request.Context(), actor, categoryID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

// DeleteCategory godoc
// @Summary Delete an exercise category
// @Description Removes the category and detaches its exercises; exercises are never deleted
// @Tags exercises
// @Produce json
// @Security BearerAuth
// @Param categoryId path string true "Category ID"
// @Success 200 {object} dto.DeleteCategoryResponse
// @Failure 404 {object} apperrors.AppError "Category not found"
// @Router /exercise-categories/{categoryId} [delete]
func (h *ExerciseHandler) DeleteCategory(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	categoryID := c.Param("categoryId")

	resp, err := h.exerciseService.DeleteCategory(c.Request.Context(), actor, categoryID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
