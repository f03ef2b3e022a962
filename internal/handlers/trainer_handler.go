package handlers

import (
	"net/http"

	"gymdesk_backend/internal/services"
	"gymdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TrainerHandler struct {
	*BaseHandler
	trainerService services.TrainerService
}

func NewTrainerHandler(base *BaseHandler, trainerService services.TrainerService) *TrainerHandler {
	return &TrainerHandler{
		BaseHandler:    base,
		trainerService: trainerService,
	}
}

func (h *TrainerHandler) RegisterRoutes(r *gin.RouterGroup) {
	trainers := r.Group("/trainers")
	{
		trainers.GET("", h.ListTrainers)
		trainers.POST("", h.CreateTrainer)
		trainers.PUT("/:trainerId", h.UpdateTrainer)
		trainers.PATCH("/:trainerId/status", h.ToggleTrainerStatus)
		trainers.DELETE("/:trainerId", h.DeleteTrainer)
	}

	specializations := r.Group("/specializations")
	{
		specializations.GET("", h.ListSpecializations)
		specializations.DELETE("", h.DeleteSpecialization)
	}
}

func (h *TrainerHandler) ListTrainers(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	trainers, err := h.trainerService.List(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, trainers)
}

// CreateTrainer godoc
// @Summary Create a trainer
// @Description Creates an identity, a profile and a trainer record with its specializations
// @Tags trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainer body dto.CreateTrainerRequest true "Trainer data"
// @Success 201 {object} dto.CreateTrainerResponse
// @Failure 400 {object} apperrors.AppError "Validation failed"
// @Failure 409 {object} apperrors.AppError "Email already registered"
// @Router /trainers [post]
func (h *TrainerHandler) CreateTrainer(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	var req dto.CreateTrainerRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.trainerService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *TrainerHandler) UpdateTrainer(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	trainerID := c.Param("trainerId")

	var req dto.UpdateTrainerRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.trainerService.Update(c.Request.Context(), actor, trainerID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trainer updated"})
}

func (h *TrainerHandler) ToggleTrainerStatus(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	trainerID := c.Param("trainerId")

	isActive, err := h.trainerService.ToggleStatus(c.Request.Context(), actor, trainerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleStatusResponse{IsActive: isActive})
}

func (h *TrainerHandler) DeleteTrainer(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	trainerID := c.Param("trainerId")

	if err := h.trainerService.Delete(c.Request.Context(), actor, trainerID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trainer deleted"})
}

// --- Specialization catalog ---

func (h *TrainerHandler) ListSpecializations(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	names, err := h.trainerService.ListSpecializations(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"specializations": names})
}

func (h *TrainerHandler) DeleteSpecialization(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	var req dto.DeleteSpecializationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	removed, err := h.trainerService.DeleteSpecialization(c.Request.Context(), actor, req.Name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
