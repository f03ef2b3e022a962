package handlers

import (
	"net/http"

	"gymdesk_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ProvisionHandler struct {
	*BaseHandler
	provisionService services.ProvisionService
}

func NewProvisionHandler(base *BaseHandler, provisionService services.ProvisionService) *ProvisionHandler {
	return &ProvisionHandler{
		BaseHandler:      base,
		provisionService: provisionService,
	}
}

func (h *ProvisionHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin/provisions")
	{
		admin.GET("", h.ListProvisions)
		admin.POST("/reconcile", h.Reconcile)
	}
}

func (h *ProvisionHandler) ListProvisions(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	rows, err := h.provisionService.ListByState(c.Request.Context(), actor, c.Query("state"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// Reconcile godoc
// @Summary Reconcile stale provisioning attempts
// @Description Deletes identities orphaned by failed provisioning and heals markers that missed completion
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ReconcileResponse
// @Failure 403 {object} apperrors.AppError "Admin role required"
// @Router /admin/provisions/reconcile [post]
func (h *ProvisionHandler) Reconcile(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	resp, err := h.provisionService.Reconcile(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
