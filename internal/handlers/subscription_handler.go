package handlers

import (
	"net/http"

	"gymdesk_backend/internal/services"
	"gymdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	subscriptions := r.Group("/subscriptions")
	{
		subscriptions.GET("", h.ListSubscriptions)
		subscriptions.POST("", h.CreateSubscription)
		subscriptions.PATCH("/:subscriptionId/cancel", h.CancelSubscription)
	}

	plans := r.Group("/plans")
	{
		plans.GET("", h.ListPlans)
		plans.POST("", h.CreatePlan)
		plans.DELETE("/:planId", h.DeletePlan)
	}
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	subscriptions, err := h.subscriptionService.List(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subscriptions)
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	subscription, err := h.subscriptionService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subscription)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	subscriptionID := c.Param("subscriptionId")

	if err := h.subscriptionService.Cancel(c.Request.Context(), actor, subscriptionID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}

// --- Membership plans ---

func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	plans, err := h.subscriptionService.ListPlans(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

func (h *SubscriptionHandler) CreatePlan(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	var req dto.CreatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	plan, err := h.subscriptionService.CreatePlan(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *SubscriptionHandler) DeletePlan(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	planID := c.Param("planId")

	if err := h.subscriptionService.DeletePlan(c.Request.Context(), actor, planID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}
