package handlers

import (
	"net/http"

	"gymdesk_backend/internal/services"
	"gymdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	*BaseHandler
	memberService services.MemberService
}

func NewMemberHandler(base *BaseHandler, memberService services.MemberService) *MemberHandler {
	return &MemberHandler{
		BaseHandler:   base,
		memberService: memberService,
	}
}

func (h *MemberHandler) RegisterRoutes(r *gin.RouterGroup) {
	members := r.Group("/members")
	{
		members.GET("", h.ListMembers)
		members.POST("", h.CreateMember)
		members.PUT("/:memberId", h.UpdateMember)
		members.PATCH("/:memberId/status", h.ToggleMemberStatus)
		members.DELETE("/:memberId", h.DeleteMember)
	}
}

// ListMembers godoc
// @Summary List gym members
// @Description Returns the members of the caller's gym with profile and active subscription
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MemberRow
// @Failure 401 {object} apperrors.AppError
// @Router /members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	members, err := h.memberService.List(c.Request.Context(), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// CreateMember godoc
// @Summary Create a gym member
// @Description Creates an identity, a profile and a client record for a new member
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param member body dto.CreateMemberRequest true "Member data"
// @Success 201 {object} dto.CreateMemberResponse
// @Failure 400 {object} apperrors.AppError "Validation failed"
// @Failure 409 {object} apperrors.AppError "Email already registered"
// @Failure 503 {object} apperrors.AppError "Identity provider unavailable"
// @Router /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}

	var req dto.CreateMemberRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.memberService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	memberID := c.Param("memberId")

	var req dto.UpdateMemberRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.memberService.Update(c.Request.Context(), actor, memberID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member updated"})
}

func (h *MemberHandler) ToggleMemberStatus(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	memberID := c.Param("memberId")

	isActive, err := h.memberService.ToggleStatus(c.Request.Context(), actor, memberID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleStatusResponse{IsActive: isActive})
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	actor, ok := h.ResolveActor(c)
	if !ok {
		return
	}
	memberID := c.Param("memberId")

	if err := h.memberService.Delete(c.Request.Context(), actor, memberID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}
