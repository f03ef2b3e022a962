package handlers

import (
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/middleware"
	"gymdesk_backend/internal/services"
	"gymdesk_backend/internal/validator"
	"gymdesk_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// BaseHandler carries the pieces every handler needs: request validation and
// actor resolution. Embedded by the concrete handlers.
type BaseHandler struct {
	validator     *validator.Validator
	tenantService services.TenantService
}

func NewBaseHandler(v *validator.Validator, tenantService services.TenantService) *BaseHandler {
	return &BaseHandler{
		validator:     v,
		tenantService: tenantService,
	}
}

func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ResolveActor maps the authenticated identity to its profile, tenant and
// role. Returns false with the error already written when the caller is
// unknown or the tenant is suspended.
func (h *BaseHandler) ResolveActor(c *gin.Context) (*services.Actor, bool) {
	ctx := c.Request.Context()

	identityID := middleware.GetIdentityID(c)
	actor, err := h.tenantService.ResolveActor(ctx, identityID)
	if err != nil {
		logger.CtxWarn(ctx, "Actor resolution failed",
			"identity_id", identityID,
			"path", c.Request.URL.Path,
		)
		h.HandleServiceError(c, err)
		return nil, false
	}

	ctx = logger.WithTenantID(ctx, actor.TenantID)
	c.Request = c.Request.WithContext(ctx)
	return actor, true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}
