package handlers

import (
	"net/http"

	"alertwatch/internal/api/dto/common"
	smsdto "alertwatch/internal/api/dto/v1/sms"
	"alertwatch/internal/api/middleware"
	"alertwatch/internal/service"
	"alertwatch/internal/utils"

	"github.com/gin-gonic/gin"
)

type SMSHandler struct {
	sms   *service.SMSService
	roles *service.RoleService
}

func NewSMSHandler(sms *service.SMSService, roles *service.RoleService) *SMSHandler {
	return &SMSHandler{sms: sms, roles: roles}
}

// Send handles POST /sms. Allowed for admins and for the configured
// superadmin email even when its stored role lags behind.
func (h *SMSHandler) Send(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
		return
	}

	resolution, _ := middleware.ResolutionFromContext(c)
	allowed := (resolution != nil && resolution.IsAdmin) || h.roles.IsSuperadminEmail(principal.Email)
	if !allowed {
		c.JSON(http.StatusForbidden, common.NewErrorResponse(common.ErrCodeForbidden, "Admin access required", nil))
		return
	}

	var req smsdto.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, err.Error(), nil))
		return
	}

	result, err := h.sms.Send(c.Request.Context(), "", req.PhoneNumbers, req.Message)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to send notifications")
		return
	}

	utils.HandleSuccess(c, result)
}
