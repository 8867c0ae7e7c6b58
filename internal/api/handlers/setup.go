package handlers

import (
	"net/http"

	"alertwatch/internal/api/dto/common"
	userdto "alertwatch/internal/api/dto/v1/user"
	"alertwatch/internal/config/firebase"
	"alertwatch/internal/service"
	"alertwatch/internal/utils"

	"github.com/gin-gonic/gin"
)

type SetupHandler struct {
	users *service.UserService
}

func NewSetupHandler(users *service.UserService) *SetupHandler {
	return &SetupHandler{users: users}
}

// Setup handles POST /setup: creates the identity-provider account and the
// initial admin record. Only legal while no user records exist; the
// pre-check keeps a rejected setup from leaving an orphaned auth account.
func (h *SetupHandler) Setup(c *gin.Context) {
	var req userdto.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, err.Error(), nil))
		return
	}

	required, err := h.users.SetupRequired(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to check setup state")
		return
	}
	if !required {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeBadRequest, "Setup has already been completed", nil))
		return
	}

	authUser, err := firebase.CreateUser(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to create admin account")
		return
	}

	record, err := h.users.Bootstrap(c.Request.Context(), authUser.UID, req.Email, req.DisplayName)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to complete setup")
		return
	}

	utils.HandleCreated(c, userdto.SetupResponse{
		UID:     record.UID,
		Message: "Initial admin created",
	})
}
