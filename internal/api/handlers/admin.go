package handlers

import (
	"net/http"

	"alertwatch/internal/api/dto/common"
	userdto "alertwatch/internal/api/dto/v1/user"
	"alertwatch/internal/api/mapper"
	"alertwatch/internal/models"
	"alertwatch/internal/service"
	"alertwatch/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	users  *service.UserService
	mapper *mapper.UserMapper
}

func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{
		users:  users,
		mapper: mapper.NewUserMapper(),
	}
}

// SetRole handles POST /admin/role. superadmin is never assignable.
func (h *AdminHandler) SetRole(c *gin.Context) {
	var req userdto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, err.Error(), nil))
		return
	}

	if err := h.users.SetRole(c.Request.Context(), req.TargetUID, models.Role(req.Role)); err != nil {
		utils.HandleServiceError(c, err, "Failed to set role")
		return
	}
	utils.HandleMessage(c, "Role updated")
}

// UpdateUser handles POST /admin/user: a merge-patch of role, status and
// assigned regions.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req userdto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, err.Error(), nil))
		return
	}

	updates := service.AdminUserUpdates{
		AssignedRegions: req.Updates.AssignedRegions,
	}
	if req.Updates.Role != nil {
		role := models.Role(*req.Updates.Role)
		updates.Role = &role
	}
	if req.Updates.Status != nil {
		status := models.UserStatus(*req.Updates.Status)
		updates.Status = &status
	}

	if err := h.users.Update(c.Request.Context(), req.TargetUID, updates); err != nil {
		utils.HandleServiceError(c, err, "Failed to update user")
		return
	}
	utils.HandleMessage(c, "User updated")
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list users")
		return
	}
	utils.HandleSuccess(c, h.mapper.ToListResponse(users))
}
