package handlers

import (
	"io"
	"net/http"

	"alertwatch/internal/api/dto/common"
	phonedto "alertwatch/internal/api/dto/v1/phone"
	"alertwatch/internal/api/mapper"
	"alertwatch/internal/api/middleware"
	"alertwatch/internal/models"
	"alertwatch/internal/service"
	"alertwatch/internal/utils"

	"github.com/gin-gonic/gin"
)

type PhoneHandler struct {
	phones *service.PhoneService
	mapper *mapper.PhoneMapper
}

func NewPhoneHandler(phones *service.PhoneService) *PhoneHandler {
	return &PhoneHandler{
		phones: phones,
		mapper: mapper.NewPhoneMapper(),
	}
}

// Register handles POST /phones.
func (h *PhoneHandler) Register(c *gin.Context) {
	var req phonedto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, err.Error(), nil))
		return
	}

	ownerUID := ""
	if principal, ok := middleware.PrincipalFromContext(c); ok {
		ownerUID = principal.UID
	}

	phone, err := h.phones.Register(c.Request.Context(), ownerUID, service.RegisterPhoneInput{
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
		HomeLocation: h.mapper.ToHomeLocation(req.HomeLocation),
		Categories:   req.Categories,
	})
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to register phone")
		return
	}

	utils.HandleCreated(c, phonedto.CreatedResponse{ID: phone.ID})
}

// List handles GET /phones: the caller's own registrations.
func (h *PhoneHandler) List(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
		return
	}

	phones, err := h.phones.ListMine(c.Request.Context(), principal.UID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list phones")
		return
	}
	utils.HandleSuccess(c, h.mapper.ToListResponse(phones))
}

// StreamMine handles GET /phones/stream: a server-sent event stream of the
// caller's registrations. Each event is the full current set.
func (h *PhoneHandler) StreamMine(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
		return
	}

	sub, err := h.phones.WatchMine(c.Request.Context(), principal.UID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to open phone stream")
		return
	}
	defer sub.Cancel()

	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case phones, ok := <-sub.Updates():
			if !ok {
				return false
			}
			refs := make([]*models.RegisteredPhone, len(phones))
			for i := range phones {
				refs[i] = &phones[i]
			}
			c.SSEvent("phones", h.mapper.ToListResponse(refs))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Update handles PATCH /phones/:id.
func (h *PhoneHandler) Update(c *gin.Context) {
	var req phonedto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, err.Error(), nil))
		return
	}

	var home *models.GeoPoint
	if req.HomeLocation != nil {
		home = h.mapper.ToHomeLocation(req.HomeLocation)
	}

	err := h.phones.Update(c.Request.Context(), c.Param("id"), service.UpdatePhoneInput{
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
		HomeLocation: home,
		Categories:   req.Categories,
		IsActive:     req.IsActive,
	})
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to update phone")
		return
	}
	utils.HandleMessage(c, "Phone updated")
}

// Deactivate handles DELETE /phones/:id. The registration is retained with
// isActive=false; nothing is removed from storage.
func (h *PhoneHandler) Deactivate(c *gin.Context) {
	if err := h.phones.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err, "Failed to deactivate phone")
		return
	}
	utils.HandleMessage(c, "Phone deactivated")
}
