package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"alertwatch/internal/api/dto/common"
	alertdto "alertwatch/internal/api/dto/v1/alert"
	"alertwatch/internal/api/mapper"
	"alertwatch/internal/api/middleware"
	"alertwatch/internal/models"
	"alertwatch/internal/repository"
	"alertwatch/internal/service"
	"alertwatch/internal/utils"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alerts *service.AlertService
	mapper *mapper.AlertMapper
}

func NewAlertHandler(alerts *service.AlertService) *AlertHandler {
	return &AlertHandler{
		alerts: alerts,
		mapper: mapper.NewAlertMapper(),
	}
}

// Create handles POST /alerts.
func (h *AlertHandler) Create(c *gin.Context) {
	var req alertdto.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, err.Error(), nil))
		return
	}

	creatorUID := ""
	if principal, ok := middleware.PrincipalFromContext(c); ok {
		creatorUID = principal.UID
	}

	alert, err := h.alerts.Create(c.Request.Context(), service.CreateAlertInput{
		Type:            models.AlertType(req.Type),
		Title:           req.Title,
		Description:     req.Description,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		LocationName:    req.LocationName,
		LocationState:   req.LocationState,
		LocationCountry: req.LocationCountry,
		TTLMinutes:      req.TTLMinutes,
	}, creatorUID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to create alert")
		return
	}

	utils.HandleCreated(c, alertdto.CreatedResponse{ID: alert.ID})
}

// List handles GET /alerts: the full history, narrowed to the acting admin's
// assigned regions and then to the query filters.
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.alerts.ListHistory(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list alerts")
		return
	}

	resolution, _ := middleware.ResolutionFromContext(c)
	alerts = service.FilterVisible(alerts, resolution)

	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, err.Error(), nil))
		return
	}
	alerts = filter.Apply(alerts, time.Now())

	utils.HandleSuccess(c, h.mapper.ToListResponse(alerts))
}

// ListActive handles GET /alerts/active: the public live map view.
func (h *AlertHandler) ListActive(c *gin.Context) {
	alerts, err := h.alerts.ListActive(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list active alerts")
		return
	}
	utils.HandleSuccess(c, h.mapper.ToListResponse(alerts))
}

// ListMine handles GET /alerts/mine.
func (h *AlertHandler) ListMine(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
		return
	}

	alerts, err := h.alerts.ListByCreator(c.Request.Context(), principal.UID)
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to list alerts")
		return
	}
	utils.HandleSuccess(c, h.mapper.ToListResponse(alerts))
}

// Get handles GET /alerts/:id.
func (h *AlertHandler) Get(c *gin.Context) {
	alert, err := h.alerts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to load alert")
		return
	}
	utils.HandleSuccess(c, h.mapper.ToResponse(alert))
}

// Resolve handles POST /alerts/:id/resolve.
func (h *AlertHandler) Resolve(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)
	actorUID := ""
	if principal != nil {
		actorUID = principal.UID
	}

	if err := h.alerts.Resolve(c.Request.Context(), c.Param("id"), actorUID); err != nil {
		utils.HandleServiceError(c, err, "Failed to resolve alert")
		return
	}
	utils.HandleMessage(c, "Alert resolved")
}

// MarkFalse handles POST /alerts/:id/false.
func (h *AlertHandler) MarkFalse(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)
	actorUID := ""
	if principal != nil {
		actorUID = principal.UID
	}

	if err := h.alerts.MarkFalse(c.Request.Context(), c.Param("id"), actorUID); err != nil {
		utils.HandleServiceError(c, err, "Failed to flag alert")
		return
	}
	utils.HandleMessage(c, "Alert flagged as false")
}

// Vote handles POST /alerts/:id/vote.
func (h *AlertHandler) Vote(c *gin.Context) {
	var req alertdto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, err.Error(), nil))
		return
	}

	if err := h.alerts.Vote(c.Request.Context(), c.Param("id"), models.VoteDirection(req.Direction)); err != nil {
		utils.HandleServiceError(c, err, "Failed to record vote")
		return
	}
	utils.HandleMessage(c, "Vote recorded")
}

// StreamActive handles GET /alerts/stream: a server-sent event stream of the
// live map view. Each event carries the full current set of active alerts;
// clients replace prior state on every event.
func (h *AlertHandler) StreamActive(c *gin.Context) {
	sub, err := h.alerts.WatchActive(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to open alert stream")
		return
	}
	h.streamAlerts(c, sub)
}

// StreamHistory handles GET /alerts/history/stream: the full collection,
// terminal and expired alerts included.
func (h *AlertHandler) StreamHistory(c *gin.Context) {
	sub, err := h.alerts.WatchHistory(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err, "Failed to open alert stream")
		return
	}
	h.streamAlerts(c, sub)
}

func (h *AlertHandler) streamAlerts(c *gin.Context, sub *repository.Subscription[models.Alert]) {
	defer sub.Cancel()

	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case alerts, ok := <-sub.Updates():
			if !ok {
				return false
			}
			refs := make([]*models.Alert, len(alerts))
			for i := range alerts {
				refs[i] = &alerts[i]
			}
			c.SSEvent("alerts", h.mapper.ToListResponse(refs))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// filterFromQuery builds an alert filter from the request's query parameters.
func filterFromQuery(c *gin.Context) (service.AlertFilter, error) {
	filter := service.AlertFilter{
		Type:    models.AlertType(c.Query("type")),
		Status:  c.Query("status"),
		Country: c.Query("country"),
		State:   c.Query("state"),
		Name:    c.Query("name"),
	}

	for _, bound := range []struct {
		key  string
		dest **float64
	}{
		{"minLat", &filter.MinLat},
		{"maxLat", &filter.MaxLat},
		{"minLng", &filter.MinLng},
		{"maxLng", &filter.MaxLng},
	} {
		raw := c.Query(bound.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, err
		}
		*bound.dest = &v
	}

	return filter, nil
}
