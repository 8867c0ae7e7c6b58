package mapper

import (
	"time"

	"alertwatch/internal/api/dto/v1/alert"
	"alertwatch/internal/models"
)

// AlertMapper converts alert models to API responses.
type AlertMapper struct{}

func NewAlertMapper() *AlertMapper {
	return &AlertMapper{}
}

// ToResponse converts a single alert to its API representation.
func (m *AlertMapper) ToResponse(a *models.Alert) alert.Response {
	return alert.Response{
		ID:              a.ID,
		CreatorUID:      a.CreatorUID,
		Type:            string(a.Type),
		Title:           a.Title,
		Description:     a.Description,
		Latitude:        a.Latitude,
		Longitude:       a.Longitude,
		LocationName:    a.LocationName,
		LocationState:   a.LocationState,
		LocationCountry: a.LocationCountry,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		ExpiresAt:       formatOptionalTime(a.ExpiresAt),
		ResolvedAt:      formatOptionalTime(a.ResolvedAt),
		ResolvedBy:      a.ResolvedBy,
		FalseFlaggedAt:  formatOptionalTime(a.FalseFlaggedAt),
		FalseFlaggedBy:  a.FalseFlaggedBy,
		Upvotes:         a.Upvotes,
		Downvotes:       a.Downvotes,
	}
}

// ToListResponse converts a slice of alerts to a list response.
func (m *AlertMapper) ToListResponse(alerts []*models.Alert) alert.ListResponse {
	responses := make([]alert.Response, 0, len(alerts))
	for _, a := range alerts {
		responses = append(responses, m.ToResponse(a))
	}
	return alert.ListResponse{
		Alerts:     responses,
		TotalCount: len(responses),
	}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
