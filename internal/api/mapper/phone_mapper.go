package mapper

import (
	"time"

	"alertwatch/internal/api/dto/v1/phone"
	"alertwatch/internal/models"
)

// PhoneMapper converts phone registration models to API responses.
type PhoneMapper struct{}

func NewPhoneMapper() *PhoneMapper {
	return &PhoneMapper{}
}

// ToResponse converts a single registration to its API representation.
func (m *PhoneMapper) ToResponse(p *models.RegisteredPhone) phone.Response {
	resp := phone.Response{
		ID:          p.ID,
		OwnerUID:    p.OwnerUID,
		Name:        p.Name,
		PhoneNumber: p.PhoneNumber,
		Categories:  p.Categories,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	if p.HomeLocation != nil {
		resp.HomeLocation = &phone.GeoPoint{
			Latitude:  p.HomeLocation.Latitude,
			Longitude: p.HomeLocation.Longitude,
			Address:   p.HomeLocation.Address,
		}
	}
	return resp
}

// ToListResponse converts a slice of registrations to a list response.
func (m *PhoneMapper) ToListResponse(phones []*models.RegisteredPhone) phone.ListResponse {
	responses := make([]phone.Response, 0, len(phones))
	for _, p := range phones {
		responses = append(responses, m.ToResponse(p))
	}
	return phone.ListResponse{
		Phones:     responses,
		TotalCount: len(responses),
	}
}

// ToHomeLocation converts the request geo point to the stored model.
func (m *PhoneMapper) ToHomeLocation(g *phone.GeoPoint) *models.GeoPoint {
	if g == nil {
		return nil
	}
	return &models.GeoPoint{
		Latitude:  g.Latitude,
		Longitude: g.Longitude,
		Address:   g.Address,
	}
}
