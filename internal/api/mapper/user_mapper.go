package mapper

import (
	"time"

	"alertwatch/internal/api/dto/v1/user"
	"alertwatch/internal/models"
)

// UserMapper converts stored user records to API responses.
type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToResponse converts a single user record to its API representation.
func (m *UserMapper) ToResponse(u *models.UserRecord) user.Response {
	resp := user.Response{
		UID:             u.UID,
		Email:           u.Email,
		DisplayName:     u.DisplayName,
		Role:            string(u.Role),
		Status:          string(u.Status),
		AssignedRegions: u.AssignedRegions,
		CreatedAt:       u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       u.UpdatedAt.Format(time.RFC3339),
	}
	if resp.AssignedRegions == nil {
		resp.AssignedRegions = []string{}
	}
	return resp
}

// ToListResponse converts a slice of user records to a list response.
func (m *UserMapper) ToListResponse(users []*models.UserRecord) user.ListResponse {
	responses := make([]user.Response, 0, len(users))
	for _, u := range users {
		responses = append(responses, m.ToResponse(u))
	}
	return user.ListResponse{
		Users:      responses,
		TotalCount: len(responses),
	}
}
