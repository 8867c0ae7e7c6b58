package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alertwatch/internal/models"
	"alertwatch/internal/repository"

	"github.com/google/uuid"
)

// RegisterPhoneInput is a new notification target.
type RegisterPhoneInput struct {
	Name         string
	PhoneNumber  string
	HomeLocation *models.GeoPoint
	Categories   []string
}

// UpdatePhoneInput is a merge-patch: only non-nil fields change.
type UpdatePhoneInput struct {
	Name         *string
	PhoneNumber  *string
	HomeLocation *models.GeoPoint
	Categories   []string
	IsActive     *bool
}

// PhoneService manages registered notification targets. Registrations are
// owned by the admin who created them and are soft-deleted only.
type PhoneService struct {
	phones repository.PhoneRepository
}

// NewPhoneService creates a new PhoneService instance
func NewPhoneService(phones repository.PhoneRepository) *PhoneService {
	return &PhoneService{phones: phones}
}

// Register stores a new phone registration, active on creation. The number
// is stored as provided; no format validation beyond non-empty.
func (s *PhoneService) Register(ctx context.Context, ownerUID string, input RegisterPhoneInput) (*models.RegisteredPhone, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: phone number is required", ErrValidation)
	}
	if ownerUID == "" {
		ownerUID = "admin"
	}

	categories := input.Categories
	if categories == nil {
		categories = []string{}
	}

	now := time.Now()
	phone := &models.RegisteredPhone{
		ID:           uuid.New().String(),
		OwnerUID:     ownerUID,
		Name:         input.Name,
		PhoneNumber:  input.PhoneNumber,
		HomeLocation: input.HomeLocation,
		Categories:   categories,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.phones.Create(ctx, phone); err != nil {
		return nil, err
	}
	return phone, nil
}

// Update applies a merge-patch. updatedAt is refreshed by the store even when
// nothing else changes.
func (s *PhoneService) Update(ctx context.Context, id string, input UpdatePhoneInput) error {
	if _, err := s.phones.Get(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.PhoneNumber != nil {
		updates["phoneNumber"] = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.HomeLocation != nil {
		updates["homeLocation"] = input.HomeLocation
	}
	if input.Categories != nil {
		updates["categories"] = input.Categories
	}
	if input.IsActive != nil {
		updates["isActive"] = *input.IsActive
	}

	return s.phones.Update(ctx, id, updates)
}

// Deactivate soft-deletes a registration. The record is retained for
// notification history.
func (s *PhoneService) Deactivate(ctx context.Context, id string) error {
	inactive := false
	return s.Update(ctx, id, UpdatePhoneInput{IsActive: &inactive})
}

// ListMine returns the caller's own registrations, newest first. The owner
// filter is applied over the full collection read, matching the store-side
// agnostic contract.
func (s *PhoneService) ListMine(ctx context.Context, ownerUID string) ([]*models.RegisteredPhone, error) {
	phones, err := s.phones.List(ctx)
	if err != nil {
		return nil, err
	}
	return filterByOwner(phones, ownerUID), nil
}

// WatchMine opens a live view of the caller's registrations.
func (s *PhoneService) WatchMine(ctx context.Context, ownerUID string) (*repository.Subscription[models.RegisteredPhone], error) {
	sub, err := s.phones.Watch(ctx)
	if err != nil {
		return nil, err
	}
	return repository.Transform(sub, func(phones []models.RegisteredPhone) []models.RegisteredPhone {
		if ownerUID == "" {
			return phones
		}
		out := make([]models.RegisteredPhone, 0, len(phones))
		for _, p := range phones {
			if p.OwnerUID == ownerUID {
				out = append(out, p)
			}
		}
		return out
	}), nil
}

func filterByOwner(phones []*models.RegisteredPhone, ownerUID string) []*models.RegisteredPhone {
	if ownerUID == "" {
		return phones
	}
	out := make([]*models.RegisteredPhone, 0, len(phones))
	for _, p := range phones {
		if p.OwnerUID == ownerUID {
			out = append(out, p)
		}
	}
	return out
}
