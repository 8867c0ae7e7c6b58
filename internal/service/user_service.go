package service

import (
	"context"
	"fmt"
	"time"

	"alertwatch/internal/models"
	"alertwatch/internal/repository"
)

// AdminUserUpdates is the merge-patch accepted by the superadmin user
// endpoint. Nil fields are left untouched.
type AdminUserUpdates struct {
	Role            *models.Role
	Status          *models.UserStatus
	AssignedRegions []string
}

// UserService covers the superadmin-gated user administration operations and
// the one-time bootstrap of the first admin record.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService instance
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// SetRole assigns admin or user to the target record. superadmin is never
// assignable through the API.
func (s *UserService) SetRole(ctx context.Context, targetUID string, role models.Role) error {
	if targetUID == "" {
		return fmt.Errorf("%w: targetUid is required", ErrValidation)
	}
	if !models.ValidAssignableRole(role) {
		return fmt.Errorf("%w: invalid role %q", ErrValidation, role)
	}

	if _, err := s.users.Get(ctx, targetUID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}

	return s.users.Update(ctx, targetUID, map[string]interface{}{"role": role})
}

// Update applies a validated merge-patch to the target record.
func (s *UserService) Update(ctx context.Context, targetUID string, updates AdminUserUpdates) error {
	if targetUID == "" {
		return fmt.Errorf("%w: targetUid is required", ErrValidation)
	}

	patch := map[string]interface{}{}
	if updates.Role != nil {
		if !models.ValidAssignableRole(*updates.Role) {
			return fmt.Errorf("%w: invalid role %q", ErrValidation, *updates.Role)
		}
		patch["role"] = *updates.Role
	}
	if updates.Status != nil {
		if !models.ValidUserStatus(*updates.Status) {
			return fmt.Errorf("%w: invalid status %q", ErrValidation, *updates.Status)
		}
		patch["status"] = *updates.Status
	}
	if updates.AssignedRegions != nil {
		patch["assignedRegions"] = updates.AssignedRegions
	}
	if len(patch) == 0 {
		return fmt.Errorf("%w: no updates provided", ErrValidation)
	}

	if _, err := s.users.Get(ctx, targetUID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}

	return s.users.Update(ctx, targetUID, patch)
}

// List returns all stored user records.
func (s *UserService) List(ctx context.Context) ([]*models.UserRecord, error) {
	return s.users.List(ctx)
}

// SetupRequired reports whether the one-time bootstrap is still open, i.e.
// no user records exist yet.
func (s *UserService) SetupRequired(ctx context.Context) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Bootstrap creates the first admin record. Legal only while the users
// collection is empty; afterwards it fails with ErrSetupComplete.
func (s *UserService) Bootstrap(ctx context.Context, uid, email, displayName string) (*models.UserRecord, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSetupComplete
	}

	now := time.Now()
	record := &models.UserRecord{
		UID:             uid,
		Email:           email,
		DisplayName:     displayName,
		Role:            models.RoleAdmin,
		Status:          models.UserStatusActive,
		AssignedRegions: []string{},
		IsInitialAdmin:  true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.users.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
