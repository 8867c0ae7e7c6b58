package service

import (
	"context"
	"strings"
	"time"

	"alertwatch/internal/logging"
	"alertwatch/internal/models"
	"alertwatch/internal/repository"
)

// RoleService resolves a principal's effective role for a session.
//
// The configured superadmin email is the source of truth for the superadmin
// role; stored role values are advisory and re-checked on every resolution.
type RoleService struct {
	users           repository.UserRepository
	superadminEmail string
}

// NewRoleService creates a new RoleService instance
func NewRoleService(users repository.UserRepository, superadminEmail string) *RoleService {
	return &RoleService{
		users:           users,
		superadminEmail: strings.ToLower(strings.TrimSpace(superadminEmail)),
	}
}

// IsSuperadminEmail reports whether the email matches the configured
// superadmin identity. An empty configured email never matches.
func (s *RoleService) IsSuperadminEmail(email string) bool {
	return s.superadminEmail != "" && strings.ToLower(strings.TrimSpace(email)) == s.superadminEmail
}

// Resolve computes the effective role and authorization flags for a verified
// principal, creating a default user record on first sight.
//
// A store failure mid-session does not revoke the identity: the best-known
// state is returned and the error is logged, not propagated.
func (s *RoleService) Resolve(ctx context.Context, principal *models.Principal) *models.RoleResolution {
	logger := logging.GetLogger()
	isSuper := s.IsSuperadminEmail(principal.Email)

	record, err := s.users.Get(ctx, principal.UID)
	if err != nil && !repository.IsNotFound(err) {
		// Degraded: keep the best-known in-session state rather than failing
		// the request over a transient store error.
		logger.Error("role resolution degraded for %s: %v", principal.UID, err)
		role := models.RoleUser
		if isSuper {
			role = models.RoleSuperAdmin
		}
		return resolution(role, nil)
	}

	if record == nil {
		now := time.Now()
		record = &models.UserRecord{
			UID:             principal.UID,
			Email:           principal.Email,
			DisplayName:     principal.DisplayName,
			Role:            models.RoleUser,
			Status:          models.UserStatusActive,
			AssignedRegions: []string{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.users.Create(ctx, record); err != nil {
			// Best effort: the default record will be created on a later
			// resolution; the session still gets its role.
			logger.Error("failed to create default user record for %s: %v", principal.UID, err)
		}
	}

	role := record.Role
	switch {
	case isSuper:
		role = models.RoleSuperAdmin
		if record.Role != models.RoleSuperAdmin {
			s.reconcileStoredRole(ctx, record.UID)
		}
	case role == models.RoleSuperAdmin:
		// A stored superadmin that does not match the configured email is a
		// stale or incorrect write. Normalize down at read time.
		role = models.RoleAdmin
	case role != models.RoleAdmin && role != models.RoleUser:
		role = models.RoleUser
	}

	return resolution(role, record)
}

// reconcileStoredRole corrects a stale stored role for the superadmin.
// Failure is logged and otherwise ignored: the elevated role is granted for
// the current session regardless.
func (s *RoleService) reconcileStoredRole(ctx context.Context, uid string) {
	err := s.users.Update(ctx, uid, map[string]interface{}{"role": models.RoleSuperAdmin})
	if err != nil {
		logging.GetLogger().Warn("failed to reconcile stored role for %s: %v", uid, err)
	}
}

func resolution(role models.Role, record *models.UserRecord) *models.RoleResolution {
	isAdmin := role == models.RoleAdmin || role == models.RoleSuperAdmin
	return &models.RoleResolution{
		Role:           role,
		IsAdmin:        isAdmin,
		IsSuperAdmin:   role == models.RoleSuperAdmin,
		CanManageUsers: isAdmin,
		Record:         record,
	}
}
