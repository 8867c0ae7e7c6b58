package models

import "time"

// Principal is the verified identity making a request, asserted by the
// external identity provider. Immutable for the life of a session.
type Principal struct {
	UID         string
	Email       string
	DisplayName string
}

// Role governs authorization. Exactly one superadmin exists and is determined
// by the configured superadmin email, not by the stored role — the stored
// value is advisory and re-checked on every session resolution.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ValidAssignableRole reports whether a role may be assigned through the
// admin API. superadmin is never assignable.
func ValidAssignableRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// UserStatus is the account state of a stored user record.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
	UserStatusBanned  UserStatus = "banned"
)

func ValidUserStatus(s UserStatus) bool {
	switch s {
	case UserStatusActive, UserStatusBlocked, UserStatusBanned:
		return true
	}
	return false
}

// UserRecord is the stored user document, keyed by the Firebase UID.
type UserRecord struct {
	UID             string     `firestore:"uid"`
	Email           string     `firestore:"email"`
	DisplayName     string     `firestore:"displayName,omitempty"`
	Role            Role       `firestore:"role"`
	Status          UserStatus `firestore:"status"`
	AssignedRegions []string   `firestore:"assignedRegions"`
	IsInitialAdmin  bool       `firestore:"isInitialAdmin,omitempty"`
	CreatedAt       time.Time  `firestore:"createdAt"`
	UpdatedAt       time.Time  `firestore:"updatedAt"`
}

// RoleResolution is the effective role and derived authorization flags for a
// principal, computed per session.
type RoleResolution struct {
	Role           Role
	IsAdmin        bool
	IsSuperAdmin   bool
	CanManageUsers bool
	Record         *UserRecord
}
