package repository

import (
	"context"
	"time"

	"alertwatch/internal/models"
)

// Firestore collection names.
const (
	CollectionUsers      = "users"
	CollectionAlerts     = "alerts"
	CollectionPhones     = "registered_users"
	CollectionDispatches = "sms_notifications"
)

// UserRepository defines the interface for user-record operations
type UserRepository interface {
	// Get returns the user record for a Firebase UID
	Get(ctx context.Context, uid string) (*models.UserRecord, error)
	// Create persists a new user record keyed by UID
	Create(ctx context.Context, record *models.UserRecord) error
	// Update applies a merge-patch to a user record; updatedAt is refreshed
	Update(ctx context.Context, uid string, updates map[string]interface{}) error
	// List returns all user records
	List(ctx context.Context) ([]*models.UserRecord, error)
	// Count returns the total number of user records
	Count(ctx context.Context) (int64, error)
}

// AlertRepository defines the interface for alert documents.
//
// MarkResolved and MarkFalse are unconditional field overwrites; the
// active-only transition guard lives in the service layer, which must read
// the current status first.
type AlertRepository interface {
	// Get returns an alert by id
	Get(ctx context.Context, id string) (*models.Alert, error)
	// Create persists a new alert
	Create(ctx context.Context, alert *models.Alert) error
	// MarkResolved sets status=resolved with the actor and timestamp
	MarkResolved(ctx context.Context, id, actorUID string, at time.Time) error
	// MarkFalse sets status=false with the actor and timestamp
	MarkFalse(ctx context.Context, id, actorUID string, at time.Time) error
	// IncrementVote atomically bumps exactly one vote counter by 1
	IncrementVote(ctx context.Context, id string, direction models.VoteDirection) error
	// List returns all alerts ordered by createdAt descending
	List(ctx context.Context) ([]*models.Alert, error)
	// ListByCreator returns the alerts created by one user, newest first
	ListByCreator(ctx context.Context, creatorUID string) ([]*models.Alert, error)
	// Watch opens a live snapshot subscription over the whole collection
	Watch(ctx context.Context) (*Subscription[models.Alert], error)
}

// PhoneRepository defines the interface for registered notification targets.
// Records are never physically deleted; deactivation is a merge-patch.
type PhoneRepository interface {
	// Get returns a registered phone by id
	Get(ctx context.Context, id string) (*models.RegisteredPhone, error)
	// Create persists a new registration
	Create(ctx context.Context, phone *models.RegisteredPhone) error
	// Update applies a merge-patch; updatedAt is always refreshed
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	// List returns all registrations ordered by createdAt descending
	List(ctx context.Context) ([]*models.RegisteredPhone, error)
	// Watch opens a live snapshot subscription over the whole collection
	Watch(ctx context.Context) (*Subscription[models.RegisteredPhone], error)
}

// DispatchRepository records individual SMS send attempts for audit.
type DispatchRepository interface {
	// Create persists one send-attempt outcome
	Create(ctx context.Context, record *models.DispatchRecord) error
}
