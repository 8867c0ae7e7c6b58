package models

import (
	"strings"
	"time"
)

// AlertType is the category of an incident report.
type AlertType string

const (
	AlertTypeTest  AlertType = "test"
	AlertTypeType1 AlertType = "type1"
	AlertTypeType2 AlertType = "type2"
)

func ValidAlertType(t AlertType) bool {
	switch t {
	case AlertTypeTest, AlertTypeType1, AlertTypeType2:
		return true
	}
	return false
}

// AlertStatus is the persisted lifecycle state. resolved and false are
// terminal. Expiry is derived from expiresAt at read time and never persisted
// as a status.
type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "active"
	AlertStatusResolved AlertStatus = "resolved"
	AlertStatusFalse    AlertStatus = "false"
)

// VoteDirection selects which counter a vote increments.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

func ValidVoteDirection(d VoteDirection) bool {
	return d == VoteUp || d == VoteDown
}

// Alert is a geolocated incident report.
type Alert struct {
	ID              string      `firestore:"-"`
	CreatorUID      string      `firestore:"userId"`
	Type            AlertType   `firestore:"type"`
	Title           string      `firestore:"title"`
	Description     string      `firestore:"description"`
	Latitude        float64     `firestore:"latitude"`
	Longitude       float64     `firestore:"longitude"`
	LocationName    string      `firestore:"locationName,omitempty"`
	LocationState   string      `firestore:"locationState,omitempty"`
	LocationCountry string      `firestore:"locationCountry,omitempty"`
	Status          AlertStatus `firestore:"status"`
	CreatedAt       time.Time   `firestore:"createdAt"`
	ExpiresAt       *time.Time  `firestore:"expiresAt,omitempty"`
	ResolvedAt      *time.Time  `firestore:"resolvedAt,omitempty"`
	ResolvedBy      string      `firestore:"resolvedBy,omitempty"`
	FalseFlaggedAt  *time.Time  `firestore:"falseFlaggedAt,omitempty"`
	FalseFlaggedBy  string      `firestore:"falseFlaggedBy,omitempty"`
	Upvotes         int64       `firestore:"upvotes"`
	Downvotes       int64       `firestore:"downvotes"`
}

// Expired reports whether the alert's TTL has passed at the given instant.
// An alert without expiresAt never expires.
func (a *Alert) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && !a.ExpiresAt.After(now)
}

// ActiveAt reports whether the alert should appear in the live map view:
// status active and not expired.
func (a *Alert) ActiveAt(now time.Time) bool {
	return a.Status == AlertStatusActive && !a.Expired(now)
}

// LocationText is the haystack used for region-scoped visibility matching.
func (a *Alert) LocationText() string {
	return strings.ToLower(a.LocationName + ", " + a.LocationState + ", " + a.LocationCountry)
}
