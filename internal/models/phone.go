package models

import "time"

// GeoPoint is a plain coordinate pair with an optional reverse-geocoded label.
type GeoPoint struct {
	Latitude  float64 `firestore:"latitude"`
	Longitude float64 `firestore:"longitude"`
	Address   string  `firestore:"address,omitempty"`
}

// RegisteredPhone is a notification target owned by the admin who registered
// it. "Deletion" is soft: isActive flips to false and the record is retained
// for notification history.
type RegisteredPhone struct {
	ID           string    `firestore:"-"`
	OwnerUID     string    `firestore:"userId"`
	Name         string    `firestore:"name"`
	PhoneNumber  string    `firestore:"phoneNumber"`
	HomeLocation *GeoPoint `firestore:"homeLocation,omitempty"`
	Categories   []string  `firestore:"categories"`
	IsActive     bool      `firestore:"isActive"`
	CreatedAt    time.Time `firestore:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt"`
}
