package models

import "time"

// DispatchStatus is the outcome of a single SMS send attempt.
type DispatchStatus string

const (
	DispatchSent   DispatchStatus = "sent"
	DispatchFailed DispatchStatus = "failed"
)

// DispatchRecord is the persisted audit entry for one send attempt to one
// recipient.
type DispatchRecord struct {
	ID                string         `firestore:"-"`
	AlertID           string         `firestore:"alertId,omitempty"`
	PhoneNumber       string         `firestore:"phoneNumber"`
	Message           string         `firestore:"message"`
	Status            DispatchStatus `firestore:"status"`
	ProviderMessageID string         `firestore:"providerMessageId,omitempty"`
	ProviderStatus    string         `firestore:"providerStatus,omitempty"`
	Error             string         `firestore:"error,omitempty"`
	SentAt            time.Time      `firestore:"sentAt"`
}
