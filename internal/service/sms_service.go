package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alertwatch/internal/logging"
	"alertwatch/internal/models"
	"alertwatch/internal/repository"
)

// Sender is the external SMS transport: one message to one recipient,
// synchronous, no batching.
type Sender interface {
	Send(ctx context.Context, to, body string) (providerMessageID, providerStatus string, err error)
}

// RecipientResult is the outcome for a single recipient.
type RecipientResult struct {
	PhoneNumber       string `json:"phoneNumber"`
	ProviderMessageID string `json:"sid,omitempty"`
	ProviderStatus    string `json:"status,omitempty"`
	Error             string `json:"error,omitempty"`
}

// DispatchResult aggregates a fan-out. Failed recipients are itemized so the
// caller can surface partial failure to the operator.
type DispatchResult struct {
	Sent    int               `json:"sent"`
	Failed  int               `json:"failed"`
	Results []RecipientResult `json:"results"`
	Errors  []RecipientResult `json:"errors"`
}

// SMSService fans a message out to a list of phone numbers. Sends are
// per-recipient and independent: one failure never aborts the rest. There is
// no retry; a failed send is terminal for that call.
type SMSService struct {
	sender     Sender
	dispatches repository.DispatchRepository
}

// NewSMSService creates a new SMSService instance. sender may be nil when the
// transport is not configured; Send then fails with ErrNotConfigured.
// dispatches may be nil to skip audit logging.
func NewSMSService(sender Sender, dispatches repository.DispatchRepository) *SMSService {
	return &SMSService{sender: sender, dispatches: dispatches}
}

// Configured reports whether a transport is wired.
func (s *SMSService) Configured() bool {
	return s.sender != nil
}

// Send delivers the message to every number and waits for all outcomes
// before returning. The returned error covers input/configuration problems
// only; per-recipient failures are reported in the result.
func (s *SMSService) Send(ctx context.Context, alertID string, phoneNumbers []string, message string) (*DispatchResult, error) {
	message = strings.TrimSpace(message)
	if len(phoneNumbers) == 0 {
		return nil, fmt.Errorf("%w: phone numbers are required", ErrValidation)
	}
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}
	if s.sender == nil {
		return nil, ErrNotConfigured
	}

	result := &DispatchResult{}
	for _, number := range phoneNumbers {
		record := models.DispatchRecord{
			AlertID:     alertID,
			PhoneNumber: number,
			Message:     message,
			SentAt:      time.Now(),
		}

		sid, providerStatus, err := s.sender.Send(ctx, number, message)
		if err != nil {
			record.Status = models.DispatchFailed
			record.Error = err.Error()
			result.Failed++
			result.Errors = append(result.Errors, RecipientResult{
				PhoneNumber: number,
				Error:       err.Error(),
			})
		} else {
			record.Status = models.DispatchSent
			record.ProviderMessageID = sid
			record.ProviderStatus = providerStatus
			result.Sent++
			result.Results = append(result.Results, RecipientResult{
				PhoneNumber:       number,
				ProviderMessageID: sid,
				ProviderStatus:    providerStatus,
			})
		}

		s.record(ctx, &record)
	}

	return result, nil
}

// record persists one attempt for audit. Best effort.
func (s *SMSService) record(ctx context.Context, record *models.DispatchRecord) {
	if s.dispatches == nil {
		return
	}
	if err := s.dispatches.Create(ctx, record); err != nil {
		logging.GetLogger().Warn("failed to record sms dispatch to %s: %v", record.PhoneNumber, err)
	}
}
