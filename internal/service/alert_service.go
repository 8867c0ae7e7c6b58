package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"alertwatch/internal/logging"
	"alertwatch/internal/models"
	"alertwatch/internal/repository"

	"github.com/google/uuid"
)

const (
	titleMinLen       = 3
	titleMaxLen       = 100
	descriptionMinLen = 10
	descriptionMaxLen = 500
	ttlMinMinutes     = 1
	ttlMaxMinutes     = 720
)

// AnonymousCreator is recorded when an alert is created without a principal.
const AnonymousCreator = "anonymous"

// CreateAlertInput is everything a caller provides for a new alert.
type CreateAlertInput struct {
	Type            models.AlertType
	Title           string
	Description     string
	Latitude        float64
	Longitude       float64
	LocationName    string
	LocationState   string
	LocationCountry string
	TTLMinutes      int
}

// AlertService owns the alert lifecycle: creation with TTL, the guarded
// resolve/false transitions, vote counters and the live views.
type AlertService struct {
	alerts     repository.AlertRepository
	phones     repository.PhoneRepository
	dispatcher *SMSService
	defaultTTL int
}

// NewAlertService creates a new AlertService instance. dispatcher may be nil,
// in which case alert creation does not fan out notifications.
func NewAlertService(alerts repository.AlertRepository, phones repository.PhoneRepository, dispatcher *SMSService, defaultTTLMinutes int) *AlertService {
	if defaultTTLMinutes < ttlMinMinutes || defaultTTLMinutes > ttlMaxMinutes {
		defaultTTLMinutes = 15
	}
	return &AlertService{
		alerts:     alerts,
		phones:     phones,
		dispatcher: dispatcher,
		defaultTTL: defaultTTLMinutes,
	}
}

// Create validates the input, persists the alert as active with its expiry,
// and fans out SMS notifications as a side effect. Notification failure never
// rolls back the creation.
func (s *AlertService) Create(ctx context.Context, input CreateAlertInput, creatorUID string) (*models.Alert, error) {
	if err := s.validateCreate(&input); err != nil {
		return nil, err
	}

	if creatorUID == "" {
		creatorUID = AnonymousCreator
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(input.TTLMinutes) * time.Minute)

	alert := &models.Alert{
		ID:              uuid.New().String(),
		CreatorUID:      creatorUID,
		Type:            input.Type,
		Title:           input.Title,
		Description:     input.Description,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		LocationName:    input.LocationName,
		LocationState:   input.LocationState,
		LocationCountry: input.LocationCountry,
		Status:          models.AlertStatusActive,
		CreatedAt:       now,
		ExpiresAt:       &expiresAt,
		Upvotes:         0,
		Downvotes:       0,
	}

	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		// Fire and forget: the request must not wait on, or fail with, the
		// SMS fan-out. Fresh context so the dispatch survives the request.
		go s.notifyRegisteredPhones(context.Background(), alert)
	}

	return alert, nil
}

func (s *AlertService) validateCreate(input *CreateAlertInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	if !models.ValidAlertType(input.Type) {
		return fmt.Errorf("%w: invalid alert type %q", ErrValidation, input.Type)
	}
	// Character counts, not bytes, matching the length semantics of the
	// request binding.
	if l := utf8.RuneCountInString(input.Title); l < titleMinLen || l > titleMaxLen {
		return fmt.Errorf("%w: title must be between %d and %d characters", ErrValidation, titleMinLen, titleMaxLen)
	}
	if l := utf8.RuneCountInString(input.Description); l < descriptionMinLen || l > descriptionMaxLen {
		return fmt.Errorf("%w: description must be between %d and %d characters", ErrValidation, descriptionMinLen, descriptionMaxLen)
	}
	if input.TTLMinutes == 0 {
		input.TTLMinutes = s.defaultTTL
	}
	if input.TTLMinutes < ttlMinMinutes || input.TTLMinutes > ttlMaxMinutes {
		return fmt.Errorf("%w: ttlMinutes must be between %d and %d", ErrValidation, ttlMinMinutes, ttlMaxMinutes)
	}
	return nil
}

// notifyRegisteredPhones sends the alert to every active registered phone.
func (s *AlertService) notifyRegisteredPhones(ctx context.Context, alert *models.Alert) {
	logger := logging.GetLogger()

	phones, err := s.phones.List(ctx)
	if err != nil {
		logger.Error("alert %s: failed to load registered phones: %v", alert.ID, err)
		return
	}

	var numbers []string
	for _, p := range phones {
		if p.IsActive && p.PhoneNumber != "" {
			numbers = append(numbers, p.PhoneNumber)
		}
	}
	if len(numbers) == 0 {
		return
	}

	message := notificationMessage(alert)
	result, err := s.dispatcher.Send(ctx, alert.ID, numbers, message)
	if err != nil {
		logger.Error("alert %s: notification dispatch failed: %v", alert.ID, err)
		return
	}
	logger.Info("alert %s: notifications sent=%d failed=%d", alert.ID, result.Sent, result.Failed)
}

func notificationMessage(alert *models.Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALERT: %s - %s", alert.Title, alert.Description)
	if alert.LocationName != "" || alert.LocationState != "" {
		fmt.Fprintf(&b, " (%s)", strings.Trim(strings.Join(
			nonEmpty(alert.LocationName, alert.LocationState, alert.LocationCountry), ", "), ", "))
	}
	return b.String()
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Resolve transitions an alert from active to the terminal resolved state.
// Any other current status is rejected, so resolvedAt/resolvedBy always
// reflect the first successful call.
func (s *AlertService) Resolve(ctx context.Context, id, actorUID string) error {
	return s.transition(ctx, id, func() error {
		return s.alerts.MarkResolved(ctx, id, actorUID, time.Now())
	})
}

// MarkFalse transitions an alert from active to the terminal false state.
func (s *AlertService) MarkFalse(ctx context.Context, id, actorUID string) error {
	return s.transition(ctx, id, func() error {
		return s.alerts.MarkFalse(ctx, id, actorUID, time.Now())
	})
}

func (s *AlertService) transition(ctx context.Context, id string, apply func() error) error {
	alert, err := s.alerts.Get(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if alert.Status != models.AlertStatusActive {
		return fmt.Errorf("%w: status is %s", ErrNotActive, alert.Status)
	}
	err = apply()
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

// Vote atomically increments exactly one of the counters. There is no
// per-voter ledger; repeat votes from the same caller all count.
func (s *AlertService) Vote(ctx context.Context, id string, direction models.VoteDirection) error {
	if !models.ValidVoteDirection(direction) {
		return fmt.Errorf("%w: invalid vote direction %q", ErrValidation, direction)
	}
	err := s.alerts.IncrementVote(ctx, id, direction)
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

// Get returns one alert by id.
func (s *AlertService) Get(ctx context.Context, id string) (*models.Alert, error) {
	alert, err := s.alerts.Get(ctx, id)
	if repository.IsNotFound(err) {
		return nil, ErrNotFound
	}
	return alert, err
}

// ListActive returns alerts for the live map view: status active and TTL not
// yet passed, newest first. Expiry is computed at read time; expired alerts
// drop out without a status transition.
func (s *AlertService) ListActive(ctx context.Context) ([]*models.Alert, error) {
	alerts, err := s.alerts.List(ctx)
	if err != nil {
		return nil, err
	}
	return filterActive(alerts, time.Now()), nil
}

// ListHistory returns all alerts regardless of status or expiry, newest first.
func (s *AlertService) ListHistory(ctx context.Context) ([]*models.Alert, error) {
	return s.alerts.List(ctx)
}

// ListByCreator returns the caller's own alerts, newest first.
func (s *AlertService) ListByCreator(ctx context.Context, creatorUID string) ([]*models.Alert, error) {
	return s.alerts.ListByCreator(ctx, creatorUID)
}

// WatchActive opens a live view of active alerts. Each emission is a full
// snapshot filtered at emission time.
func (s *AlertService) WatchActive(ctx context.Context) (*repository.Subscription[models.Alert], error) {
	sub, err := s.alerts.Watch(ctx)
	if err != nil {
		return nil, err
	}
	return repository.Transform(sub, func(alerts []models.Alert) []models.Alert {
		now := time.Now()
		out := make([]models.Alert, 0, len(alerts))
		for _, a := range alerts {
			if a.ActiveAt(now) {
				out = append(out, a)
			}
		}
		return out
	}), nil
}

// WatchHistory opens a live view of the whole alert collection.
func (s *AlertService) WatchHistory(ctx context.Context) (*repository.Subscription[models.Alert], error) {
	return s.alerts.Watch(ctx)
}

func filterActive(alerts []*models.Alert, now time.Time) []*models.Alert {
	out := make([]*models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.ActiveAt(now) {
			out = append(out, a)
		}
	}
	return out
}
