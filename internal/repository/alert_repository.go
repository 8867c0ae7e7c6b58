package repository

import (
	"context"
	"fmt"
	"time"

	"alertwatch/internal/logging"
	"alertwatch/internal/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// alertRepository implements AlertRepository on Firestore
type alertRepository struct {
	client *firestore.Client
}

// NewAlertRepository creates a new AlertRepository instance
func NewAlertRepository(client *firestore.Client) AlertRepository {
	return &alertRepository{client: client}
}

func (r *alertRepository) Get(ctx context.Context, id string) (*models.Alert, error) {
	doc, err := r.client.Collection(CollectionAlerts).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert %s: %w", id, err)
	}
	return decodeAlert(doc)
}

func (r *alertRepository) Create(ctx context.Context, alert *models.Alert) error {
	if _, err := r.client.Collection(CollectionAlerts).Doc(alert.ID).Set(ctx, alert); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *alertRepository) MarkResolved(ctx context.Context, id, actorUID string, at time.Time) error {
	return r.applyUpdates(ctx, id, []firestore.Update{
		{Path: "status", Value: models.AlertStatusResolved},
		{Path: "resolvedAt", Value: at},
		{Path: "resolvedBy", Value: actorUID},
	})
}

func (r *alertRepository) MarkFalse(ctx context.Context, id, actorUID string, at time.Time) error {
	return r.applyUpdates(ctx, id, []firestore.Update{
		{Path: "status", Value: models.AlertStatusFalse},
		{Path: "falseFlaggedAt", Value: at},
		{Path: "falseFlaggedBy", Value: actorUID},
	})
}

func (r *alertRepository) IncrementVote(ctx context.Context, id string, direction models.VoteDirection) error {
	field := "upvotes"
	if direction == models.VoteDown {
		field = "downvotes"
	}
	return r.applyUpdates(ctx, id, []firestore.Update{
		{Path: field, Value: firestore.Increment(1)},
	})
}

func (r *alertRepository) applyUpdates(ctx context.Context, id string, updates []firestore.Update) error {
	_, err := r.client.Collection(CollectionAlerts).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update alert %s: %w", id, err)
	}
	return nil
}

func (r *alertRepository) List(ctx context.Context) ([]*models.Alert, error) {
	iter := r.client.Collection(CollectionAlerts).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	return collectAlerts(iter)
}

func (r *alertRepository) ListByCreator(ctx context.Context, creatorUID string) ([]*models.Alert, error) {
	iter := r.client.Collection(CollectionAlerts).
		Where("userId", "==", creatorUID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectAlerts(iter)
}

func (r *alertRepository) Watch(ctx context.Context) (*Subscription[models.Alert], error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := NewSubscription[models.Alert](cancel)

	snapshots := r.client.Collection(CollectionAlerts).
		OrderBy("createdAt", firestore.Desc).
		Snapshots(ctx)

	go func() {
		defer snapshots.Stop()
		defer sub.Close()
		logger := logging.GetLogger()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("alert watch terminated: %v", err)
				}
				return
			}

			alerts, err := collectAlerts(snap.Documents)
			if err != nil {
				logger.Error("alert watch snapshot decode: %v", err)
				continue
			}
			items := make([]models.Alert, len(alerts))
			for i, a := range alerts {
				items[i] = *a
			}
			if !sub.Emit(items) {
				return
			}
		}
	}()

	return sub, nil
}

func collectAlerts(iter *firestore.DocumentIterator) ([]*models.Alert, error) {
	defer iter.Stop()

	var alerts []*models.Alert
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate alerts: %w", err)
		}
		alert, err := decodeAlert(doc)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func decodeAlert(doc *firestore.DocumentSnapshot) (*models.Alert, error) {
	var alert models.Alert
	if err := doc.DataTo(&alert); err != nil {
		return nil, fmt.Errorf("failed to decode alert %s: %w", doc.Ref.ID, err)
	}
	alert.ID = doc.Ref.ID
	return &alert, nil
}
