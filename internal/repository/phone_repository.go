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

// phoneRepository implements PhoneRepository on Firestore
type phoneRepository struct {
	client *firestore.Client
}

// NewPhoneRepository creates a new PhoneRepository instance
func NewPhoneRepository(client *firestore.Client) PhoneRepository {
	return &phoneRepository{client: client}
}

func (r *phoneRepository) Get(ctx context.Context, id string) (*models.RegisteredPhone, error) {
	doc, err := r.client.Collection(CollectionPhones).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get phone %s: %w", id, err)
	}
	return decodePhone(doc)
}

func (r *phoneRepository) Create(ctx context.Context, phone *models.RegisteredPhone) error {
	if _, err := r.client.Collection(CollectionPhones).Doc(phone.ID).Set(ctx, phone); err != nil {
		return fmt.Errorf("failed to create phone registration: %w", err)
	}
	return nil
}

func (r *phoneRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	patch := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		patch[k] = v
	}
	patch["updatedAt"] = time.Now()

	_, err := r.client.Collection(CollectionPhones).Doc(id).Set(ctx, patch, firestore.MergeAll)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update phone %s: %w", id, err)
	}
	return nil
}

func (r *phoneRepository) List(ctx context.Context) ([]*models.RegisteredPhone, error) {
	iter := r.client.Collection(CollectionPhones).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	return collectPhones(iter)
}

func (r *phoneRepository) Watch(ctx context.Context) (*Subscription[models.RegisteredPhone], error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := NewSubscription[models.RegisteredPhone](cancel)

	snapshots := r.client.Collection(CollectionPhones).
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
					logger.Error("phone watch terminated: %v", err)
				}
				return
			}

			phones, err := collectPhones(snap.Documents)
			if err != nil {
				logger.Error("phone watch snapshot decode: %v", err)
				continue
			}
			items := make([]models.RegisteredPhone, len(phones))
			for i, p := range phones {
				items[i] = *p
			}
			if !sub.Emit(items) {
				return
			}
		}
	}()

	return sub, nil
}

func collectPhones(iter *firestore.DocumentIterator) ([]*models.RegisteredPhone, error) {
	defer iter.Stop()

	var phones []*models.RegisteredPhone
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate phones: %w", err)
		}
		phone, err := decodePhone(doc)
		if err != nil {
			return nil, err
		}
		phones = append(phones, phone)
	}
	return phones, nil
}

func decodePhone(doc *firestore.DocumentSnapshot) (*models.RegisteredPhone, error) {
	var phone models.RegisteredPhone
	if err := doc.DataTo(&phone); err != nil {
		return nil, fmt.Errorf("failed to decode phone %s: %w", doc.Ref.ID, err)
	}
	phone.ID = doc.Ref.ID
	return &phone, nil
}
