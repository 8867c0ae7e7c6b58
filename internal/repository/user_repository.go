package repository

import (
	"context"
	"fmt"
	"time"

	"alertwatch/internal/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// userRepository implements UserRepository on Firestore
type userRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(client *firestore.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Get(ctx context.Context, uid string) (*models.UserRecord, error) {
	doc, err := r.client.Collection(CollectionUsers).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}

	var record models.UserRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", uid, err)
	}
	record.UID = doc.Ref.ID
	return &record, nil
}

func (r *userRepository) Create(ctx context.Context, record *models.UserRecord) error {
	if _, err := r.client.Collection(CollectionUsers).Doc(record.UID).Set(ctx, record); err != nil {
		return fmt.Errorf("failed to create user %s: %w", record.UID, err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, uid string, updates map[string]interface{}) error {
	patch := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		patch[k] = v
	}
	patch["updatedAt"] = time.Now()

	_, err := r.client.Collection(CollectionUsers).Doc(uid).Set(ctx, patch, firestore.MergeAll)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.UserRecord, error) {
	iter := r.client.Collection(CollectionUsers).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var records []*models.UserRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}

		var record models.UserRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", doc.Ref.ID, err)
		}
		record.UID = doc.Ref.ID
		records = append(records, &record)
	}
	return records, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	docs, err := r.client.Collection(CollectionUsers).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	// The only caller is the setup endpoint, which needs "zero or not".
	return int64(len(docs)), nil
}
