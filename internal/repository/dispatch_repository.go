package repository

import (
	"context"
	"fmt"

	"alertwatch/internal/models"

	"cloud.google.com/go/firestore"
)

// dispatchRepository implements DispatchRepository on Firestore
type dispatchRepository struct {
	client *firestore.Client
}

// NewDispatchRepository creates a new DispatchRepository instance
func NewDispatchRepository(client *firestore.Client) DispatchRepository {
	return &dispatchRepository{client: client}
}

func (r *dispatchRepository) Create(ctx context.Context, record *models.DispatchRecord) error {
	ref, _, err := r.client.Collection(CollectionDispatches).Add(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to record dispatch: %w", err)
	}
	record.ID = ref.ID
	return nil
}
