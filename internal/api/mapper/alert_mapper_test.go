package mapper

import (
	"testing"
	"time"

	"alertwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertToResponse(t *testing.T) {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	expires := created.Add(30 * time.Minute)

	m := NewAlertMapper()
	resp := m.ToResponse(&models.Alert{
		ID:              "a1",
		CreatorUID:      "u1",
		Type:            models.AlertTypeType1,
		Title:           "Flooded underpass",
		Description:     "Water level rising under the rail bridge",
		Status:          models.AlertStatusActive,
		CreatedAt:       created,
		ExpiresAt:       &expires,
		LocationName:    "Ikeja",
		LocationState:   "Lagos State",
		LocationCountry: "Nigeria",
		Upvotes:         3,
	})

	assert.Equal(t, "a1", resp.ID)
	assert.Equal(t, "type1", resp.Type)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "2025-03-10T12:00:00Z", resp.CreatedAt)
	assert.Equal(t, "2025-03-10T12:30:00Z", resp.ExpiresAt)
	// Terminal-state fields stay empty until the transition happens.
	assert.Empty(t, resp.ResolvedAt)
	assert.Empty(t, resp.FalseFlaggedAt)
	assert.EqualValues(t, 3, resp.Upvotes)
}

func TestAlertToListResponse(t *testing.T) {
	m := NewAlertMapper()

	empty := m.ToListResponse(nil)
	require.NotNil(t, empty.Alerts)
	assert.Zero(t, empty.TotalCount)

	list := m.ToListResponse([]*models.Alert{
		{ID: "a1"},
		{ID: "a2"},
	})
	require.Len(t, list.Alerts, 2)
	assert.Equal(t, 2, list.TotalCount)
	assert.Equal(t, "a1", list.Alerts[0].ID)
}
