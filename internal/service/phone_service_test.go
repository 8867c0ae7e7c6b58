package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"alertwatch/internal/models"
	"alertwatch/internal/repository"
)

// Mock PhoneRepository
type mockPhoneRepository struct {
	repository.PhoneRepository
	phones         map[string]*models.RegisteredPhone
	lastUpdate     map[string]interface{}
	watchSnapshots [][]models.RegisteredPhone
}

func newMockPhoneRepository() *mockPhoneRepository {
	return &mockPhoneRepository{phones: map[string]*models.RegisteredPhone{}}
}

func (m *mockPhoneRepository) Get(ctx context.Context, id string) (*models.RegisteredPhone, error) {
	if p, ok := m.phones[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockPhoneRepository) Create(ctx context.Context, phone *models.RegisteredPhone) error {
	m.phones[phone.ID] = phone
	return nil
}

func (m *mockPhoneRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	p, ok := m.phones[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.lastUpdate = updates
	if v, ok := updates["isActive"].(bool); ok {
		p.IsActive = v
	}
	if v, ok := updates["name"].(string); ok {
		p.Name = v
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (m *mockPhoneRepository) List(ctx context.Context) ([]*models.RegisteredPhone, error) {
	out := make([]*models.RegisteredPhone, 0, len(m.phones))
	for _, p := range m.phones {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPhoneRepository) Watch(ctx context.Context) (*repository.Subscription[models.RegisteredPhone], error) {
	sub := repository.NewSubscription[models.RegisteredPhone](nil)
	go func() {
		defer sub.Close()
		for _, snap := range m.watchSnapshots {
			if !sub.Emit(snap) {
				return
			}
		}
	}()
	return sub, nil
}

func TestRegisterPhone(t *testing.T) {
	repo := newMockPhoneRepository()
	svc := NewPhoneService(repo)

	phone, err := svc.Register(context.Background(), "admin-1", RegisterPhoneInput{
		Name:        "  Field team  ",
		PhoneNumber: " +2348012345678 ",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if phone.ID == "" {
		t.Error("ID not assigned")
	}
	if !phone.IsActive {
		t.Error("new registration should be active")
	}
	if phone.Name != "Field team" || phone.PhoneNumber != "+2348012345678" {
		t.Errorf("inputs not trimmed: %q / %q", phone.Name, phone.PhoneNumber)
	}
	if phone.OwnerUID != "admin-1" {
		t.Errorf("OwnerUID = %q, want admin-1", phone.OwnerUID)
	}
	if phone.Categories == nil {
		t.Error("Categories should default to empty, not nil")
	}
}

func TestRegisterPhone_Validation(t *testing.T) {
	svc := NewPhoneService(newMockPhoneRepository())

	tests := []struct {
		name  string
		input RegisterPhoneInput
	}{
		{"missing name", RegisterPhoneInput{PhoneNumber: "+123456789"}},
		{"missing number", RegisterPhoneInput{Name: "Team"}},
		{"whitespace only", RegisterPhoneInput{Name: "   ", PhoneNumber: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), "admin-1", tt.input)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Register error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdatePhone_MergePatch(t *testing.T) {
	repo := newMockPhoneRepository()
	repo.phones["p1"] = &models.RegisteredPhone{ID: "p1", Name: "Old", PhoneNumber: "+1", IsActive: true}

	svc := NewPhoneService(repo)
	name := "New name"
	if err := svc.Update(context.Background(), "p1", UpdatePhoneInput{Name: &name}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if len(repo.lastUpdate) != 1 {
		t.Errorf("patch = %v, want only name", repo.lastUpdate)
	}
	if repo.phones["p1"].Name != "New name" {
		t.Errorf("Name = %q, want New name", repo.phones["p1"].Name)
	}
}

func TestUpdatePhone_NotFound(t *testing.T) {
	svc := NewPhoneService(newMockPhoneRepository())
	name := "x"
	if err := svc.Update(context.Background(), "missing", UpdatePhoneInput{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update error = %v, want ErrNotFound", err)
	}
}

func TestDeactivatePhone(t *testing.T) {
	repo := newMockPhoneRepository()
	repo.phones["p1"] = &models.RegisteredPhone{ID: "p1", Name: "Team", PhoneNumber: "+1", IsActive: true}

	svc := NewPhoneService(repo)
	if err := svc.Deactivate(context.Background(), "p1"); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	// Soft delete: the record stays, only isActive flips.
	p, ok := repo.phones["p1"]
	if !ok {
		t.Fatal("record was removed from storage")
	}
	if p.IsActive {
		t.Error("IsActive = true after deactivation")
	}
	if v, ok := repo.lastUpdate["isActive"].(bool); !ok || v {
		t.Errorf("patch = %v, want isActive=false", repo.lastUpdate)
	}
}

func TestWatchMine_ScopesToOwner(t *testing.T) {
	repo := newMockPhoneRepository()
	repo.watchSnapshots = [][]models.RegisteredPhone{
		{
			{ID: "p1", OwnerUID: "admin-1"},
			{ID: "p2", OwnerUID: "admin-2"},
			{ID: "p3", OwnerUID: "admin-1"},
		},
	}

	svc := NewPhoneService(repo)
	sub, err := svc.WatchMine(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("WatchMine returned error: %v", err)
	}
	defer sub.Cancel()

	snap, ok := <-sub.Updates()
	if !ok {
		t.Fatal("stream closed before first snapshot")
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot = %v, want the owner's two registrations", snap)
	}
	for _, p := range snap {
		if p.OwnerUID != "admin-1" {
			t.Errorf("foreign registration leaked into stream: %+v", p)
		}
	}

	if _, ok := <-sub.Updates(); ok {
		t.Error("stream did not close after the source ended")
	}
}

func TestListMine(t *testing.T) {
	repo := newMockPhoneRepository()
	repo.phones["p1"] = &models.RegisteredPhone{ID: "p1", OwnerUID: "admin-1"}
	repo.phones["p2"] = &models.RegisteredPhone{ID: "p2", OwnerUID: "admin-2"}
	repo.phones["p3"] = &models.RegisteredPhone{ID: "p3", OwnerUID: "admin-1"}

	svc := NewPhoneService(repo)

	mine, err := svc.ListMine(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("len = %d, want 2", len(mine))
	}
	for _, p := range mine {
		if p.OwnerUID != "admin-1" {
			t.Errorf("foreign registration leaked: %+v", p)
		}
	}

	all, err := svc.ListMine(context.Background(), "")
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("empty owner filter: len = %d, want 3", len(all))
	}
}
