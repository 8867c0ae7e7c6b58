package service

import (
	"context"
	"errors"
	"testing"

	"alertwatch/internal/models"
	"alertwatch/internal/repository"
)

// Mock UserRepository
type mockUserRepository struct {
	repository.UserRepository
	getFunc    func(ctx context.Context, uid string) (*models.UserRecord, error)
	createFunc func(ctx context.Context, record *models.UserRecord) error
	updateFunc func(ctx context.Context, uid string, updates map[string]interface{}) error
	listFunc   func(ctx context.Context) ([]*models.UserRecord, error)
	countFunc  func(ctx context.Context) (int64, error)
}

func (m *mockUserRepository) Get(ctx context.Context, uid string) (*models.UserRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, uid)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, record *models.UserRecord) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, uid string, updates map[string]interface{}) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, uid, updates)
	}
	return nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*models.UserRecord, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*models.UserRecord{}, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func TestIsSuperadminEmail(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		email      string
		want       bool
	}{
		{"exact match", "boss@example.com", "boss@example.com", true},
		{"case insensitive", "boss@example.com", "Boss@Example.COM", true},
		{"surrounding whitespace", "boss@example.com", "  boss@example.com ", true},
		{"different email", "boss@example.com", "other@example.com", false},
		{"empty configured never matches", "", "boss@example.com", false},
		{"empty candidate", "boss@example.com", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRoleService(&mockUserRepository{}, tt.configured)
			if got := svc.IsSuperadminEmail(tt.email); got != tt.want {
				t.Errorf("IsSuperadminEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestResolve_SuperadminEmailWins(t *testing.T) {
	repo := &mockUserRepository{
		getFunc: func(ctx context.Context, uid string) (*models.UserRecord, error) {
			return &models.UserRecord{UID: uid, Email: "boss@example.com", Role: models.RoleUser}, nil
		},
	}

	var reconciled map[string]interface{}
	repo.updateFunc = func(ctx context.Context, uid string, updates map[string]interface{}) error {
		reconciled = updates
		return nil
	}

	svc := NewRoleService(repo, "boss@example.com")
	res := svc.Resolve(context.Background(), &models.Principal{UID: "u1", Email: "Boss@Example.com"})

	if res.Role != models.RoleSuperAdmin {
		t.Fatalf("Role = %v, want superadmin", res.Role)
	}
	if !res.IsAdmin || !res.IsSuperAdmin || !res.CanManageUsers {
		t.Errorf("flags = %+v, want all set", res)
	}
	if reconciled == nil || reconciled["role"] != models.RoleSuperAdmin {
		t.Errorf("stored role not reconciled, got %v", reconciled)
	}
}

func TestResolve_StoredSuperadminNormalizedDown(t *testing.T) {
	repo := &mockUserRepository{
		getFunc: func(ctx context.Context, uid string) (*models.UserRecord, error) {
			return &models.UserRecord{UID: uid, Email: "pretender@example.com", Role: models.RoleSuperAdmin}, nil
		},
	}

	svc := NewRoleService(repo, "boss@example.com")
	res := svc.Resolve(context.Background(), &models.Principal{UID: "u2", Email: "pretender@example.com"})

	if res.Role != models.RoleAdmin {
		t.Fatalf("Role = %v, want admin", res.Role)
	}
	if res.IsSuperAdmin {
		t.Error("IsSuperAdmin = true, want false")
	}
}

func TestResolve_FirstSightCreatesDefaultRecord(t *testing.T) {
	var created *models.UserRecord
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, record *models.UserRecord) error {
			created = record
			return nil
		},
	}

	svc := NewRoleService(repo, "boss@example.com")
	res := svc.Resolve(context.Background(), &models.Principal{UID: "new-user", Email: "new@example.com", DisplayName: "New User"})

	if res.Role != models.RoleUser {
		t.Fatalf("Role = %v, want user", res.Role)
	}
	if res.IsAdmin {
		t.Error("IsAdmin = true, want false")
	}
	if created == nil {
		t.Fatal("default record was not created")
	}
	if created.UID != "new-user" || created.Role != models.RoleUser || created.Status != models.UserStatusActive {
		t.Errorf("unexpected default record: %+v", created)
	}
}

func TestResolve_StoreFailureDegrades(t *testing.T) {
	repo := &mockUserRepository{
		getFunc: func(ctx context.Context, uid string) (*models.UserRecord, error) {
			return nil, errors.New("store unavailable")
		},
	}

	svc := NewRoleService(repo, "boss@example.com")

	res := svc.Resolve(context.Background(), &models.Principal{UID: "u3", Email: "someone@example.com"})
	if res.Role != models.RoleUser {
		t.Errorf("Role = %v, want user for degraded non-superadmin", res.Role)
	}

	res = svc.Resolve(context.Background(), &models.Principal{UID: "u4", Email: "boss@example.com"})
	if res.Role != models.RoleSuperAdmin {
		t.Errorf("Role = %v, want superadmin for degraded superadmin email", res.Role)
	}
}
