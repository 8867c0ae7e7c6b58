package service

import (
	"context"
	"errors"
	"testing"

	"alertwatch/internal/models"
)

func TestSetRole(t *testing.T) {
	var patched map[string]interface{}
	repo := &mockUserRepository{
		getFunc: func(ctx context.Context, uid string) (*models.UserRecord, error) {
			return &models.UserRecord{UID: uid, Role: models.RoleUser}, nil
		},
		updateFunc: func(ctx context.Context, uid string, updates map[string]interface{}) error {
			patched = updates
			return nil
		},
	}
	svc := NewUserService(repo)

	if err := svc.SetRole(context.Background(), "u1", models.RoleAdmin); err != nil {
		t.Fatalf("SetRole returned error: %v", err)
	}
	if patched["role"] != models.RoleAdmin {
		t.Errorf("patch = %v, want role=admin", patched)
	}
}

func TestSetRole_SuperadminNeverAssignable(t *testing.T) {
	svc := NewUserService(&mockUserRepository{})
	err := svc.SetRole(context.Background(), "u1", models.RoleSuperAdmin)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("SetRole error = %v, want ErrValidation", err)
	}
}

func TestSetRole_TargetNotFound(t *testing.T) {
	svc := NewUserService(&mockUserRepository{})
	if err := svc.SetRole(context.Background(), "ghost", models.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetRole error = %v, want ErrNotFound", err)
	}
}

func TestUpdateUser(t *testing.T) {
	var patched map[string]interface{}
	repo := &mockUserRepository{
		getFunc: func(ctx context.Context, uid string) (*models.UserRecord, error) {
			return &models.UserRecord{UID: uid}, nil
		},
		updateFunc: func(ctx context.Context, uid string, updates map[string]interface{}) error {
			patched = updates
			return nil
		},
	}
	svc := NewUserService(repo)

	status := models.UserStatusBlocked
	err := svc.Update(context.Background(), "u1", AdminUserUpdates{
		Status:          &status,
		AssignedRegions: []string{"Lagos"},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(patched) != 2 {
		t.Errorf("patch = %v, want status and assignedRegions only", patched)
	}
}

func TestUpdateUser_Validation(t *testing.T) {
	svc := NewUserService(&mockUserRepository{})

	badRole := models.RoleSuperAdmin
	badStatus := models.UserStatus("suspended")

	tests := []struct {
		name    string
		uid     string
		updates AdminUserUpdates
	}{
		{"empty uid", "", AdminUserUpdates{}},
		{"empty patch", "u1", AdminUserUpdates{}},
		{"superadmin role", "u1", AdminUserUpdates{Role: &badRole}},
		{"unknown status", "u1", AdminUserUpdates{Status: &badStatus}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Update(context.Background(), tt.uid, tt.updates); !errors.Is(err, ErrValidation) {
				t.Errorf("Update error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestBootstrap(t *testing.T) {
	var created *models.UserRecord
	repo := &mockUserRepository{
		countFunc: func(ctx context.Context) (int64, error) { return 0, nil },
		createFunc: func(ctx context.Context, record *models.UserRecord) error {
			created = record
			return nil
		},
	}
	svc := NewUserService(repo)

	record, err := svc.Bootstrap(context.Background(), "uid-1", "admin@example.com", "First Admin")
	if err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if record.Role != models.RoleAdmin || !record.IsInitialAdmin {
		t.Errorf("record = %+v, want initial admin", record)
	}
	if created == nil {
		t.Fatal("record was not persisted")
	}
}

func TestBootstrap_OnlyWhileEmpty(t *testing.T) {
	repo := &mockUserRepository{
		countFunc: func(ctx context.Context) (int64, error) { return 3, nil },
	}
	svc := NewUserService(repo)

	if _, err := svc.Bootstrap(context.Background(), "uid-1", "a@b.c", "X"); !errors.Is(err, ErrSetupComplete) {
		t.Errorf("Bootstrap error = %v, want ErrSetupComplete", err)
	}

	required, err := svc.SetupRequired(context.Background())
	if err != nil {
		t.Fatalf("SetupRequired returned error: %v", err)
	}
	if required {
		t.Error("SetupRequired = true with existing records")
	}
}
