package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"estate-service/internal/model"
	"estate-service/internal/storage/storetest"
)

func newUserEnv() (*storetest.Store, *UserService) {
	store := storetest.New()
	return store, NewUserService(store, zap.NewNop())
}

func seedUser(store *storetest.Store, id string, role model.Role) *model.User {
	user := &model.User{ID: id, Role: role}
	store.Users[id] = user
	return user
}

func TestResolveCreatesTenantOnFirstSight(t *testing.T) {
	_, users := newUserEnv()
	ctx := context.Background()

	ident := model.Identity{UID: "fb-1", Email: "a@example.com", Name: "Asha Rao", Picture: "http://img"}
	user, err := users.Resolve(ctx, ident)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if user.Role != model.RoleTenant {
		t.Errorf("new users default to tenant, got %q", user.Role)
	}
	if user.FirstName != "Asha" || user.LastName != "Rao" {
		t.Errorf("name split = %q/%q", user.FirstName, user.LastName)
	}
	if user.IsVerified {
		t.Error("new users are unverified")
	}

	// Second resolve returns the stored record, no re-create.
	again, err := users.Resolve(ctx, ident)
	if err != nil {
		t.Fatalf("second Resolve() error: %v", err)
	}
	if again.ID != user.ID || again.Role != model.RoleTenant {
		t.Error("second resolve should return the existing record")
	}
}

func TestResolveRejectsEmptyUID(t *testing.T) {
	_, users := newUserEnv()
	if _, err := users.Resolve(context.Background(), model.Identity{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateRoleValidation(t *testing.T) {
	store, users := newUserEnv()
	seedUser(store, "u1", model.RoleTenant)
	ctx := context.Background()

	tests := []struct {
		name  string
		input RoleUpdateInput
	}{
		{"missing role", RoleUpdateInput{PhoneNumber: "9876543210"}},
		{"admin not selectable", RoleUpdateInput{Role: model.RoleAdmin, PhoneNumber: "9876543210"}},
		{"unknown role", RoleUpdateInput{Role: "superuser", PhoneNumber: "9876543210"}},
		{"short phone", RoleUpdateInput{Role: model.RoleLandlord, PhoneNumber: "12345"}},
		{"broker without rera", RoleUpdateInput{Role: model.RoleBroker, PhoneNumber: "9876543210"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := users.UpdateRole(ctx, "u1", tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestUpdateRoleUnknownUser(t *testing.T) {
	_, users := newUserEnv()
	input := RoleUpdateInput{Role: model.RoleLandlord, PhoneNumber: "9876543210"}
	if _, err := users.UpdateRole(context.Background(), "ghost", input); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBrokerRoleAlwaysResetsVerification(t *testing.T) {
	store, users := newUserEnv()
	broker := seedUser(store, "b1", model.RoleBroker)
	broker.IsVerified = true
	broker.ReraID = "RERA-OLD"

	updated, err := users.UpdateRole(context.Background(), "b1", RoleUpdateInput{
		Role:        model.RoleBroker,
		PhoneNumber: "9876543210",
		ReraID:      "RERA-NEW",
	})
	if err != nil {
		t.Fatalf("UpdateRole() error: %v", err)
	}
	if updated.IsVerified {
		t.Error("adopting the broker role must reset verification, even when previously verified")
	}
	if updated.ReraID != "RERA-NEW" {
		t.Errorf("rera id = %q, want RERA-NEW", updated.ReraID)
	}
}

func TestSetBrokerVerification(t *testing.T) {
	store, users := newUserEnv()
	seedUser(store, "admin", model.RoleAdmin)
	broker := seedUser(store, "b1", model.RoleBroker)
	broker.ReraID = "RERA-1"
	ctx := context.Background()

	verified, err := users.SetBrokerVerification(ctx, "admin", "b1", true)
	if err != nil {
		t.Fatalf("SetBrokerVerification() error: %v", err)
	}
	if !verified.IsVerified || !verified.ReraVerified {
		t.Error("broker should be verified with badge")
	}

	// Non-admin actors are rejected.
	seedUser(store, "t1", model.RoleTenant)
	if _, err := users.SetBrokerVerification(ctx, "t1", "b1", false); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	// Verifying a broker without a RERA number is rejected.
	bare := seedUser(store, "b2", model.RoleBroker)
	bare.ReraID = ""
	if _, err := users.SetBrokerVerification(ctx, "admin", "b2", true); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	// Revoking needs no RERA check.
	if _, err := users.SetBrokerVerification(ctx, "admin", "b2", false); err != nil {
		t.Errorf("revoking verification should succeed, got %v", err)
	}

	// Unknown broker is a not-found, distinct from authorization failure.
	if _, err := users.SetBrokerVerification(ctx, "admin", "ghost", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPendingBrokers(t *testing.T) {
	store, users := newUserEnv()
	seedUser(store, "admin", model.RoleAdmin)
	seedUser(store, "b1", model.RoleBroker)
	verified := seedUser(store, "b2", model.RoleBroker)
	verified.IsVerified = true
	seedUser(store, "l1", model.RoleLandlord)
	ctx := context.Background()

	pending, err := users.PendingBrokers(ctx, "admin")
	if err != nil {
		t.Fatalf("PendingBrokers() error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "b1" {
		t.Errorf("pending brokers = %v, want just b1", pending)
	}

	if _, err := users.PendingBrokers(ctx, "l1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-admin, got %v", err)
	}
	if _, err := users.PendingBrokers(ctx, "ghost"); !errors.Is(err, ErrForbidden) {
		t.Errorf("unknown actor is an authorization failure, got %v", err)
	}
}
