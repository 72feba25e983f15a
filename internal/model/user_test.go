package model

import "testing"

func TestHasVerifiedRERA(t *testing.T) {
	base := func() *User {
		return &User{
			ID:         "u1",
			Role:       RoleBroker,
			IsVerified: true,
			ReraID:     "RERA-123",
		}
	}

	if !base().HasVerifiedRERA() {
		t.Fatal("verified broker with RERA id should show the badge")
	}

	tests := []struct {
		name   string
		mutate func(*User)
	}{
		{"not a broker", func(u *User) { u.Role = RoleLandlord }},
		{"not verified", func(u *User) { u.IsVerified = false }},
		{"no rera id", func(u *User) { u.ReraID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := base()
			tt.mutate(u)
			if u.HasVerifiedRERA() {
				t.Errorf("badge should be hidden when %s", tt.name)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleTenant, RoleLandlord, RoleBroker, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	if Role("superuser").Valid() {
		t.Error("unknown role should be invalid")
	}
}

func TestRoleCanList(t *testing.T) {
	if !RoleLandlord.CanList() || !RoleBroker.CanList() {
		t.Error("landlords and brokers can hold listings")
	}
	if RoleTenant.CanList() || RoleAdmin.CanList() {
		t.Error("tenants and admins cannot hold listings")
	}
}
