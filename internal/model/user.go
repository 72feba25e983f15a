package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the marketplace role a user acts under.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
	RoleBroker   Role = "broker"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTenant, RoleLandlord, RoleBroker, RoleAdmin:
		return true
	}
	return false
}

// CanList reports whether the role is allowed to create listings.
func (r Role) CanList() bool {
	return r == RoleLandlord || r == RoleBroker
}

// SelectableRoles are the roles a user may choose for themselves.
// Admin is never self-assignable.
var SelectableRoles = []Role{RoleTenant, RoleLandlord, RoleBroker}

// User is an identity-provider-linked account. The primary key is the
// external uid issued by Firebase, not a serial.
type User struct {
	ID              string    `json:"id" gorm:"type:varchar(128);primarykey"`
	Email           string    `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	FirstName       string    `json:"firstName" gorm:"type:varchar(100)"`
	LastName        string    `json:"lastName" gorm:"type:varchar(100)"`
	ProfileImageURL string    `json:"profileImageUrl" gorm:"type:varchar(512)"`
	Role            Role      `json:"role" gorm:"type:varchar(20);not null;default:'tenant'"`
	PhoneNumber     string    `json:"phoneNumber" gorm:"type:varchar(20)"`
	ReraID          string    `json:"reraId" gorm:"type:varchar(64)"`
	IsVerified      bool      `json:"isVerified" gorm:"default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// ReraVerified is computed on read, never stored. All three conditions
	// are required for the badge.
	ReraVerified bool `json:"reraVerified" gorm:"-"`
}

func (User) TableName() string { return "users" }

// HasVerifiedRERA reports whether the RERA badge is shown for this user:
// broker role, admin verification, and a non-empty registration number.
func (u *User) HasVerifiedRERA() bool {
	return u.Role == RoleBroker && u.IsVerified && u.ReraID != ""
}

// AfterFind populates the computed badge field on every read.
func (u *User) AfterFind(_ *gorm.DB) error {
	u.ReraVerified = u.HasVerifiedRERA()
	return nil
}

// Identity is the verified tuple supplied by the identity provider.
// The service trusts it as-is once the token has been verified.
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}
