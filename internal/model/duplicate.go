package model

import "time"

// DuplicateListing is the audit record written when a creation attempt
// collides with an existing active listing. Records are never deleted;
// admins mark them reviewed.
type DuplicateListing struct {
	ID                 uint      `json:"id" gorm:"primarykey"`
	AttemptedTitle     string    `json:"attemptedTitle" gorm:"type:varchar(255);not null"`
	AttemptedLocation  string    `json:"attemptedLocation" gorm:"type:varchar(255);not null"`
	AttemptedByUserID  string    `json:"attemptedByUserId" gorm:"type:varchar(128);not null;index"`
	ExistingPropertyID uint      `json:"existingPropertyId" gorm:"not null;index"`
	AttemptedAt        time.Time `json:"attemptedAt" gorm:"autoCreateTime"`
	Reviewed           bool      `json:"reviewed" gorm:"default:false;index"`

	AttemptedBy      *User     `json:"attemptedBy,omitempty" gorm:"foreignKey:AttemptedByUserID;references:ID"`
	ExistingProperty *Property `json:"existingProperty,omitempty" gorm:"foreignKey:ExistingPropertyID;references:ID"`
}

func (DuplicateListing) TableName() string { return "duplicate_listings" }
