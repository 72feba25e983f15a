package model

import (
	"time"

	"gorm.io/gorm"
)

// Status is the admin moderation state of a listing. It is terminal once
// it leaves pending; re-submission means a new Property record.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ListingStatus is the owner-controlled lifecycle state of an approved
// listing, distinct from the admin moderation status.
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingSold     ListingStatus = "sold"
	ListingRented   ListingStatus = "rented"
	ListingInactive ListingStatus = "inactive"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingActive, ListingSold, ListingRented, ListingInactive:
		return true
	}
	return false
}

// PropertyType classifies the physical unit.
type PropertyType string

const (
	TypeApartment PropertyType = "apartment"
	TypeVilla     PropertyType = "villa"
	TypeHouse     PropertyType = "house"
	TypeOffice    PropertyType = "office"
)

func (t PropertyType) Valid() bool {
	switch t {
	case TypeApartment, TypeVilla, TypeHouse, TypeOffice:
		return true
	}
	return false
}

// ListingType is the transaction kind offered.
type ListingType string

const (
	ListingRent ListingType = "rent"
	ListingSale ListingType = "sale"
)

func (t ListingType) Valid() bool {
	return t == ListingRent || t == ListingSale
}

// Staleness thresholds, in whole days since creation. An active listing past
// ReviewAfterDays is surfaced for re-confirmation; past UrgentAfterDays it is
// rendered with heightened urgency.
const (
	ReviewAfterDays = 30
	UrgentAfterDays = 45
)

// Property is a marketplace listing.
type Property struct {
	ID            uint          `json:"id" gorm:"primarykey"`
	Title         string        `json:"title" gorm:"type:varchar(255);not null"`
	Description   string        `json:"description" gorm:"type:text"`
	Price         float64       `json:"price" gorm:"type:decimal(10,2);not null"`
	Location      string        `json:"location" gorm:"type:varchar(255);not null;index"`
	PropertyType  PropertyType  `json:"propertyType" gorm:"type:varchar(20);not null"`
	ListingType   ListingType   `json:"listingType" gorm:"type:varchar(10);not null"`
	Bedrooms      *int          `json:"bedrooms"`
	Bathrooms     *int          `json:"bathrooms"`
	ImageURL      string        `json:"imageUrl" gorm:"type:varchar(512)"` // first image, kept for older clients
	Status        Status        `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ListingStatus ListingStatus `json:"listingStatus" gorm:"type:varchar(20);not null;default:'active';index"`
	OwnerID       string        `json:"ownerId" gorm:"type:varchar(128);not null;index"`

	LastReviewedAt *time.Time `json:"lastReviewedAt"`
	NeedsReview    bool       `json:"needsReview" gorm:"default:false;index"`
	IsVerified     bool       `json:"isVerified" gorm:"default:false"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Owner  *User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	Images []PropertyImage `json:"images,omitempty" gorm:"foreignKey:PropertyID;references:ID"`

	// Read-time staleness signals, never persisted. Independent of the
	// NeedsReview flag, which is set by an explicit action.
	DaysOld     int  `json:"daysOld" gorm:"-"`
	StaleActive bool `json:"staleActive" gorm:"-"`
	StaleUrgent bool `json:"staleUrgent" gorm:"-"`
}

func (Property) TableName() string { return "properties" }

// AgeInDays is the listing age in whole days, rounded up.
func (p *Property) AgeInDays(now time.Time) int {
	if p.CreatedAt.IsZero() || !now.After(p.CreatedAt) {
		return 0
	}
	d := now.Sub(p.CreatedAt)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// IsStaleActive reports whether the listing has been active past the review
// threshold. Age of exactly ReviewAfterDays does not trigger it.
func (p *Property) IsStaleActive(now time.Time) bool {
	return p.ListingStatus == ListingActive && p.AgeInDays(now) > ReviewAfterDays
}

// IsStaleUrgent reports whether the listing is past the urgency threshold.
func (p *Property) IsStaleUrgent(now time.Time) bool {
	return p.ListingStatus == ListingActive && p.AgeInDays(now) > UrgentAfterDays
}

// ComputeStaleness fills the derived read-time fields.
func (p *Property) ComputeStaleness(now time.Time) {
	p.DaysOld = p.AgeInDays(now)
	p.StaleActive = p.IsStaleActive(now)
	p.StaleUrgent = p.IsStaleUrgent(now)
}

// AfterFind computes the derived signals on every read.
func (p *Property) AfterFind(_ *gorm.DB) error {
	p.ComputeStaleness(time.Now())
	return nil
}

// PropertyImage is an ordered image reference owned by exactly one property.
type PropertyImage struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	PropertyID   uint      `json:"propertyId" gorm:"not null;index"`
	ImageURL     string    `json:"imageUrl" gorm:"type:varchar(512);not null"`
	DisplayOrder int       `json:"displayOrder" gorm:"default:0"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (PropertyImage) TableName() string { return "property_images" }

// PropertySearch is the optional predicate set for the public search. Absent
// filters impose no constraint; all provided filters are ANDed on top of the
// approved+active feed.
type PropertySearch struct {
	Location     string  `query:"location"`
	PropertyType string  `query:"propertyType"`
	ListingType  string  `query:"listingType"`
	MinPrice     float64 `query:"minPrice"`
	MaxPrice     float64 `query:"maxPrice"`
	Bedrooms     int     `query:"bedrooms"`
}
