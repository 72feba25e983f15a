// Package storage persists marketplace state in the relational store.
package storage

import (
	"context"
	"errors"

	"estate-service/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary of the service. Implemented by the GORM
// store in this package and by the in-memory store in storetest.
type Store interface {
	// User operations.
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpsertUser(ctx context.Context, user *model.User) error
	UpdateUserVerification(ctx context.Context, id string, verified bool) (*model.User, error)
	GetPendingBrokers(ctx context.Context) ([]model.User, error)

	// Property operations. Reads attach the owning user and the ordered
	// image list.
	CreateProperty(ctx context.Context, p *model.Property, imageURLs []string) error
	GetPropertyByID(ctx context.Context, id uint) (*model.Property, error)
	GetPropertiesByOwner(ctx context.Context, ownerID string) ([]model.Property, error)
	GetApprovedProperties(ctx context.Context) ([]model.Property, error)
	SearchProperties(ctx context.Context, filters model.PropertySearch) ([]model.Property, error)
	GetPendingProperties(ctx context.Context) ([]model.Property, error)
	GetAllProperties(ctx context.Context) ([]model.Property, error)
	GetPropertiesNeedingReview(ctx context.Context) ([]model.Property, error)
	FindActiveListing(ctx context.Context, title, location string) (*model.Property, error)
	SaveProperty(ctx context.Context, p *model.Property) error

	// Duplicate listing operations.
	CreateDuplicateListing(ctx context.Context, d *model.DuplicateListing) error
	GetUnreviewedDuplicateListings(ctx context.Context) ([]model.DuplicateListing, error)
	GetDuplicateListing(ctx context.Context, id uint) (*model.DuplicateListing, error)
	SaveDuplicateListing(ctx context.Context, d *model.DuplicateListing) error
}
