package storage

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"estate-service/internal/model"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

// NewStore wraps a GORM connection.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// withOwnerAndImages attaches the owning user and the image list ordered by
// display order, the shape every property read returns.
func (s *GormStore) withOwnerAndImages(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		})
}

// User operations.

func (s *GormStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormStore) UpsertUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *GormStore) UpdateUserVerification(ctx context.Context, id string, verified bool) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsVerified = verified
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	user.ReraVerified = user.HasVerifiedRERA()
	return user, nil
}

func (s *GormStore) GetPendingBrokers(ctx context.Context) ([]model.User, error) {
	var brokers []model.User
	err := s.db.WithContext(ctx).
		Where("role = ? AND is_verified = ?", model.RoleBroker, false).
		Find(&brokers).Error
	return brokers, err
}

// Property operations.

// CreateProperty inserts the property and its images in one transaction so a
// failed image insert never leaves a half-created listing.
func (s *GormStore) CreateProperty(ctx context.Context, p *model.Property, imageURLs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if len(imageURLs) == 0 {
			return nil
		}
		images := make([]model.PropertyImage, 0, len(imageURLs))
		for i, url := range imageURLs {
			images = append(images, model.PropertyImage{
				PropertyID:   p.ID,
				ImageURL:     url,
				DisplayOrder: i,
			})
		}
		if err := tx.Create(&images).Error; err != nil {
			return err
		}
		p.Images = images
		return nil
	})
}

func (s *GormStore) GetPropertyByID(ctx context.Context, id uint) (*model.Property, error) {
	var property model.Property
	if err := s.withOwnerAndImages(ctx).First(&property, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &property, nil
}

func (s *GormStore) GetPropertiesByOwner(ctx context.Context, ownerID string) ([]model.Property, error) {
	var properties []model.Property
	err := s.withOwnerAndImages(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error
	return properties, err
}

func (s *GormStore) GetApprovedProperties(ctx context.Context) ([]model.Property, error) {
	var properties []model.Property
	err := s.withOwnerAndImages(ctx).
		Where("status = ? AND listing_status = ?", model.StatusApproved, model.ListingActive).
		Find(&properties).Error
	return properties, err
}

func (s *GormStore) SearchProperties(ctx context.Context, filters model.PropertySearch) ([]model.Property, error) {
	query := s.withOwnerAndImages(ctx).
		Where("status = ? AND listing_status = ?", model.StatusApproved, model.ListingActive)

	if filters.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filters.Location)+"%")
	}
	if filters.PropertyType != "" {
		query = query.Where("property_type = ?", filters.PropertyType)
	}
	if filters.ListingType != "" {
		query = query.Where("listing_type = ?", filters.ListingType)
	}
	if filters.MinPrice > 0 {
		query = query.Where("price >= ?", filters.MinPrice)
	}
	if filters.MaxPrice > 0 {
		query = query.Where("price <= ?", filters.MaxPrice)
	}
	if filters.Bedrooms > 0 {
		query = query.Where("bedrooms = ?", filters.Bedrooms)
	}

	var properties []model.Property
	err := query.Find(&properties).Error
	return properties, err
}

func (s *GormStore) GetPendingProperties(ctx context.Context) ([]model.Property, error) {
	var properties []model.Property
	err := s.withOwnerAndImages(ctx).
		Where("status = ?", model.StatusPending).
		Find(&properties).Error
	return properties, err
}

func (s *GormStore) GetAllProperties(ctx context.Context) ([]model.Property, error) {
	var properties []model.Property
	err := s.withOwnerAndImages(ctx).Find(&properties).Error
	return properties, err
}

func (s *GormStore) GetPropertiesNeedingReview(ctx context.Context) ([]model.Property, error) {
	var properties []model.Property
	err := s.withOwnerAndImages(ctx).
		Where("needs_review = ?", true).
		Find(&properties).Error
	return properties, err
}

// FindActiveListing is the duplicate probe: exact title and location match
// against listings that are still active. Sold, rented, and inactive
// listings do not count as collisions.
func (s *GormStore) FindActiveListing(ctx context.Context, title, location string) (*model.Property, error) {
	var property model.Property
	err := s.db.WithContext(ctx).
		Where("title = ? AND location = ? AND listing_status = ?", title, location, model.ListingActive).
		First(&property).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &property, nil
}

func (s *GormStore) SaveProperty(ctx context.Context, p *model.Property) error {
	// Save with associations disabled; owner and images are managed
	// separately and must not be written back.
	return s.db.WithContext(ctx).Omit("Owner", "Images").Save(p).Error
}

// Duplicate listing operations.

func (s *GormStore) CreateDuplicateListing(ctx context.Context, d *model.DuplicateListing) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *GormStore) GetUnreviewedDuplicateListings(ctx context.Context) ([]model.DuplicateListing, error) {
	var duplicates []model.DuplicateListing
	err := s.db.WithContext(ctx).
		Preload("AttemptedBy").
		Preload("ExistingProperty").
		Preload("ExistingProperty.Owner").
		Where("reviewed = ?", false).
		Find(&duplicates).Error
	return duplicates, err
}

func (s *GormStore) GetDuplicateListing(ctx context.Context, id uint) (*model.DuplicateListing, error) {
	var duplicate model.DuplicateListing
	if err := s.db.WithContext(ctx).First(&duplicate, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &duplicate, nil
}

func (s *GormStore) SaveDuplicateListing(ctx context.Context, d *model.DuplicateListing) error {
	return s.db.WithContext(ctx).Omit("AttemptedBy", "ExistingProperty").Save(d).Error
}
