// Package storetest provides an in-memory Store for tests.
package storetest

import (
	"context"
	"sort"
	"strings"
	"time"

	"estate-service/internal/model"
	"estate-service/internal/storage"
)

// Store keeps everything in maps and mirrors the predicate semantics of the
// GORM store. Not safe for concurrent use; tests are single-goroutine.
type Store struct {
	Users       map[string]*model.User
	Properties  map[uint]*model.Property
	Images      map[uint][]model.PropertyImage
	Duplicates  map[uint]*model.DuplicateListing
	nextPropID  uint
	nextDupID   uint
	nextImageID uint

	// Now stamps CreatedAt on inserts so tests can control listing age.
	Now func() time.Time
}

func New() *Store {
	return &Store{
		Users:      map[string]*model.User{},
		Properties: map[uint]*model.Property{},
		Images:     map[uint][]model.PropertyImage{},
		Duplicates: map[uint]*model.DuplicateListing{},
		Now:        time.Now,
	}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := s.Users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *Store) UpsertUser(_ context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.Now()
	}
	user.UpdatedAt = s.Now()
	clone := *user
	s.Users[user.ID] = &clone
	return nil
}

func (s *Store) UpdateUserVerification(ctx context.Context, id string, verified bool) (*model.User, error) {
	user, ok := s.Users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	user.IsVerified = verified
	user.UpdatedAt = s.Now()
	clone := *user
	clone.ReraVerified = clone.HasVerifiedRERA()
	return &clone, nil
}

func (s *Store) GetPendingBrokers(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range s.Users {
		if u.Role == model.RoleBroker && !u.IsVerified {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *Store) CreateProperty(_ context.Context, p *model.Property, imageURLs []string) error {
	s.nextPropID++
	p.ID = s.nextPropID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.Now()
	}
	p.UpdatedAt = s.Now()
	for i, url := range imageURLs {
		s.nextImageID++
		s.Images[p.ID] = append(s.Images[p.ID], model.PropertyImage{
			ID:           s.nextImageID,
			PropertyID:   p.ID,
			ImageURL:     url,
			DisplayOrder: i,
			CreatedAt:    s.Now(),
		})
	}
	clone := *p
	s.Properties[p.ID] = &clone
	p.Images = append([]model.PropertyImage(nil), s.Images[p.ID]...)
	return nil
}

func (s *Store) GetPropertyByID(_ context.Context, id uint) (*model.Property, error) {
	p, ok := s.Properties[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.attach(p), nil
}

func (s *Store) GetPropertiesByOwner(_ context.Context, ownerID string) ([]model.Property, error) {
	matched := s.collect(func(p *model.Property) bool { return p.OwnerID == ownerID })
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *Store) GetApprovedProperties(_ context.Context) ([]model.Property, error) {
	return s.collect(func(p *model.Property) bool {
		return p.Status == model.StatusApproved && p.ListingStatus == model.ListingActive
	}), nil
}

func (s *Store) SearchProperties(_ context.Context, f model.PropertySearch) ([]model.Property, error) {
	return s.collect(func(p *model.Property) bool {
		if p.Status != model.StatusApproved || p.ListingStatus != model.ListingActive {
			return false
		}
		if f.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(f.Location)) {
			return false
		}
		if f.PropertyType != "" && string(p.PropertyType) != f.PropertyType {
			return false
		}
		if f.ListingType != "" && string(p.ListingType) != f.ListingType {
			return false
		}
		if f.MinPrice > 0 && p.Price < f.MinPrice {
			return false
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			return false
		}
		if f.Bedrooms > 0 && (p.Bedrooms == nil || *p.Bedrooms != f.Bedrooms) {
			return false
		}
		return true
	}), nil
}

func (s *Store) GetPendingProperties(_ context.Context) ([]model.Property, error) {
	return s.collect(func(p *model.Property) bool { return p.Status == model.StatusPending }), nil
}

func (s *Store) GetAllProperties(_ context.Context) ([]model.Property, error) {
	return s.collect(func(*model.Property) bool { return true }), nil
}

func (s *Store) GetPropertiesNeedingReview(_ context.Context) ([]model.Property, error) {
	return s.collect(func(p *model.Property) bool { return p.NeedsReview }), nil
}

func (s *Store) FindActiveListing(_ context.Context, title, location string) (*model.Property, error) {
	for _, p := range s.Properties {
		if p.Title == title && p.Location == location && p.ListingStatus == model.ListingActive {
			clone := *p
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) SaveProperty(_ context.Context, p *model.Property) error {
	if _, ok := s.Properties[p.ID]; !ok {
		return storage.ErrNotFound
	}
	p.UpdatedAt = s.Now()
	clone := *p
	clone.Owner = nil
	clone.Images = nil
	s.Properties[p.ID] = &clone
	return nil
}

func (s *Store) CreateDuplicateListing(_ context.Context, d *model.DuplicateListing) error {
	s.nextDupID++
	d.ID = s.nextDupID
	if d.AttemptedAt.IsZero() {
		d.AttemptedAt = s.Now()
	}
	clone := *d
	s.Duplicates[d.ID] = &clone
	return nil
}

func (s *Store) GetUnreviewedDuplicateListings(_ context.Context) ([]model.DuplicateListing, error) {
	var out []model.DuplicateListing
	for _, d := range s.Duplicates {
		if d.Reviewed {
			continue
		}
		clone := *d
		if u, ok := s.Users[d.AttemptedByUserID]; ok {
			uc := *u
			clone.AttemptedBy = &uc
		}
		if p, ok := s.Properties[d.ExistingPropertyID]; ok {
			clone.ExistingProperty = s.attach(p)
		}
		out = append(out, clone)
	}
	return out, nil
}

func (s *Store) GetDuplicateListing(_ context.Context, id uint) (*model.DuplicateListing, error) {
	d, ok := s.Duplicates[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (s *Store) SaveDuplicateListing(_ context.Context, d *model.DuplicateListing) error {
	if _, ok := s.Duplicates[d.ID]; !ok {
		return storage.ErrNotFound
	}
	clone := *d
	clone.AttemptedBy = nil
	clone.ExistingProperty = nil
	s.Duplicates[d.ID] = &clone
	return nil
}

func (s *Store) collect(match func(*model.Property) bool) []model.Property {
	ids := make([]uint, 0, len(s.Properties))
	for id := range s.Properties {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []model.Property
	for _, id := range ids {
		if match(s.Properties[id]) {
			out = append(out, *s.attach(s.Properties[id]))
		}
	}
	return out
}

func (s *Store) attach(p *model.Property) *model.Property {
	clone := *p
	if u, ok := s.Users[p.OwnerID]; ok {
		uc := *u
		uc.ReraVerified = uc.HasVerifiedRERA()
		clone.Owner = &uc
	}
	clone.Images = append([]model.PropertyImage(nil), s.Images[p.ID]...)
	return &clone
}
