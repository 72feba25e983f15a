package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"estate-service/internal/model"
	"estate-service/internal/storage"
)

// PropertyService holds the listing lifecycle: creation with duplicate
// detection, the moderation state machine, owner listing-status changes,
// and the role-scoped retrieval operations.
type PropertyService struct {
	store storage.Store
	users *UserService
	log   *zap.Logger
	now   func() time.Time
}

func NewPropertyService(store storage.Store, users *UserService, log *zap.Logger) *PropertyService {
	return &PropertyService{
		store: store,
		users: users,
		log:   log,
		now:   time.Now,
	}
}

// CreatePropertyInput is the listing creation request. Image URLs arrive
// already stored; submission order becomes display order.
type CreatePropertyInput struct {
	Title        string             `json:"title" validate:"required"`
	Description  string             `json:"description"`
	Price        float64            `json:"price" validate:"required,gt=0"`
	Location     string             `json:"location" validate:"required"`
	PropertyType model.PropertyType `json:"propertyType" validate:"required"`
	ListingType  model.ListingType  `json:"listingType" validate:"required"`
	Bedrooms     *int               `json:"bedrooms"`
	Bathrooms    *int               `json:"bathrooms"`
	ImageURLs    []string           `json:"imageUrls"`
}

// Create persists a new listing for a landlord or broker. A collision with
// an existing active listing on exact (title, location) logs a duplicate
// attempt and fails with DuplicateListingError instead of creating anything.
//
// The check and the insert are not serialized against concurrent creates;
// two simultaneous submissions of the same (title, location) can both pass,
// matching the documented behavior of the moderation workflow.
func (s *PropertyService) Create(ctx context.Context, actorID string, input CreatePropertyInput) (*model.Property, error) {
	actor, err := s.requireLister(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if input.Title == "" || input.Location == "" {
		return nil, invalidf("title and location are required")
	}
	if input.Price <= 0 {
		return nil, invalidf("price must be positive")
	}
	if !input.PropertyType.Valid() {
		return nil, invalidf("invalid property type %q", input.PropertyType)
	}
	if !input.ListingType.Valid() {
		return nil, invalidf("invalid listing type %q", input.ListingType)
	}

	existing, err := s.store.FindActiveListing(ctx, input.Title, input.Location)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		attempt := &model.DuplicateListing{
			AttemptedTitle:     input.Title,
			AttemptedLocation:  input.Location,
			AttemptedByUserID:  actor.ID,
			ExistingPropertyID: existing.ID,
		}
		if err := s.store.CreateDuplicateListing(ctx, attempt); err != nil {
			return nil, err
		}
		s.log.Warn("duplicate listing attempt logged",
			zap.String("user_id", actor.ID),
			zap.Uint("existing_property_id", existing.ID),
			zap.String("title", input.Title))
		return nil, &DuplicateListingError{ExistingPropertyID: existing.ID}
	}

	firstImage := ""
	if len(input.ImageURLs) > 0 {
		firstImage = input.ImageURLs[0]
	}

	// New listings always enter the moderation queue as pending/active,
	// whatever the client sent.
	property := &model.Property{
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
		Location:      input.Location,
		PropertyType:  input.PropertyType,
		ListingType:   input.ListingType,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		ImageURL:      firstImage,
		Status:        model.StatusPending,
		ListingStatus: model.ListingActive,
		OwnerID:       actor.ID,
	}
	if err := s.store.CreateProperty(ctx, property, input.ImageURLs); err != nil {
		return nil, err
	}

	s.log.Info("property created",
		zap.Uint("property_id", property.ID),
		zap.String("owner_id", actor.ID),
		zap.String("title", property.Title))
	return property, nil
}

// ApprovedFeed is the public listing feed: approved and still active.
func (s *PropertyService) ApprovedFeed(ctx context.Context) ([]model.Property, error) {
	return s.store.GetApprovedProperties(ctx)
}

// Search narrows the public feed by the provided filters; absent filters
// impose no constraint.
func (s *PropertyService) Search(ctx context.Context, filters model.PropertySearch) ([]model.Property, error) {
	return s.store.SearchProperties(ctx, filters)
}

// ByID fetches one property with owner and images attached.
func (s *PropertyService) ByID(ctx context.Context, id uint) (*model.Property, error) {
	property, err := s.store.GetPropertyByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return property, nil
}

// ByOwner returns the requester's own listings, all statuses, most recent
// first, with read-time staleness signals computed.
func (s *PropertyService) ByOwner(ctx context.Context, actorID, ownerID string) ([]model.Property, error) {
	if actorID != ownerID {
		return nil, ErrForbidden
	}
	properties, err := s.store.GetPropertiesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.computeStaleness(properties)
	return properties, nil
}

// UpdateListingStatus applies an owner-controlled lifecycle change. Only the
// owning landlord or broker may move the listing, and only once an admin has
// approved it.
func (s *PropertyService) UpdateListingStatus(ctx context.Context, actorID string, propertyID uint, status model.ListingStatus) (*model.Property, error) {
	actor, err := s.requireLister(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, invalidf("invalid listing status %q", status)
	}

	property, err := s.ByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != actor.ID {
		return nil, ErrForbidden
	}
	if property.Status != model.StatusApproved {
		return nil, invalidf("listing status can only change on approved properties")
	}

	property.ListingStatus = status
	if err := s.store.SaveProperty(ctx, property); err != nil {
		return nil, err
	}
	s.log.Info("listing status updated",
		zap.Uint("property_id", property.ID),
		zap.String("listing_status", string(status)))
	return property, nil
}

// Moderate applies the admin decision on a pending listing. The decision is
// terminal: approved and rejected listings never return to pending. The
// optional verified flag lets an admin approve and verify in one call, or
// approve first and verify later. A decision counts as a review, so it
// clears the persisted needs-review flag and stamps the review time.
func (s *PropertyService) Moderate(ctx context.Context, actorID string, propertyID uint, decision model.Status, verified *bool) (*model.Property, error) {
	if _, err := s.users.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if decision != model.StatusApproved && decision != model.StatusRejected {
		return nil, invalidf("invalid status %q", decision)
	}

	property, err := s.ByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.Status != model.StatusPending {
		return nil, invalidf("property is already %s", property.Status)
	}

	property.Status = decision
	if verified != nil {
		property.IsVerified = *verified
	}
	property.NeedsReview = false
	reviewedAt := s.now()
	property.LastReviewedAt = &reviewedAt

	if err := s.store.SaveProperty(ctx, property); err != nil {
		return nil, err
	}
	s.log.Info("property moderated",
		zap.Uint("property_id", property.ID),
		zap.String("status", string(decision)),
		zap.Bool("verified", property.IsVerified))
	return property, nil
}

// MarkForReview sets the persisted needs-review flag. Owners flag their own
// listings; admins may flag any.
func (s *PropertyService) MarkForReview(ctx context.Context, actorID string, propertyID uint) (*model.Property, error) {
	actor, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	property, err := s.ByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && property.OwnerID != actor.ID {
		return nil, ErrForbidden
	}

	property.NeedsReview = true
	if err := s.store.SaveProperty(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// Pending lists properties awaiting moderation. Admin only.
func (s *PropertyService) Pending(ctx context.Context, actorID string) ([]model.Property, error) {
	if _, err := s.users.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.store.GetPendingProperties(ctx)
}

// All lists every property regardless of status. Admin only.
func (s *PropertyService) All(ctx context.Context, actorID string) ([]model.Property, error) {
	if _, err := s.users.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	properties, err := s.store.GetAllProperties(ctx)
	if err != nil {
		return nil, err
	}
	s.computeStaleness(properties)
	return properties, nil
}

// NeedingReview lists properties with the persisted needs-review flag set.
// Admin only. The computed staleness signals ride along so the review queue
// can order by urgency.
func (s *PropertyService) NeedingReview(ctx context.Context, actorID string) ([]model.Property, error) {
	if _, err := s.users.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	properties, err := s.store.GetPropertiesNeedingReview(ctx)
	if err != nil {
		return nil, err
	}
	s.computeStaleness(properties)
	return properties, nil
}

// Duplicates lists unreviewed duplicate attempts with the attempting user
// and the colliding property attached. Admin only.
func (s *PropertyService) Duplicates(ctx context.Context, actorID string) ([]model.DuplicateListing, error) {
	if _, err := s.users.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.store.GetUnreviewedDuplicateListings(ctx)
}

// ReviewDuplicate marks a duplicate attempt reviewed. Marking an already
// reviewed attempt is a no-op, not an error.
func (s *PropertyService) ReviewDuplicate(ctx context.Context, actorID string, id uint) (*model.DuplicateListing, error) {
	if _, err := s.users.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	duplicate, err := s.store.GetDuplicateListing(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if duplicate.Reviewed {
		return duplicate, nil
	}

	duplicate.Reviewed = true
	if err := s.store.SaveDuplicateListing(ctx, duplicate); err != nil {
		return nil, err
	}
	return duplicate, nil
}

func (s *PropertyService) computeStaleness(properties []model.Property) {
	now := s.now()
	for i := range properties {
		properties[i].ComputeStaleness(now)
	}
}

// requireLister loads the actor and rejects roles that cannot hold listings.
func (s *PropertyService) requireLister(ctx context.Context, actorID string) (*model.User, error) {
	actor, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !actor.Role.CanList() {
		return nil, ErrForbidden
	}
	return actor, nil
}
