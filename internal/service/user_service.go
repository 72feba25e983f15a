package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"estate-service/internal/model"
	"estate-service/internal/storage"
)

// minPhoneDigits is the shortest phone number accepted on profile updates.
const minPhoneDigits = 10

// UserService resolves external identities to user records and manages role
// and verification state.
type UserService struct {
	store storage.Store
	log   *zap.Logger
}

func NewUserService(store storage.Store, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log}
}

// Resolve returns the internal user for a verified identity, creating a
// default tenant record on first sight.
func (s *UserService) Resolve(ctx context.Context, ident model.Identity) (*model.User, error) {
	if ident.UID == "" {
		return nil, invalidf("identity has no uid")
	}

	user, err := s.store.GetUser(ctx, ident.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	first, last := splitName(ident.Name)
	user = &model.User{
		ID:              ident.UID,
		Email:           ident.Email,
		FirstName:       first,
		LastName:        last,
		ProfileImageURL: ident.Picture,
		Role:            model.RoleTenant,
	}
	if err := s.store.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("created user from identity provider",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// RoleUpdateInput is the self-service role/profile change request.
type RoleUpdateInput struct {
	Role        model.Role `json:"role" validate:"required"`
	PhoneNumber string     `json:"phoneNumber" validate:"required"`
	ReraID      string     `json:"reraId"`
}

// UpdateRole applies a self-service role change. Adopting the broker role
// always resets the verification flag; an admin has to re-verify even a
// previously verified broker.
func (s *UserService) UpdateRole(ctx context.Context, userID string, input RoleUpdateInput) (*model.User, error) {
	if !selectableRole(input.Role) {
		return nil, invalidf("invalid role %q", input.Role)
	}
	if len(digitsOf(input.PhoneNumber)) < minPhoneDigits {
		return nil, invalidf("phone number must be at least %d digits", minPhoneDigits)
	}
	if input.Role == model.RoleBroker && input.ReraID == "" {
		return nil, invalidf("RERA registration number is required for brokers")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user.Role = input.Role
	user.PhoneNumber = input.PhoneNumber
	if input.Role == model.RoleBroker {
		user.ReraID = input.ReraID
		user.IsVerified = false
	}

	if err := s.store.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	user.ReraVerified = user.HasVerifiedRERA()
	s.log.Info("user role updated",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// PendingBrokers lists brokers awaiting admin verification.
func (s *UserService) PendingBrokers(ctx context.Context, actorID string) ([]model.User, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.store.GetPendingBrokers(ctx)
}

// SetBrokerVerification flips the admin verification flag on a user.
// Granting verification requires a broker with a registration number on
// file; a verified broker without one is a meaningless state.
func (s *UserService) SetBrokerVerification(ctx context.Context, actorID, brokerID string, verified bool) (*model.User, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	broker, err := s.store.GetUser(ctx, brokerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if verified && (broker.Role != model.RoleBroker || broker.ReraID == "") {
		return nil, invalidf("cannot verify: user is not a broker with a RERA registration number")
	}

	updated, err := s.store.UpdateUserVerification(ctx, brokerID, verified)
	if err != nil {
		return nil, err
	}
	s.log.Info("broker verification updated",
		zap.String("broker_id", brokerID),
		zap.Bool("verified", verified))
	return updated, nil
}

// requireAdmin loads the actor and rejects anything but the admin role. A
// missing actor is an authorization failure, not a lookup failure.
func (s *UserService) requireAdmin(ctx context.Context, actorID string) (*model.User, error) {
	actor, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if actor.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return actor, nil
}

func selectableRole(r model.Role) bool {
	for _, allowed := range model.SelectableRoles {
		if r == allowed {
			return true
		}
	}
	return false
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
