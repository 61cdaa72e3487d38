package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
)

// RegisterUser is the input of UserService.Register.
type RegisterUser struct {
	EnrollmentNumber string
	Email            string
	Password         string
	ConfirmPassword  string
}

// UpdateUser carries the optional fields of a user update. A new password
// must come with a matching confirmation.
type UpdateUser struct {
	Email           *string
	Password        *string
	ConfirmPassword *string
}

// UserService manages user credential records.
type UserService struct {
	users    ports.UserRepository
	roll     ports.RollRepository
	hasher   ports.Hasher
	eventPub ports.EventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

// NewUserService creates a new user service
func NewUserService(
	users ports.UserRepository,
	roll ports.RollRepository,
	hasher ports.Hasher,
	eventPub ports.EventPublisher,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		roll:     roll,
		hasher:   hasher,
		eventPub: eventPub,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates a user for an enrollment number on the institution roll.
// A second registration of the same number fails with core.ErrConflict.
func (s *UserService) Register(ctx context.Context, req RegisterUser) (core.User, error) {
	enrollment := strings.TrimSpace(req.EnrollmentNumber)
	if enrollment == "" || req.Password == "" || req.ConfirmPassword == "" {
		return core.User{}, core.ErrMissingField
	}

	known, err := s.roll.Contains(ctx, enrollment)
	if err != nil {
		return core.User{}, fmt.Errorf("failed to check roll: %w", err)
	}
	if !known {
		return core.User{}, core.ErrUnknownEnrollment
	}

	if req.Password != req.ConfirmPassword {
		return core.User{}, core.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return core.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := core.User{
		ID:               uuid.New().String(),
		EnrollmentNumber: enrollment,
		Email:            normalizeEmail(req.Email),
		PasswordHash:     hash,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.users.Save(ctx, user); err != nil {
		return core.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	if err := s.eventPub.PublishRegistered(ctx, core.KindUser, user.ID); err != nil {
		s.logger.Warn("failed to publish registered event", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]core.User, error) {
	users, err := s.users.RetrieveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id string) (core.User, error) {
	user, err := s.users.RetrieveByID(ctx, id)
	if err != nil {
		return core.User{}, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}

// Update changes the email and/or password of a user.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUser) (core.User, error) {
	if req.Email == nil && req.Password == nil {
		return core.User{}, core.ErrMissingField
	}

	upd := core.UserUpdate{UpdatedAt: s.now().UTC()}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		upd.Email = &email
	}

	if req.Password != nil {
		if *req.Password == "" {
			return core.User{}, core.ErrMissingField
		}
		if req.ConfirmPassword == nil || *req.ConfirmPassword != *req.Password {
			return core.User{}, core.ErrPasswordMismatch
		}

		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return core.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return core.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
