package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
)

// DefaultTokenTTL is the lifetime of every issued token.
const DefaultTokenTTL = 24 * time.Hour

// AuthService handles authentication business logic
type AuthService struct {
	users     ports.UserRepository
	teachers  ports.TeacherRepository
	persons   ports.PersonRepository
	hasher    ports.Hasher
	tokenizer ports.Tokenizer
	revoked   ports.RevocationList
	eventPub  ports.EventPublisher
	logger    *slog.Logger

	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users ports.UserRepository,
	teachers ports.TeacherRepository,
	persons ports.PersonRepository,
	hasher ports.Hasher,
	tokenizer ports.Tokenizer,
	revoked ports.RevocationList,
	eventPub ports.EventPublisher,
	logger *slog.Logger,
	tokenTTL time.Duration,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	return &AuthService{
		users:     users,
		teachers:  teachers,
		persons:   persons,
		hasher:    hasher,
		tokenizer: tokenizer,
		revoked:   revoked,
		eventPub:  eventPub,
		logger:    logger,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// TokenTTL returns the lifetime given to issued tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// LoginUser authenticates a user by enrollment number or email.
func (s *AuthService) LoginUser(ctx context.Context, key core.LookupKey, password string) (string, error) {
	if key.IsZero() {
		return "", core.ErrMissingField
	}
	if key.Variant == core.LookupEmail {
		key.Value = normalizeEmail(key.Value)
	}

	user, err := s.users.RetrieveByKey(ctx, key)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return "", core.ErrInvalidCredentials
	case err != nil:
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.hasher.Compare(password, user.PasswordHash); err != nil {
		return "", core.ErrInvalidCredentials
	}

	return s.issue(user.ID, core.KindUser)
}

// LoginTeacher authenticates a teacher through the email of the linked person.
func (s *AuthService) LoginTeacher(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", core.ErrMissingField
	}

	person, err := s.persons.RetrieveByEmail(ctx, email)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return "", core.ErrInvalidCredentials
	case err != nil:
		return "", fmt.Errorf("failed to retrieve person: %w", err)
	}

	teacher, err := s.teachers.RetrieveByPerson(ctx, person.ID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return "", core.ErrInvalidCredentials
	case err != nil:
		return "", fmt.Errorf("failed to retrieve teacher: %w", err)
	}

	if err := s.hasher.Compare(password, teacher.PasswordHash); err != nil {
		return "", core.ErrInvalidCredentials
	}

	return s.issue(teacher.ID, core.KindTeacher)
}

func (s *AuthService) issue(subject string, kind core.Kind) (string, error) {
	now := s.now()
	session := &core.Session{
		ID:        uuid.New().String(),
		Subject:   subject,
		Kind:      kind,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	token, err := s.tokenizer.SessionToToken(session)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	return token, nil
}

// ValidateToken checks signature, expiry and revocation, in that order.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrMissingToken
	}

	session, err := s.tokenizer.TokenToSession(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, core.ErrTokenRevoked
	}

	return session, nil
}

// Logout revokes a token. A token that has already expired can never
// validate again and is accepted without being recorded.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return core.ErrMissingToken
	}

	session, err := s.tokenizer.TokenToSessionIgnoreExpiry(token)
	if err != nil {
		return err
	}

	if session.Expired(s.now()) {
		return nil
	}

	if err := s.revoked.Revoke(ctx, token, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	// The token is already revoked locally; other instances catch up through the event.
	if err := s.eventPub.PublishLogout(ctx, session, core.TokenDigest(token)); err != nil {
		s.logger.Warn("failed to publish logout event", "subject", session.Subject, "error", err)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
