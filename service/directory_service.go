package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
)

// DirectoryService maintains the persons teachers link to and the
// institution roll users register against.
type DirectoryService struct {
	persons ports.PersonRepository
	roll    ports.RollRepository
	now     func() time.Time
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(persons ports.PersonRepository, roll ports.RollRepository) *DirectoryService {
	return &DirectoryService{
		persons: persons,
		roll:    roll,
		now:     time.Now,
	}
}

// CreatePerson adds a person. Emails are unique.
func (s *DirectoryService) CreatePerson(ctx context.Context, name, email string) (core.Person, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return core.Person{}, core.ErrMissingField
	}

	person := core.Person{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: s.now().UTC(),
	}

	if err := s.persons.Save(ctx, person); err != nil {
		return core.Person{}, fmt.Errorf("failed to save person: %w", err)
	}

	return person, nil
}

// GetPerson returns the person with the given id.
func (s *DirectoryService) GetPerson(ctx context.Context, id string) (core.Person, error) {
	person, err := s.persons.RetrieveByID(ctx, id)
	if err != nil {
		return core.Person{}, fmt.Errorf("failed to retrieve person: %w", err)
	}

	return person, nil
}

// ListPersons returns every person.
func (s *DirectoryService) ListPersons(ctx context.Context) ([]core.Person, error) {
	persons, err := s.persons.RetrieveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}

	return persons, nil
}

// AddToRoll puts an enrollment number on the institution roll.
func (s *DirectoryService) AddToRoll(ctx context.Context, enrollmentNumber, name string) (core.RollEntry, error) {
	enrollmentNumber = strings.TrimSpace(enrollmentNumber)
	if enrollmentNumber == "" {
		return core.RollEntry{}, core.ErrMissingField
	}

	entry := core.RollEntry{
		EnrollmentNumber: enrollmentNumber,
		Name:             strings.TrimSpace(name),
		CreatedAt:        s.now().UTC(),
	}

	if err := s.roll.Save(ctx, entry); err != nil {
		return core.RollEntry{}, fmt.Errorf("failed to save roll entry: %w", err)
	}

	return entry, nil
}

// ListRoll returns the institution roll.
func (s *DirectoryService) ListRoll(ctx context.Context) ([]core.RollEntry, error) {
	entries, err := s.roll.RetrieveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roll: %w", err)
	}

	return entries, nil
}
