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

// CreateTeacher is the input of TeacherService.Create.
type CreateTeacher struct {
	PersonID        string
	Subject         string
	Password        string
	ConfirmPassword string
}

// TeacherService manages teacher credential records.
type TeacherService struct {
	teachers ports.TeacherRepository
	persons  ports.PersonRepository
	hasher   ports.Hasher
	eventPub ports.EventPublisher
	logger   *slog.Logger
	now      func() time.Time
}

// NewTeacherService creates a new teacher service
func NewTeacherService(
	teachers ports.TeacherRepository,
	persons ports.PersonRepository,
	hasher ports.Hasher,
	eventPub ports.EventPublisher,
	logger *slog.Logger,
) *TeacherService {
	return &TeacherService{
		teachers: teachers,
		persons:  persons,
		hasher:   hasher,
		eventPub: eventPub,
		logger:   logger,
		now:      time.Now,
	}
}

// Create links a teacher record to an existing person. One teacher per
// person; a second one fails with core.ErrConflict.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacher) (core.Teacher, error) {
	personID := strings.TrimSpace(req.PersonID)
	if personID == "" || req.Password == "" || req.ConfirmPassword == "" {
		return core.Teacher{}, core.ErrMissingField
	}

	if _, err := s.persons.RetrieveByID(ctx, personID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.Teacher{}, core.ErrUnknownPerson
		}
		return core.Teacher{}, fmt.Errorf("failed to retrieve person: %w", err)
	}

	if req.Password != req.ConfirmPassword {
		return core.Teacher{}, core.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return core.Teacher{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	teacher := core.Teacher{
		ID:           uuid.New().String(),
		PersonID:     personID,
		Subject:      strings.TrimSpace(req.Subject),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.teachers.Save(ctx, teacher); err != nil {
		return core.Teacher{}, fmt.Errorf("failed to save teacher: %w", err)
	}

	if err := s.eventPub.PublishRegistered(ctx, core.KindTeacher, teacher.ID); err != nil {
		s.logger.Warn("failed to publish registered event", "teacher_id", teacher.ID, "error", err)
	}

	return teacher, nil
}

// List returns every teacher.
func (s *TeacherService) List(ctx context.Context) ([]core.Teacher, error) {
	teachers, err := s.teachers.RetrieveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}

	return teachers, nil
}

// Get returns the teacher with the given id.
func (s *TeacherService) Get(ctx context.Context, id string) (core.Teacher, error) {
	teacher, err := s.teachers.RetrieveByID(ctx, id)
	if err != nil {
		return core.Teacher{}, fmt.Errorf("failed to retrieve teacher: %w", err)
	}

	return teacher, nil
}

// UpdateSubject changes the subject a teacher teaches.
func (s *TeacherService) UpdateSubject(ctx context.Context, id, subject string) (core.Teacher, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return core.Teacher{}, core.ErrMissingField
	}

	if err := s.teachers.UpdateSubject(ctx, id, subject); err != nil {
		return core.Teacher{}, fmt.Errorf("failed to update teacher: %w", err)
	}

	return s.Get(ctx, id)
}

// UpdatePassword replaces the password of a teacher.
func (s *TeacherService) UpdatePassword(ctx context.Context, id, password, confirmPassword string) error {
	if password == "" || confirmPassword == "" {
		return core.ErrMissingField
	}
	if password != confirmPassword {
		return core.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.teachers.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("failed to update teacher password: %w", err)
	}

	return nil
}

// Delete removes a teacher.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if err := s.teachers.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	return nil
}
