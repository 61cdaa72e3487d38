package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
)

type teacherRepository struct {
	mu       sync.RWMutex
	teachers map[string]core.Teacher
	// person id -> teacher id
	byPerson map[string]string
	now      func() time.Time
}

var _ ports.TeacherRepository = (*teacherRepository)(nil)

// NewTeacherRepository instantiates an in-memory teacher repository.
func NewTeacherRepository() ports.TeacherRepository {
	return &teacherRepository{
		teachers: make(map[string]core.Teacher),
		byPerson: make(map[string]string),
		now:      time.Now,
	}
}

func (r *teacherRepository) Save(_ context.Context, t core.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPerson[t.PersonID]; ok {
		return core.ErrConflict
	}
	if _, ok := r.teachers[t.ID]; ok {
		return core.ErrConflict
	}

	r.teachers[t.ID] = t
	r.byPerson[t.PersonID] = t.ID

	return nil
}

func (r *teacherRepository) RetrieveByID(_ context.Context, id string) (core.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teachers[id]
	if !ok {
		return core.Teacher{}, core.ErrNotFound
	}

	return t, nil
}

func (r *teacherRepository) RetrieveByPerson(_ context.Context, personID string) (core.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPerson[personID]
	if !ok {
		return core.Teacher{}, core.ErrNotFound
	}

	return r.teachers[id], nil
}

func (r *teacherRepository) RetrieveAll(_ context.Context) ([]core.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teachers := make([]core.Teacher, 0, len(r.teachers))
	for _, t := range r.teachers {
		teachers = append(teachers, t)
	}
	sort.Slice(teachers, func(i, j int) bool {
		return teachers[i].CreatedAt.Before(teachers[j].CreatedAt)
	})

	return teachers, nil
}

func (r *teacherRepository) UpdateSubject(_ context.Context, id, subject string) error {
	return r.update(id, func(t *core.Teacher) { t.Subject = subject })
}

func (r *teacherRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.update(id, func(t *core.Teacher) { t.PasswordHash = passwordHash })
}

func (r *teacherRepository) update(id string, apply func(*core.Teacher)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teachers[id]
	if !ok {
		return core.ErrNotFound
	}
	apply(&t)
	t.UpdatedAt = r.now()
	r.teachers[id] = t

	return nil
}

func (r *teacherRepository) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teachers[id]
	if !ok {
		return core.ErrNotFound
	}
	delete(r.teachers, id)
	delete(r.byPerson, t.PersonID)

	return nil
}
