package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
)

type personRepository struct {
	mu      sync.RWMutex
	persons map[string]core.Person
	byEmail map[string]string
}

var _ ports.PersonRepository = (*personRepository)(nil)

// NewPersonRepository instantiates an in-memory person repository.
func NewPersonRepository() ports.PersonRepository {
	return &personRepository{
		persons: make(map[string]core.Person),
		byEmail: make(map[string]string),
	}
}

func (r *personRepository) Save(_ context.Context, p core.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[p.Email]; ok {
		return core.ErrConflict
	}
	if _, ok := r.persons[p.ID]; ok {
		return core.ErrConflict
	}

	r.persons[p.ID] = p
	r.byEmail[p.Email] = p.ID

	return nil
}

func (r *personRepository) RetrieveByID(_ context.Context, id string) (core.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.persons[id]
	if !ok {
		return core.Person{}, core.ErrNotFound
	}

	return p, nil
}

func (r *personRepository) RetrieveByEmail(_ context.Context, email string) (core.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return core.Person{}, core.ErrNotFound
	}

	return r.persons[id], nil
}

func (r *personRepository) RetrieveAll(_ context.Context) ([]core.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	persons := make([]core.Person, 0, len(r.persons))
	for _, p := range r.persons {
		persons = append(persons, p)
	}
	sort.Slice(persons, func(i, j int) bool {
		return persons[i].CreatedAt.Before(persons[j].CreatedAt)
	})

	return persons, nil
}

type rollRepository struct {
	mu      sync.RWMutex
	entries map[string]core.RollEntry
}

var _ ports.RollRepository = (*rollRepository)(nil)

// NewRollRepository instantiates an in-memory institution roll.
func NewRollRepository() ports.RollRepository {
	return &rollRepository{entries: make(map[string]core.RollEntry)}
}

func (r *rollRepository) Save(_ context.Context, e core.RollEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.EnrollmentNumber]; ok {
		return core.ErrConflict
	}
	r.entries[e.EnrollmentNumber] = e

	return nil
}

func (r *rollRepository) Contains(_ context.Context, enrollmentNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[enrollmentNumber]

	return ok, nil
}

func (r *rollRepository) RetrieveAll(_ context.Context) ([]core.RollEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]core.RollEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EnrollmentNumber < entries[j].EnrollmentNumber
	})

	return entries, nil
}
