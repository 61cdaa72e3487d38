// Package memory holds in-memory repositories. Uniqueness checks and
// inserts happen under one lock, so they give the same guarantees as the
// unique indexes of the MongoDB adapter.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]core.User
	// enrollment number -> id
	byEnrollment map[string]string
}

var _ ports.UserRepository = (*userRepository)(nil)

// NewUserRepository instantiates an in-memory user repository.
func NewUserRepository() ports.UserRepository {
	return &userRepository{
		users:        make(map[string]core.User),
		byEnrollment: make(map[string]string),
	}
}

func (r *userRepository) Save(_ context.Context, u core.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEnrollment[u.EnrollmentNumber]; ok {
		return core.ErrConflict
	}
	if _, ok := r.users[u.ID]; ok {
		return core.ErrConflict
	}

	r.users[u.ID] = u
	r.byEnrollment[u.EnrollmentNumber] = u.ID

	return nil
}

func (r *userRepository) RetrieveByID(_ context.Context, id string) (core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return core.User{}, core.ErrNotFound
	}

	return u, nil
}

func (r *userRepository) RetrieveByKey(_ context.Context, key core.LookupKey) (core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch key.Variant {
	case core.LookupEnrollment:
		id, ok := r.byEnrollment[key.Value]
		if !ok {
			return core.User{}, core.ErrNotFound
		}
		return r.users[id], nil
	case core.LookupEmail:
		var found []core.User
		for _, u := range r.users {
			if u.Email == key.Value {
				found = append(found, u)
			}
		}
		if len(found) != 1 {
			return core.User{}, core.ErrNotFound
		}
		return found[0], nil
	default:
		return core.User{}, core.ErrNotFound
	}
}

func (r *userRepository) RetrieveAll(_ context.Context) ([]core.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]core.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	return users, nil
}

func (r *userRepository) Update(_ context.Context, id string, upd core.UserUpdate) (core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return core.User{}, core.ErrNotFound
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if !upd.UpdatedAt.IsZero() {
		u.UpdatedAt = upd.UpdatedAt
	}
	r.users[id] = u

	return u, nil
}

func (r *userRepository) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return core.ErrNotFound
	}
	delete(r.users, id)
	delete(r.byEnrollment, u.EnrollmentNumber)

	return nil
}
