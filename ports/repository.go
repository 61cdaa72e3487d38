package ports

import (
	"context"

	"github.com/layer-3/campus/core"
)

// UserRepository persists user credential records. Save must reject a
// second record with the same enrollment number with core.ErrConflict,
// atomically with the insert.
type UserRepository interface {
	Save(ctx context.Context, u core.User) error
	RetrieveByID(ctx context.Context, id string) (core.User, error)
	// RetrieveByKey resolves an enrollment or email key to exactly one record.
	RetrieveByKey(ctx context.Context, key core.LookupKey) (core.User, error)
	RetrieveAll(ctx context.Context) ([]core.User, error)
	Update(ctx context.Context, id string, upd core.UserUpdate) (core.User, error)
	Remove(ctx context.Context, id string) error
}

// TeacherRepository persists teacher credential records, unique per person.
type TeacherRepository interface {
	Save(ctx context.Context, t core.Teacher) error
	RetrieveByID(ctx context.Context, id string) (core.Teacher, error)
	RetrieveByPerson(ctx context.Context, personID string) (core.Teacher, error)
	RetrieveAll(ctx context.Context) ([]core.Teacher, error)
	UpdateSubject(ctx context.Context, id, subject string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Remove(ctx context.Context, id string) error
}

// PersonRepository persists persons, unique per email.
type PersonRepository interface {
	Save(ctx context.Context, p core.Person) error
	RetrieveByID(ctx context.Context, id string) (core.Person, error)
	RetrieveByEmail(ctx context.Context, email string) (core.Person, error)
	RetrieveAll(ctx context.Context) ([]core.Person, error)
}

// RollRepository is the institution roll of known enrollment numbers.
type RollRepository interface {
	Save(ctx context.Context, e core.RollEntry) error
	Contains(ctx context.Context, enrollmentNumber string) (bool, error)
	RetrieveAll(ctx context.Context) ([]core.RollEntry, error)
}
