package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/layer-3/campus/adapters/hasher"
	"github.com/layer-3/campus/adapters/memory"
	"github.com/layer-3/campus/adapters/store"
	"github.com/layer-3/campus/adapters/tokenizer"
	"github.com/layer-3/campus/mocks"
	"github.com/layer-3/campus/ports"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	enrollment = "E100"
	password   = "Secret123!"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	clock     *clock
	users     ports.UserRepository
	teachers  ports.TeacherRepository
	persons   ports.PersonRepository
	roll      ports.RollRepository
	revoked   *store.MemoryStore
	pub       *mocks.EventPublisher
	auth      *AuthService
	userSvc   *UserService
	teachSvc  *TeacherService
	directory *DirectoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	c := &clock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tok, err := tokenizer.NewJWTTokenizer([]byte("test-secret"))
	require.NoError(t, err)
	tok = tok.WithClock(c.now)

	h := hasher.NewWithCost(bcrypt.MinCost)

	pub := new(mocks.EventPublisher)
	pub.On("PublishRegistered", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	pub.On("PublishLogout", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	f := &fixture{
		clock:    c,
		users:    memory.NewUserRepository(),
		teachers: memory.NewTeacherRepository(),
		persons:  memory.NewPersonRepository(),
		roll:     memory.NewRollRepository(),
		revoked:  store.NewMemoryStore(),
		pub:      pub,
	}

	f.auth = NewAuthService(f.users, f.teachers, f.persons, h, tok, f.revoked, pub, logger, DefaultTokenTTL)
	f.auth.now = c.now
	f.userSvc = NewUserService(f.users, f.roll, h, pub, logger)
	f.userSvc.now = c.now
	f.teachSvc = NewTeacherService(f.teachers, f.persons, h, pub, logger)
	f.teachSvc.now = c.now
	f.directory = NewDirectoryService(f.persons, f.roll)
	f.directory.now = c.now

	return f
}
