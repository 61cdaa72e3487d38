package campus_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/campus"
	"github.com/layer-3/campus/adapters/events"
	"github.com/layer-3/campus/adapters/hasher"
	"github.com/layer-3/campus/adapters/memory"
	"github.com/layer-3/campus/adapters/store"
	"github.com/layer-3/campus/adapters/tokenizer"
	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/internal/logger"
	"github.com/layer-3/campus/service"
	httpapi "github.com/layer-3/campus/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const password = "Secret123!"

type fixture struct {
	client    *campus.HTTPClient
	directory *service.DirectoryService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewMock()
	tok, err := tokenizer.NewJWTTokenizer([]byte("client-test-secret"))
	require.NoError(t, err)

	users := memory.NewUserRepository()
	teachers := memory.NewTeacherRepository()
	persons := memory.NewPersonRepository()
	roll := memory.NewRollRepository()
	h := hasher.NewWithCost(bcrypt.MinCost)
	pub := events.NopPublisher{}

	svc := httpapi.Services{
		Auth:      service.NewAuthService(users, teachers, persons, h, tok, store.NewMemoryStore(), pub, log, service.DefaultTokenTTL),
		Users:     service.NewUserService(users, roll, h, pub, log),
		Teachers:  service.NewTeacherService(teachers, persons, h, pub, log),
		Directory: service.NewDirectoryService(persons, roll),
	}

	server := httptest.NewServer(httpapi.SetupRouter(svc, httpapi.NewMetrics(), log))
	t.Cleanup(server.Close)

	return fixture{
		client:    campus.NewHTTPClient(server.URL+"/", server.Client()),
		directory: svc.Directory,
	}
}

func TestUserSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.directory.AddToRoll(ctx, "E100", "Ada")
	require.NoError(t, err)

	req := campus.RegisterUserRequest{
		EnrollmentNumber: "E100",
		Email:            "ada@example.com",
		Password:         password,
		ConfirmPassword:  password,
	}

	user, err := f.client.RegisterUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "E100", user.EnrollmentNumber)

	_, err = f.client.RegisterUser(ctx, req)
	assert.ErrorIs(t, err, campus.ErrConflict)

	_, err = f.client.LoginUser(ctx, "E100", "", "WrongPass")
	assert.ErrorIs(t, err, campus.ErrUnauthorized)

	token, err := f.client.LoginUser(ctx, "", "ada@example.com", password)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	me, err := f.client.Me(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)

	require.NoError(t, f.client.Logout(ctx, token))

	_, err = f.client.Me(ctx, token)
	assert.ErrorIs(t, err, campus.ErrUnauthorized)

	var apiErr *campus.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.NotEmpty(t, apiErr.Message)
}

func TestTeacherSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	person, err := f.directory.CreatePerson(ctx, "Grace", "grace@example.com")
	require.NoError(t, err)

	_, err = f.client.CreateTeacher(ctx, campus.CreateTeacherRequest{
		PersonID:        person.ID,
		Password:        password,
		ConfirmPassword: "different",
	})
	assert.ErrorIs(t, err, campus.ErrValidation)

	teacher, err := f.client.CreateTeacher(ctx, campus.CreateTeacherRequest{
		PersonID:        person.ID,
		Subject:         "Physics",
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)

	_, err = f.client.Teachers(ctx, "")
	assert.ErrorIs(t, err, campus.ErrUnauthorized)

	token, err := f.client.LoginTeacher(ctx, "grace@example.com", password)
	require.NoError(t, err)

	teachers, err := f.client.Teachers(ctx, token)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, teacher.ID, teachers[0].ID)
	assert.Equal(t, core.Teacher{}.PasswordHash, teachers[0].PasswordHash)
}

func TestAPIErrorUnwrap(t *testing.T) {
	cases := []struct {
		desc   string
		status int
		err    error
	}{
		{desc: "bad request", status: 400, err: campus.ErrBadRequest},
		{desc: "unauthorized", status: 401, err: campus.ErrUnauthorized},
		{desc: "not found", status: 404, err: campus.ErrNotFound},
		{desc: "conflict", status: 409, err: campus.ErrConflict},
		{desc: "validation", status: 422, err: campus.ErrValidation},
		{desc: "server", status: 500, err: campus.ErrServer},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := &campus.APIError{Status: tc.status, Message: "x"}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
