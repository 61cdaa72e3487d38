package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/campus/adapters/events"
	"github.com/layer-3/campus/adapters/hasher"
	"github.com/layer-3/campus/adapters/memory"
	"github.com/layer-3/campus/adapters/store"
	"github.com/layer-3/campus/adapters/tokenizer"
	"github.com/layer-3/campus/internal/logger"
	"github.com/layer-3/campus/service"
	httpapi "github.com/layer-3/campus/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const password = "Secret123!"

func init() {
	gin.SetMode(gin.TestMode)
}

// skewClock lets a test move the verifier's notion of now.
type skewClock struct {
	mu     sync.Mutex
	offset time.Duration
}

func (c *skewClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Now().Add(c.offset)
}

func (c *skewClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset += d
}

type harness struct {
	t      *testing.T
	router *gin.Engine
	clock  *skewClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := logger.NewMock()
	clock := &skewClock{}

	tok, err := tokenizer.NewJWTTokenizer([]byte("test-secret"))
	require.NoError(t, err)

	users := memory.NewUserRepository()
	teachers := memory.NewTeacherRepository()
	persons := memory.NewPersonRepository()
	roll := memory.NewRollRepository()
	h := hasher.NewWithCost(bcrypt.MinCost)
	pub := events.NopPublisher{}

	svc := httpapi.Services{
		Auth:      service.NewAuthService(users, teachers, persons, h, tok.WithClock(clock.now), store.NewMemoryStore(), pub, log, service.DefaultTokenTTL),
		Users:     service.NewUserService(users, roll, h, pub, log),
		Teachers:  service.NewTeacherService(teachers, persons, h, pub, log),
		Directory: service.NewDirectoryService(persons, roll),
	}

	return &harness{
		t:      t,
		router: httpapi.SetupRouter(svc, httpapi.NewMetrics(), log),
		clock:  clock,
	}
}

type response struct {
	code int
	body map[string]any
	raw  string
}

func (h *harness) do(method, path string, body any, authorization string) response {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	res := response{code: w.Code, raw: w.Body.String()}
	_ = json.Unmarshal(w.Body.Bytes(), &res.body)

	return res
}

func (h *harness) registerUser(enrollment string) response {
	h.t.Helper()

	return h.do(http.MethodPost, "/users", map[string]string{
		"enrollmentNumber": enrollment,
		"email":            "ada@example.com",
		"password":         password,
		"confirmPassword":  password,
	}, "")
}

func (h *harness) loginUser(enrollment, pass string) response {
	h.t.Helper()

	return h.do(http.MethodPost, "/users/login", map[string]string{
		"enrollmentNumber": enrollment,
		"password":         pass,
	}, "")
}

func (h *harness) userToken() string {
	h.t.Helper()

	res := h.do(http.MethodPost, "/roll", map[string]string{"enrollmentNumber": "E100"}, "")
	require.Equal(h.t, http.StatusCreated, res.code)
	require.Equal(h.t, http.StatusCreated, h.registerUser("E100").code)

	res = h.loginUser("E100", password)
	require.Equal(h.t, http.StatusOK, res.code)
	token, ok := res.body["token"].(string)
	require.True(h.t, ok)

	return token
}

func (h *harness) createTeacher() string {
	h.t.Helper()

	res := h.do(http.MethodPost, "/persons", map[string]string{"name": "Grace", "email": "grace@example.com"}, "")
	require.Equal(h.t, http.StatusCreated, res.code)
	personID := res.body["id"].(string)

	res = h.do(http.MethodPost, "/teachers", map[string]string{
		"personId":        personID,
		"subject":         "Physics",
		"password":        password,
		"confirmPassword": password,
	}, "")
	require.Equal(h.t, http.StatusCreated, res.code)

	return res.body["teacher"].(map[string]any)["id"].(string)
}

func TestRegisterSameEnrollmentTwice(t *testing.T) {
	h := newHarness(t)

	res := h.do(http.MethodPost, "/roll", map[string]string{"enrollmentNumber": "E100"}, "")
	require.Equal(t, http.StatusCreated, res.code)

	assert.Equal(t, http.StatusCreated, h.registerUser("E100").code)
	assert.Equal(t, http.StatusConflict, h.registerUser("E100").code)
}

func TestRegisterUser(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodPost, "/roll", map[string]string{"enrollmentNumber": "E100"}, "")

	cases := []struct {
		desc string
		body any
		code int
	}{
		{
			desc: "unknown enrollment",
			body: map[string]string{"enrollmentNumber": "E999", "password": password, "confirmPassword": password},
			code: http.StatusNotFound,
		},
		{
			desc: "password mismatch",
			body: map[string]string{"enrollmentNumber": "E100", "password": password, "confirmPassword": "other"},
			code: http.StatusUnprocessableEntity,
		},
		{
			desc: "missing fields",
			body: map[string]string{"enrollmentNumber": "E100"},
			code: http.StatusBadRequest,
		},
		{
			desc: "malformed body",
			body: "{not json",
			code: http.StatusBadRequest,
		},
		{
			desc: "valid registration",
			body: map[string]string{"enrollmentNumber": "E100", "password": password, "confirmPassword": password},
			code: http.StatusCreated,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			res := h.do(http.MethodPost, "/users", tc.body, "")
			assert.Equal(t, tc.code, res.code)
			assert.NotContains(t, res.raw, "PasswordHash")
			assert.NotContains(t, res.raw, "$2a$")
		})
	}
}

func TestLoginUser(t *testing.T) {
	h := newHarness(t)
	h.userToken()

	cases := []struct {
		desc string
		body map[string]string
		code int
	}{
		{desc: "wrong password", body: map[string]string{"enrollmentNumber": "E100", "password": "WrongPass"}, code: http.StatusUnauthorized},
		{desc: "unknown enrollment", body: map[string]string{"enrollmentNumber": "E404", "password": password}, code: http.StatusUnauthorized},
		{desc: "no identifier", body: map[string]string{"password": password}, code: http.StatusBadRequest},
		{desc: "by email", body: map[string]string{"email": "ada@example.com", "password": password}, code: http.StatusOK},
		{desc: "enrollment wins over email", body: map[string]string{"enrollmentNumber": "E100", "email": "nobody@example.com", "password": password}, code: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			res := h.do(http.MethodPost, "/users/login", tc.body, "")
			assert.Equal(t, tc.code, res.code)
			if tc.code != http.StatusOK {
				assert.NotContains(t, res.body, "token")
			}
		})
	}

	// Unknown identity and wrong password are indistinguishable.
	wrong := h.loginUser("E100", "WrongPass")
	unknown := h.loginUser("E404", password)
	assert.Equal(t, wrong.body, unknown.body)
}

func TestLogoutRevokesToken(t *testing.T) {
	h := newHarness(t)
	token := h.userToken()

	res := h.do(http.MethodGet, "/users/me", nil, "Bearer "+token)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "E100", res.body["enrollmentNumber"])

	// A raw token is accepted as well as the Bearer form.
	res = h.do(http.MethodPost, "/users/logout", nil, token)
	require.Equal(t, http.StatusOK, res.code)

	res = h.do(http.MethodGet, "/users/me", nil, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, res.code)

	// Logging out again is a no-op.
	res = h.do(http.MethodPost, "/users/logout", nil, "Bearer "+token)
	assert.Equal(t, http.StatusOK, res.code)
}

func TestLogoutWithoutToken(t *testing.T) {
	h := newHarness(t)

	res := h.do(http.MethodPost, "/users/logout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = h.do(http.MethodPost, "/users/logout", nil, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, res.code)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	h := newHarness(t)
	token := h.userToken()

	h.clock.advance(service.DefaultTokenTTL + time.Minute)

	res := h.do(http.MethodGet, "/users/me", nil, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, res.code)
}

func TestTeacherFlow(t *testing.T) {
	h := newHarness(t)
	id := h.createTeacher()

	res := h.do(http.MethodGet, "/teachers", nil, "")
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = h.do(http.MethodPost, "/teachers/auth/login", map[string]string{"email": "grace@example.com", "password": "WrongPass"}, "")
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = h.do(http.MethodPost, "/teachers/auth/login", map[string]string{"email": "nobody@example.com", "password": password}, "")
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = h.do(http.MethodPost, "/teachers/auth/login", map[string]string{"email": "Grace@Example.com", "password": password}, "")
	require.Equal(t, http.StatusOK, res.code)
	token := res.body["token"].(string)

	res = h.do(http.MethodGet, "/teachers", nil, "Bearer "+token)
	require.Equal(t, http.StatusOK, res.code)
	assert.Contains(t, res.raw, id)
	assert.NotContains(t, res.raw, "$2a$")

	// A teacher token does not open user-only routes.
	res = h.do(http.MethodGet, "/users/me", nil, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = h.do(http.MethodPost, "/teachers/auth/logout", nil, "Bearer "+token)
	require.Equal(t, http.StatusOK, res.code)

	res = h.do(http.MethodGet, "/teachers", nil, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, res.code)
}

func TestTeacherCRUD(t *testing.T) {
	h := newHarness(t)
	id := h.createTeacher()

	cases := []struct {
		desc   string
		method string
		path   string
		body   any
		code   int
	}{
		{desc: "get teacher", method: http.MethodGet, path: "/teachers/" + id, code: http.StatusOK},
		{desc: "get missing teacher", method: http.MethodGet, path: "/teachers/missing", code: http.StatusNotFound},
		{desc: "update subject", method: http.MethodPut, path: "/teachers/" + id, body: map[string]string{"subject": "Chemistry"}, code: http.StatusOK},
		{desc: "update missing teacher", method: http.MethodPut, path: "/teachers/missing", body: map[string]string{"subject": "Chemistry"}, code: http.StatusNotFound},
		{desc: "password mismatch", method: http.MethodPatch, path: "/teachers/updatePassword/" + id, body: map[string]string{"password": "a1", "confirmPassword": "b2"}, code: http.StatusUnprocessableEntity},
		{desc: "password of missing teacher", method: http.MethodPatch, path: "/teachers/updatePassword/missing", body: map[string]string{"password": "a1", "confirmPassword": "a1"}, code: http.StatusNotFound},
		{desc: "update password", method: http.MethodPatch, path: "/teachers/updatePassword/" + id, body: map[string]string{"password": "NewPass1!", "confirmPassword": "NewPass1!"}, code: http.StatusOK},
		{desc: "create for unknown person", method: http.MethodPost, path: "/teachers", body: map[string]string{"personId": "nobody", "password": "a1", "confirmPassword": "a1"}, code: http.StatusBadRequest},
		{desc: "delete teacher", method: http.MethodDelete, path: "/teachers/" + id, code: http.StatusOK},
		{desc: "delete missing teacher", method: http.MethodDelete, path: "/teachers/" + id, code: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			res := h.do(tc.method, tc.path, tc.body, "")
			assert.Equal(t, tc.code, res.code)
		})
	}
}

func TestDuplicateTeacherForPerson(t *testing.T) {
	h := newHarness(t)
	id := h.createTeacher()

	res := h.do(http.MethodGet, "/teachers/"+id, nil, "")
	require.Equal(t, http.StatusOK, res.code)
	personID := res.body["personId"].(string)

	res = h.do(http.MethodPost, "/teachers", map[string]string{
		"personId":        personID,
		"password":        password,
		"confirmPassword": password,
	}, "")
	assert.Equal(t, http.StatusConflict, res.code)
}

func TestUserCRUD(t *testing.T) {
	h := newHarness(t)
	h.userToken()

	res := h.do(http.MethodGet, "/users", nil, "")
	require.Equal(t, http.StatusOK, res.code)
	assert.NotContains(t, res.raw, "$2a$")

	var users []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.raw), &users))
	require.Len(t, users, 1)
	id := users[0]["id"].(string)

	cases := []struct {
		desc   string
		method string
		path   string
		body   any
		code   int
	}{
		{desc: "get user", method: http.MethodGet, path: "/users/" + id, code: http.StatusOK},
		{desc: "get missing user", method: http.MethodGet, path: "/users/missing", code: http.StatusNotFound},
		{desc: "update email", method: http.MethodPut, path: "/users/" + id, body: map[string]string{"email": "lovelace@example.com"}, code: http.StatusOK},
		{desc: "update password mismatch", method: http.MethodPut, path: "/users/" + id, body: map[string]string{"password": "a1", "confirmPassword": "b2"}, code: http.StatusUnprocessableEntity},
		{desc: "update missing user", method: http.MethodPut, path: "/users/missing", body: map[string]string{"email": "x@example.com"}, code: http.StatusNotFound},
		{desc: "delete user", method: http.MethodDelete, path: "/users/" + id, code: http.StatusOK},
		{desc: "delete missing user", method: http.MethodDelete, path: "/users/" + id, code: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			res := h.do(tc.method, tc.path, tc.body, "")
			assert.Equal(t, tc.code, res.code)
		})
	}
}

func TestDirectoryRoutes(t *testing.T) {
	h := newHarness(t)

	res := h.do(http.MethodPost, "/persons", map[string]string{"name": "Grace", "email": "grace@example.com"}, "")
	require.Equal(t, http.StatusCreated, res.code)
	id := res.body["id"].(string)

	res = h.do(http.MethodPost, "/persons", map[string]string{"name": "Grace", "email": "grace@example.com"}, "")
	assert.Equal(t, http.StatusConflict, res.code)

	res = h.do(http.MethodGet, "/persons/"+id, nil, "")
	assert.Equal(t, http.StatusOK, res.code)

	res = h.do(http.MethodGet, "/persons/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, res.code)

	res = h.do(http.MethodPost, "/roll", map[string]string{"enrollmentNumber": "E100"}, "")
	assert.Equal(t, http.StatusCreated, res.code)

	res = h.do(http.MethodPost, "/roll", map[string]string{"enrollmentNumber": "E100"}, "")
	assert.Equal(t, http.StatusConflict, res.code)

	res = h.do(http.MethodGet, "/roll", nil, "")
	assert.Equal(t, http.StatusOK, res.code)
	assert.Contains(t, res.raw, "E100")
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t)
	h.loginUser("E100", "WrongPass")

	res := h.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, res.code)

	res = h.do(http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, res.code)
	assert.True(t, strings.Contains(res.raw, `campus_auth_login_count{kind="user",outcome="rejected"} 1`))
	assert.Contains(t, res.raw, "campus_http_request_count")
}
