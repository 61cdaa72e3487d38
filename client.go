package campus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/layer-3/campus/core"
)

var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to the service over its HTTP API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a client for the service at baseURL. A nil
// httpClient gets a client with a 10 second timeout.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type tokenResponse struct {
	Token Token `json:"token"`
}

func (c *HTTPClient) RegisterUser(ctx context.Context, req RegisterUserRequest) (core.User, error) {
	var res struct {
		User core.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/users", "", req, &res); err != nil {
		return core.User{}, err
	}

	return res.User, nil
}

func (c *HTTPClient) LoginUser(ctx context.Context, enrollmentNumber, email, password string) (Token, error) {
	req := map[string]string{"password": password}
	if enrollmentNumber != "" {
		req["enrollmentNumber"] = enrollmentNumber
	} else {
		req["email"] = email
	}

	var res tokenResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", "", req, &res); err != nil {
		return "", err
	}

	return res.Token, nil
}

func (c *HTTPClient) LoginTeacher(ctx context.Context, email, password string) (Token, error) {
	req := map[string]string{"email": email, "password": password}

	var res tokenResponse
	if err := c.do(ctx, http.MethodPost, "/teachers/auth/login", "", req, &res); err != nil {
		return "", err
	}

	return res.Token, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token Token) error {
	return c.do(ctx, http.MethodPost, "/users/logout", token, nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context, token Token) (core.User, error) {
	var user core.User
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &user); err != nil {
		return core.User{}, err
	}

	return user, nil
}

func (c *HTTPClient) CreateTeacher(ctx context.Context, req CreateTeacherRequest) (core.Teacher, error) {
	var res struct {
		Teacher core.Teacher `json:"teacher"`
	}
	if err := c.do(ctx, http.MethodPost, "/teachers", "", req, &res); err != nil {
		return core.Teacher{}, err
	}

	return res.Teacher, nil
}

func (c *HTTPClient) Teachers(ctx context.Context, token Token) ([]core.Teacher, error) {
	var teachers []core.Teacher
	if err := c.do(ctx, http.MethodGet, "/teachers", token, nil, &teachers); err != nil {
		return nil, err
	}

	return teachers, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, token Token, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+string(token))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
