package campus

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBadRequest is returned when the service rejects a malformed request
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned for bad credentials and unusable tokens
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the addressed record does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a natural key is already taken
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned when input fails validation, such as a password mismatch
	ErrValidation = errors.New("validation failed")

	// ErrServer is returned for any other failure reported by the service
	ErrServer = errors.New("server error")
)

// APIError is a non-2xx response. It unwraps to the sentinel matching its status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("campus: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrServer
	}
}
