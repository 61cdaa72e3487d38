package core

import "errors"

var (
	ErrNotFound = errors.New("entity not found")
	ErrConflict = errors.New("entity already exists")

	ErrValidation       = errors.New("validation failed")
	ErrMissingField     = errors.New("required field missing")
	ErrPasswordMismatch = errors.New("passwords do not match")

	ErrUnknownEnrollment = errors.New("enrollment number not found in the institution")
	ErrUnknownPerson     = errors.New("person not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// IsUnauthorized reports whether err belongs to the unauthorized class:
// bad credentials or a missing, invalid, expired or revoked token.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenRevoked)
}

// IsValidation reports whether err describes rejected input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrPasswordMismatch)
}
