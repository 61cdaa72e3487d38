// Package campus is a Go client for the campus credential service.
package campus

import (
	"context"

	"github.com/layer-3/campus/core"
)

// Token is a bearer token issued by the service.
type Token string

// RegisterUserRequest carries the fields of a user registration.
type RegisterUserRequest struct {
	EnrollmentNumber string `json:"enrollmentNumber"`
	Email            string `json:"email,omitempty"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirmPassword"`
}

// CreateTeacherRequest carries the fields of a teacher creation.
type CreateTeacherRequest struct {
	PersonID        string `json:"personId"`
	Subject         string `json:"subject"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Client represents the public interface for interacting with the campus service
type Client interface {
	// RegisterUser creates a user for an enrollment number on the roll
	RegisterUser(ctx context.Context, req RegisterUserRequest) (core.User, error)

	// LoginUser authenticates by enrollment number or, if that is empty, by email
	LoginUser(ctx context.Context, enrollmentNumber, email, password string) (Token, error)

	// LoginTeacher authenticates a teacher by the email of the linked person
	LoginTeacher(ctx context.Context, email, password string) (Token, error)

	// Logout revokes the token
	Logout(ctx context.Context, token Token) error

	// Me returns the user the token was issued for
	Me(ctx context.Context, token Token) (core.User, error)

	// CreateTeacher links a teacher record to an existing person
	CreateTeacher(ctx context.Context, req CreateTeacherRequest) (core.Teacher, error)

	// Teachers lists the teachers; the token may be of either kind
	Teachers(ctx context.Context, token Token) ([]core.Teacher, error)
}
