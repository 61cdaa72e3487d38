package core

import "time"

// Kind tells which collection an identity record lives in.
type Kind string

const (
	KindUser    Kind = "user"
	KindTeacher Kind = "teacher"
)

// User is a registered student-like account keyed by enrollment number.
type User struct {
	ID               string    `json:"id"`
	EnrollmentNumber string    `json:"enrollmentNumber"`
	Email            string    `json:"email,omitempty"`
	PasswordHash     string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Teacher is keyed by the person it is linked to.
type Teacher struct {
	ID           string    `json:"id"`
	PersonID     string    `json:"personId"`
	Subject      string    `json:"subject"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Person holds the contact identity a teacher record points at.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// RollEntry is one enrollment number on the institution roll. Only numbers
// present on the roll may register a user account.
type RollEntry struct {
	EnrollmentNumber string    `json:"enrollmentNumber"`
	Name             string    `json:"name,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// UserUpdate carries the optional fields of a user update.
type UserUpdate struct {
	Email        *string
	PasswordHash *string
	UpdatedAt    time.Time
}
