package core

import "strings"

// LookupVariant names the natural key a LookupKey resolves by.
type LookupVariant int

const (
	LookupNone LookupVariant = iota
	LookupEnrollment
	LookupEmail
	LookupPerson
)

func (v LookupVariant) String() string {
	switch v {
	case LookupEnrollment:
		return "enrollment"
	case LookupEmail:
		return "email"
	case LookupPerson:
		return "person"
	default:
		return "none"
	}
}

// LookupKey identifies exactly one credential record by a natural key.
type LookupKey struct {
	Variant LookupVariant
	Value   string
}

func ByEnrollment(n string) LookupKey { return LookupKey{Variant: LookupEnrollment, Value: n} }
func ByEmail(e string) LookupKey      { return LookupKey{Variant: LookupEmail, Value: e} }
func ByPerson(id string) LookupKey    { return LookupKey{Variant: LookupPerson, Value: id} }

// UserLookupKey picks the key for a user login. The enrollment number wins
// over the email when both are supplied.
func UserLookupKey(enrollmentNumber, email string) (LookupKey, error) {
	if n := strings.TrimSpace(enrollmentNumber); n != "" {
		return ByEnrollment(n), nil
	}
	if e := strings.TrimSpace(email); e != "" {
		return ByEmail(e), nil
	}
	return LookupKey{}, ErrMissingField
}

// IsZero reports whether no variant is set.
func (k LookupKey) IsZero() bool {
	return k.Variant == LookupNone || k.Value == ""
}
