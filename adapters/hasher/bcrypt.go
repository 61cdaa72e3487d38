// Package hasher provides a password hasher implementation utilising bcrypt.
package hasher

import (
	"errors"
	"fmt"

	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost factor used for stored credentials.
const DefaultCost = 12

var _ ports.Hasher = (*bcryptHasher)(nil)

type bcryptHasher struct {
	cost int
}

// New instantiates a bcrypt hasher with DefaultCost.
func New() ports.Hasher {
	return &bcryptHasher{cost: DefaultCost}
}

// NewWithCost instantiates a bcrypt hasher with the given cost. Tests use
// bcrypt.MinCost to stay fast.
func NewWithCost(cost int) ports.Hasher {
	return &bcryptHasher{cost: cost}
}

func (bh *bcryptHasher) Hash(pwd string) (string, error) {
	if pwd == "" {
		return "", fmt.Errorf("%w: empty password", core.ErrMissingField)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bh.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password longer than 72 bytes", core.ErrValidation)
	}
	if err != nil {
		return "", fmt.Errorf("generate hash from password failed: %w", err)
	}

	return string(hash), nil
}

func (bh *bcryptHasher) Compare(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return core.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidCredentials, err)
	}

	return nil
}
