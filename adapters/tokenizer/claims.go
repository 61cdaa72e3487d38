package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims combines standard claims with the kind of record the
// subject refers to.
type SessionClaims struct {
	jwt.RegisteredClaims
	Kind string `json:"kind"`
}
