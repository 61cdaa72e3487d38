package core

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Session is what a bearer token binds: the record it was issued for and
// its lifetime.
type Session struct {
	ID        string    // token id (jti)
	Subject   string    // record id
	Kind      Kind      // collection the subject lives in
	IssuedAt  time.Time // when the token was minted
	ExpiresAt time.Time // zero means no expiry
}

// Expired reports whether the session is past its expiry at t.
func (s *Session) Expired(t time.Time) bool {
	return !s.ExpiresAt.IsZero() && !t.Before(s.ExpiresAt)
}

// TokenDigest is the key a raw token is recorded under in a revocation list.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
