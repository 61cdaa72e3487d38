package ports

import "github.com/layer-3/campus/core"

// Tokenizer converts between sessions and signed bearer tokens.
type Tokenizer interface {
	SessionToToken(session *core.Session) (string, error)

	// TokenToSession verifies signature and expiry. An expired token yields
	// core.ErrTokenExpired, anything else unusable core.ErrInvalidToken.
	TokenToSession(token string) (*core.Session, error)

	// TokenToSessionIgnoreExpiry verifies the signature only.
	TokenToSessionIgnoreExpiry(token string) (*core.Session, error)
}

// Hasher produces and checks adaptive password digests.
type Hasher interface {
	Hash(plain string) (string, error)

	// Compare returns nil iff plain matches digest.
	Compare(plain, digest string) error
}
