package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
)

// ErrEmptySecret is returned when a tokenizer is built without a signing key.
var ErrEmptySecret = errors.New("jwt signing secret is empty")

// JWTTokenizer implements the Tokenizer interface using HS256 JWTs.
type JWTTokenizer struct {
	secret []byte
	now    func() time.Time
}

var _ ports.Tokenizer = (*JWTTokenizer)(nil)

// NewJWTTokenizer creates a new JWT tokenizer. The secret is copied and
// never changes for the tokenizer's lifetime.
func NewJWTTokenizer(secret []byte) (*JWTTokenizer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &JWTTokenizer{secret: key, now: time.Now}, nil
}

// WithClock returns a copy of the tokenizer that reads time from now when
// validating expiry.
func (j *JWTTokenizer) WithClock(now func() time.Time) *JWTTokenizer {
	return &JWTTokenizer{secret: j.secret, now: now}
}

// SessionToToken converts a Session to a signed token
func (j *JWTTokenizer) SessionToToken(session *core.Session) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  session.Subject,
			ID:       session.ID,
			IssuedAt: jwt.NewNumericDate(session.IssuedAt),
		},
		Kind: string(session.Kind),
	}
	if !session.ExpiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(session.ExpiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// TokenToSession parses a token and returns the associated session
func (j *JWTTokenizer) TokenToSession(tokenStr string) (*core.Session, error) {
	return j.parse(tokenStr, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
}

// TokenToSessionIgnoreExpiry parses a token whose signature must verify but
// whose expiry may have passed. Logout uses it to learn how long a
// revocation entry has to be kept.
func (j *JWTTokenizer) TokenToSessionIgnoreExpiry(tokenStr string) (*core.Session, error) {
	return j.parse(tokenStr, jwt.WithoutClaimsValidation())
}

func (j *JWTTokenizer) parse(tokenStr string, opts ...jwt.ParserOption) (*core.Session, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid claims type", core.ErrInvalidToken)
	}

	kind := core.Kind(claims.Kind)
	if kind != core.KindUser && kind != core.KindTeacher {
		return nil, fmt.Errorf("%w: unknown kind %q", core.ErrInvalidToken, claims.Kind)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", core.ErrInvalidToken)
	}

	session := &core.Session{
		ID:      claims.ID,
		Subject: claims.Subject,
		Kind:    kind,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}
