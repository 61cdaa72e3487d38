package ports

import (
	"context"
	"time"
)

// RevocationList records tokens invalidated by logout. Revoke is an
// idempotent append; entries may be pruned once their token has expired.
type RevocationList interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
