package store

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
)

// MemoryStore is an in-memory revocation list. Entries whose token has
// expired are dropped lazily; a zero expiry is kept forever.
type MemoryStore struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
	now     func() time.Time
}

var _ ports.RevocationList = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke records the token. Revoking twice keeps the later expiry.
func (s *MemoryStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.revokeDigest(core.TokenDigest(token), expiresAt)
}

// RevokeDigest records an entry by its precomputed digest. Revocation
// events from other instances only carry the digest.
func (s *MemoryStore) RevokeDigest(ctx context.Context, digest string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.revokeDigest(digest, expiresAt)
}

func (s *MemoryStore) revokeDigest(digest string, expiresAt time.Time) error {
	stored, exists := s.revoked[digest]
	if exists && (stored.IsZero() || (!expiresAt.IsZero() && stored.After(expiresAt))) {
		return nil
	}
	s.revoked[digest] = expiresAt

	return nil
}

// IsRevoked checks if a token is revoked
func (s *MemoryStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.revoked[core.TokenDigest(token)]

	return exists, nil
}

// Prune drops entries whose token expired. A pruned token can no longer
// pass expiry validation, so membership answers for live tokens do not
// change. It returns the number of removed entries.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for digest, expiresAt := range s.revoked {
		if !expiresAt.IsZero() && now.After(expiresAt) {
			delete(s.revoked, digest)
			removed++
		}
	}

	return removed
}

// Len returns the number of entries currently held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.revoked)
}

// RunPruner calls Prune every interval until ctx is done.
func (s *MemoryStore) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Prune()
		}
	}
}
