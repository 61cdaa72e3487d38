package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RevocationList keeps revoked token digests in the revoked_tokens
// collection. The TTL index on expires_at drops entries once the token
// itself has expired; entries without expiry stay forever.
type RevocationList struct {
	db *mongo.Database
}

var _ ports.RevocationList = (*RevocationList)(nil)

// NewRevocationList instantiates a MongoDB revocation list.
func NewRevocationList(db *mongo.Database) *RevocationList {
	return &RevocationList{db: db}
}

func (rl *RevocationList) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	return rl.RevokeDigest(ctx, core.TokenDigest(token), expiresAt)
}

// RevokeDigest appends a digest. An existing entry is left untouched.
func (rl *RevocationList) RevokeDigest(ctx context.Context, digest string, expiresAt time.Time) error {
	fields := bson.D{{Key: "revoked_at", Value: time.Now().UTC()}}
	if !expiresAt.IsZero() {
		fields = append(fields, bson.E{Key: "expires_at", Value: expiresAt.UTC()})
	}

	filter := bson.D{{Key: "_id", Value: digest}}
	update := bson.D{{Key: "$setOnInsert", Value: fields}}

	_, err := rl.db.Collection(revocationsCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	// Two concurrent upserts of the same digest race on _id; the loser
	// still leaves the token revoked.
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (rl *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	filter := bson.D{{Key: "_id", Value: core.TokenDigest(token)}}

	n, err := rl.db.Collection(revocationsCollection).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return n > 0, nil
}
