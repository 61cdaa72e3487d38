// Package mongodb contains the MongoDB implementations of the credential
// stores and of the revocation list.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/layer-3/campus/core"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection       = "users"
	teachersCollection    = "teachers"
	personsCollection     = "persons"
	rollCollection        = "roll"
	revocationsCollection = "revoked_tokens"
)

// Config defines the options that are used when connecting to a MongoDB instance.
type Config struct {
	URL  string `env:"URL"  envDefault:"mongodb://localhost:27017"`
	Name string `env:"NAME" envDefault:"campus"`
}

// Connect creates a connection to the MongoDB instance and checks it is
// reachable.
func Connect(ctx context.Context, cfg Config) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client.Database(cfg.Name), nil
}

// EnsureIndexes creates the indexes the repositories rely on. Natural key
// uniqueness is enforced here, not by the repositories.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{
				Keys:    bson.D{{Key: "enrollment_number", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_enrollment_number"),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email"),
			},
		},
		teachersCollection: {
			{
				Keys:    bson.D{{Key: "person_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_person_id"),
			},
		},
		personsCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_email"),
			},
		},
		revocationsCollection: {
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
			},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}

	return nil
}

func wrapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return core.ErrConflict
	}
	return err
}

func wrapReadErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return core.ErrNotFound
	}
	return err
}
