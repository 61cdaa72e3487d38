package mongodb_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/layer-3/campus/adapters/mongodb"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// newTestDB connects to the server named by CAMPUS_TEST_MONGO_URL and
// returns a fresh database with indexes in place. It is dropped when the
// test ends.
func newTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	url := os.Getenv("CAMPUS_TEST_MONGO_URL")
	if url == "" {
		t.Skip("CAMPUS_TEST_MONGO_URL not set")
	}

	ctx := context.Background()
	name := "campus_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	db, err := mongodb.Connect(ctx, mongodb.Config{URL: url, Name: name})
	require.NoError(t, err)
	require.NoError(t, mongodb.EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = db.Client().Disconnect(context.Background())
	})

	return db
}
