package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sustainbite/internal/utils/mongodb"
)

// MongoAccessor connects to the server named by MONGODB_TEST_URI using a
// throwaway database, and skips the test when the variable is unset.
func MongoAccessor(t *testing.T) *mongodb.Accessor {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	database := "sustainbite_test_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")
	db, err := mongodb.NewAccessor(mongodb.Config{URI: uri, Database: database, ConnectTimeout: 5 * time.Second})
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if handle, err := db.Database(ctx); err == nil {
			_ = handle.Drop(ctx)
		}
		_ = db.Disconnect(ctx)
	})
	return db
}

// UnreachableMongo returns an accessor whose client points at a closed port,
// so every driver call fails after a short server selection timeout.
func UnreachableMongo(t *testing.T) *mongodb.Accessor {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond).
		SetConnectTimeout(200*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return mongodb.NewAccessorWithDial("sustainbite_test", func(ctx context.Context) (*mongo.Client, error) {
		return client, nil
	})
}
