package database

import (
	"context"
	"os"
	"testing"
	"time"

	"savora-web/internal/core/persistence"
	"savora-web/internal/core/recipe"
	"savora-web/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocumentStoreAppend(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set, skipping MongoDB integration test")
	}

	ctx := context.Background()
	cfg := config.MongoConfig{URI: uri, Database: "savora_test", Timeout: 5 * time.Second}
	store, err := Connect(ctx, cfg)
	require.NoError(t, err)
	defer store.Close(ctx)

	entry := persistence.Entry{
		UserID:      "user-1",
		Recipe:      &recipe.Structured{Title: "Chicken Rice Bowl", Ingredients: []string{"rice"}},
		Ingredients: "rice, chicken",
		Filters:     recipe.DefaultFilters(),
		CreatedAt:   "2026-01-01T00:00:00.000Z",
	}

	id, err := store.Append(ctx, persistence.Favorites, entry)
	require.NoError(t, err)

	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)

	var doc struct {
		UserID      string            `bson:"userId"`
		Ingredients string            `bson:"ingredients"`
		CreatedAt   string            `bson:"createdAt"`
		Timestamp   time.Time         `bson:"timestamp"`
		Recipe      recipe.Structured `bson:"recipe"`
	}
	require.NoError(t, store.collections[persistence.Favorites].FindOne(ctx, bson.M{"_id": oid}).Decode(&doc))
	assert.Equal(t, "user-1", doc.UserID)
	assert.Equal(t, "rice, chicken", doc.Ingredients)
	assert.Equal(t, "2026-01-01T00:00:00.000Z", doc.CreatedAt)
	assert.False(t, doc.Timestamp.IsZero())
	assert.Equal(t, "Chicken Rice Bowl", doc.Recipe.Title)

	_, err = store.Append(ctx, persistence.Collection("unknown"), entry)
	assert.Error(t, err)
}
