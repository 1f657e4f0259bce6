//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	t.Run("collections are bound", func(t *testing.T) {
		for _, c := range []any{
			db.Products, db.Packagings, db.UoMs, db.Locations, db.Lots, db.Packages,
			db.PackageTypes, db.Quants, db.Pickings, db.MoveLines, db.Counters, db.Logs,
		} {
			assert.NotNil(t, c)
		}
		assert.Equal(t, "move_lines", db.MoveLines.Name())
		assert.Equal(t, "product_packagings", db.Packagings.Name())
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, db.Ping(ctx))
	})

	t.Run("set logs TTL updates an existing index", func(t *testing.T) {
		require.NoError(t, db.SetLogsTTL(ctx, 30*24*time.Hour))
		require.NoError(t, db.SetLogsTTL(ctx, 7*24*time.Hour))

		cursor, err := db.Logs.Indexes().List(ctx)
		require.NoError(t, err)
		var indexes []bson.M
		require.NoError(t, cursor.All(ctx, &indexes))

		var ttl any
		for _, idx := range indexes {
			if idx["name"] == "timestamp_1" {
				ttl = idx["expireAfterSeconds"]
			}
		}
		require.NotNil(t, ttl)
		assert.EqualValues(t, 7*24*3600, ttl)
	})

	t.Run("ensure indexes is repeatable", func(t *testing.T) {
		assert.NoError(t, db.ensureIndexes(ctx))
	})

	t.Run("nextIDs reserves consecutive ranges", func(t *testing.T) {
		first, err := db.nextIDs(ctx, "test_seq", 3)
		require.NoError(t, err)
		assert.Equal(t, int64(1), first)

		second, err := db.nextIDs(ctx, "test_seq", 2)
		require.NoError(t, err)
		assert.Equal(t, int64(4), second)
	})

	t.Run("withTransaction rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.withTransaction(ctx, func(ctx context.Context) error {
			if _, err := db.Pickings.InsertOne(ctx, bson.M{"_id": int64(999), "name": "rolled back"}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		n, err := db.Pickings.CountDocuments(ctx, bson.M{"_id": int64(999)})
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
