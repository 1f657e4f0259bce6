//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/picking-service/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestMain runs the package against one shared MongoDB.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

// setupTestDBFromSharedContainer connects to a database of its own on the
// shared MongoDB.
func setupTestDBFromSharedContainer(t *testing.T) *MongoDB {
	db, err := NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	return db
}
