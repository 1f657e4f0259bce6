//go:build integration

package app

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/picking-service/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}
