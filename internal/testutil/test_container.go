//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// ExternalMongoURIEnv points the integration tests at an already running
// replica set instead of starting a container.
const ExternalMongoURIEnv = "MONGODB_TEST_URI"

// maxDBNameLength keeps generated names well under MongoDB's 63 byte limit.
const maxDBNameLength = 48

var (
	shared     *MongoDBContainer
	sharedErr  error
	sharedOnce sync.Once
	dbCounter  atomic.Uint64

	dbNameReplacer = strings.NewReplacer("/", "_", `\`, "_", ".", "_", " ", "_", `"`, "_", "$", "_")
)

// GetSharedMongoDB starts the package-wide MongoDB once and returns it.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedOnce.Do(func() {
		if uri := os.Getenv(ExternalMongoURIEnv); uri != "" {
			shared = &MongoDBContainer{URI: uri}
			return
		}
		shared, sharedErr = SetupMongoDB(ctx)
	})
	return shared, sharedErr
}

// CleanupSharedMongoDB terminates the shared container, if one was started.
func CleanupSharedMongoDB(ctx context.Context) error {
	if shared == nil {
		return nil
	}
	return shared.Cleanup(ctx)
}

// SetupTestMainWithMongoDB runs m against the shared MongoDB:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mongodb unavailable: %v\n", err)
		return 1
	}

	code := m.Run()

	if err := CleanupSharedMongoDB(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cleanup of shared mongodb failed: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the connection string of the shared MongoDB.
func GetSharedContainerURI() string {
	if shared == nil {
		panic("shared MongoDB not initialized, call GetSharedMongoDB from TestMain")
	}
	return shared.URI
}

// SanitizeDBName turns a test name into a database name unique to this run.
func SanitizeDBName(testName string) string {
	name := dbNameReplacer.Replace(testName)
	if len(name) > maxDBNameLength {
		name = name[:maxDBNameLength]
	}
	return fmt.Sprintf("%s_%d_%d", name, os.Getpid()%100000, dbCounter.Add(1))
}
