//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/picking-service/config"
	bt "github.com/guttosm/picking-service/internal/barcode/barcodetest"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore serves one transfer from the in-memory backend.
type memoryStore struct {
	*bt.Backend
}

func (m memoryStore) GetPicking(context.Context, int64) (model.Picking, error) {
	return m.StoredPicking(), nil
}

func (m memoryStore) ListPickings(context.Context, model.PickingState, int) ([]model.Picking, error) {
	return []model.Picking{m.StoredPicking()}, nil
}

func newMemoryStore() memoryStore {
	return memoryStore{Backend: bt.NewWithRecords(model.Picking{
		ID:             3,
		Name:           "WH/INT/00003",
		Kind:           model.PickingInternal,
		State:          model.StateAssigned,
		LocationID:     bt.Stock.ID,
		LocationDestID: bt.Shelf1.ID,
	})}
}

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name       string
		auth       config.AuthConfig
		wantTokens bool
	}{
		{
			name: "public API",
			auth: config.AuthConfig{Enabled: false},
		},
		{
			name: "API keys only",
			auth: config.AuthConfig{Enabled: true, APIKeys: map[string]bool{"k": true}},
		},
		{
			name:       "operator tokens",
			auth:       config.AuthConfig{Enabled: true, OperatorTokens: true, JWTSecretKey: "secret", APIKeys: map[string]bool{"k": true}},
			wantTokens: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{
				Session: config.SessionConfig{Size: 8, TTL: time.Minute, Shards: 2},
				Auth:    tt.auth,
			}

			components := InitializeServices(cfg, newMemoryStore())
			require.NotNil(t, components)
			require.NotNil(t, components.Pickings)
			t.Cleanup(func() { components.Pickings.Close(context.Background()) })

			assert.Equal(t, tt.wantTokens, components.Tokens != nil)
		})
	}
}

func TestInitializeServices_OpensSessions(t *testing.T) {
	cfg := config.Config{Barcode: config.BarcodeConfig{PackagePrefix: "PACK"}}
	components := InitializeServices(cfg, newMemoryStore())
	t.Cleanup(func() { components.Pickings.Close(context.Background()) })

	res, err := components.Pickings.Open(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "WH/INT/00003", res.View.Picking.Name)
	assert.Equal(t, 1, components.Pickings.ActiveSessions())
}
