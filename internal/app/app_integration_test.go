//go:build integration

package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/picking-service/config"
	bt "github.com/guttosm/picking-service/internal/barcode/barcodetest"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp_Integration(t *testing.T) {
	t.Parallel()

	t.Run("serves readiness with the database checks", func(t *testing.T) {
		t.Parallel()
		application, err := InitializeApp(config.Config{
			Server:   config.ServerConfig{Port: "8080", RateLimit: 100, RateWindow: time.Minute},
			Database: databaseConfig(t),
		})
		require.NoError(t, err)
		t.Cleanup(func() { application.Close(context.Background()) })

		w := httptest.NewRecorder()
		application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"ok"`)
		assert.Contains(t, w.Body.String(), `"picking_store_circuit":"closed"`)
	})

	t.Run("close saves open sessions", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		cfg := config.Config{
			Server:   config.ServerConfig{Port: "8080"},
			Database: databaseConfig(t),
			Barcode:  config.BarcodeConfig{PackagePrefix: "PACK"},
		}
		application, err := InitializeApp(cfg)
		require.NoError(t, err)

		require.NoError(t, repository.NewPickingRepository(application.Database.DB).Import(ctx, repository.Dataset{
			UoMs:      []model.UoM{bt.Units},
			Products:  []model.Product{bt.ProductX},
			Locations: []model.Location{bt.Stock, bt.Shelf1},
			Pickings: []model.Picking{{
				ID: 5, Name: "WH/INT/00005", Kind: model.PickingInternal, State: model.StateAssigned,
				LocationID: bt.Stock.ID, LocationDestID: bt.Shelf1.ID,
			}},
			Lines: []model.Line{{
				ID: 50, PickingID: 5, ProductID: bt.ProductX.ID, UoMID: bt.Units.ID,
				LocationID: bt.Stock.ID, LocationDestID: bt.Shelf1.ID, QtyDemand: bt.Demand(3),
			}},
		}))

		for _, req := range []struct{ path, body string }{
			{"/api/pickings/5/session", ""},
			{"/api/pickings/5/scan", `{"barcode":"X"}`},
		} {
			r := httptest.NewRequest(http.MethodPost, req.path, bytes.NewBufferString(req.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			application.Router.ServeHTTP(w, r)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		// Read back through a second connection, since Close disconnects.
		verify, err := repository.NewMongoDB(cfg.Database.URI, cfg.Database.DatabaseName)
		require.NoError(t, err)
		t.Cleanup(func() { _ = verify.Close(context.Background()) })

		application.Close(ctx)

		data, err := repository.NewPickingRepository(verify).LoadPicking(ctx, 5)
		require.NoError(t, err)
		require.Len(t, data.Lines, 1)
		assert.Equal(t, "1", data.Lines[0].QtyDone.String())
	})
}
