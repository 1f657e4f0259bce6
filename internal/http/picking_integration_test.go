//go:build integration

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/guttosm/picking-service/internal/barcode"
	bt "github.com/guttosm/picking-service/internal/barcode/barcodetest"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/repository"
	"github.com/guttosm/picking-service/internal/testutil"
	"github.com/guttosm/picking-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIntegrationRouter(t *testing.T) *PickingHandler {
	t.Helper()
	ctx := context.Background()

	db, err := repository.NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close(context.Background())
	})

	repo := repository.NewPickingRepository(db)
	require.NoError(t, repo.Import(ctx, repository.Dataset{
		UoMs:      []model.UoM{bt.Units},
		Products:  []model.Product{bt.ProductX, bt.ProductY},
		Locations: []model.Location{bt.Stock, bt.Shelf1, bt.Shelf2},
		Pickings: []model.Picking{{
			ID:             1,
			Name:           "WH/INT/00001",
			Kind:           model.PickingInternal,
			State:          model.StateAssigned,
			LocationID:     bt.Stock.ID,
			LocationDestID: bt.Shelf1.ID,
		}},
		Lines: []model.Line{
			{ID: 1, PickingID: 1, ProductID: bt.ProductX.ID, UoMID: bt.Units.ID, LocationID: bt.Stock.ID, LocationDestID: bt.Shelf1.ID, QtyDemand: bt.Demand(5)},
			{ID: 2, PickingID: 1, ProductID: bt.ProductY.ID, UoMID: bt.Units.ID, LocationID: bt.Stock.ID, LocationDestID: bt.Shelf1.ID, QtyDemand: bt.Demand(2)},
		},
	}))

	svc := service.NewPickingService(repo, service.PickingServiceConfig{})
	t.Cleanup(func() {
		svc.Close(context.Background())
	})
	return NewPickingHandler(svc)
}

func lineFor(t *testing.T, view dto.PickingView, productID int64) model.Line {
	t.Helper()
	for _, l := range view.Lines {
		if l.ProductID == productID {
			return l
		}
	}
	t.Fatalf("no line for product %d", productID)
	return model.Line{}
}

func TestPickingFlow_Integration(t *testing.T) {
	router := NewRouter(setupIntegrationRouter(t), NewHealthHandler(), DefaultRouterConfig())

	t.Run("lists open transfers", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/pickings?state=assigned", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data dto.PickingListResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Data.Count)
		assert.Equal(t, "WH/INT/00001", resp.Data.Pickings[0].Name)
	})

	t.Run("session is required", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/pickings/1/scan", `{"barcode":"X"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown transfer", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/pickings/999/session", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("open", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/pickings/1/session", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		view := decodeView(t, w)
		assert.Equal(t, "WH/INT/00001", view.Picking.Name)
		assert.Len(t, view.Lines, 2)
		assert.Equal(t, bt.Stock.ID, view.SourceID)
		assert.False(t, view.Dirty)
	})

	t.Run("scan product increments its line", func(t *testing.T) {
		for range 2 {
			w := doJSON(router, http.MethodPost, "/api/pickings/1/scan", `{"barcode":"X"}`)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		view := decodeView(t, doJSON(router, http.MethodGet, "/api/pickings/1", ""))
		line := lineFor(t, view, bt.ProductX.ID)
		assert.True(t, line.QtyDone.Equal(decimal.NewFromInt(2)), line.QtyDone.String())
		assert.True(t, view.Dirty)
	})

	t.Run("unknown barcode is a warning", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/pickings/1/scan", `{"barcode":"NOPE"}`, "Accept-Language", "en")
		require.Equal(t, http.StatusOK, w.Code)

		view := decodeView(t, w)
		require.NotEmpty(t, view.Notifications)
		assert.Equal(t, barcode.MsgBarcodeNotFound, view.Notifications[0].Key)
		assert.Contains(t, view.Notifications[0].Message, "NOPE")
	})

	t.Run("save persists the scanned quantities", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/pickings/1/save", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		view := decodeView(t, w)
		assert.False(t, view.Dirty)
		line := lineFor(t, view, bt.ProductX.ID)
		assert.True(t, line.QtyDone.Equal(decimal.NewFromInt(2)))
		assert.NotZero(t, line.ID)
	})

	t.Run("validate with remaining demand asks for a backorder", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/pickings/1/validate", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		view := decodeView(t, w)
		require.NotNil(t, view.Action)
		assert.Equal(t, barcode.WizardBackorder, view.Action.Name)
		assert.Equal(t, model.StateAssigned, view.Picking.State)
	})

	t.Run("validate discarding the backorder", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/pickings/1/validate", `{"backorder":"discard"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		view := decodeView(t, w)
		assert.Nil(t, view.Action)
		assert.Equal(t, model.StateDone, view.Picking.State)
		require.NotEmpty(t, view.Notifications)
		assert.Equal(t, barcode.MsgPickingValidated, view.Notifications[len(view.Notifications)-1].Key)
	})

	t.Run("closed transfer leaves the open list", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/pickings?state=assigned", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data dto.PickingListResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Zero(t, resp.Data.Count)
	})

	t.Run("exit closes the session", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/pickings/1/exit", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = doJSON(router, http.MethodGet, "/api/pickings/1", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
