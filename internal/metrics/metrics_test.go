package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.POST("/api/pickings/:id/scan", func(c *gin.Context) {
		assert.Equal(t, 1.0, testutil.ToFloat64(HTTPRequestsInFlight))
		c.Status(http.StatusOK)
	})
	router.POST("/api/pickings/:id/save", func(c *gin.Context) {
		c.Status(http.StatusServiceUnavailable)
	})

	tests := []struct {
		name   string
		path   string
		route  string
		status string
	}{
		{"labels the route template", "/api/pickings/7/scan", "/api/pickings/:id/scan", "200"},
		{"keeps the handler status", "/api/pickings/8/save", "/api/pickings/:id/save", "503"},
		{"folds unknown paths", "/api/nope/123", UnmatchedRoute, "404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := HTTPRequestTotal.WithLabelValues(http.MethodPost, tt.route, tt.status)
			before := testutil.ToFloat64(counter)

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, before+1, testutil.ToFloat64(counter))
			assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
		})
	}

	assert.Zero(t, testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodPost, "/api/pickings/7/scan", "200")))
}

func TestCounters(t *testing.T) {
	scans := BarcodeScansTotal.WithLabelValues("product", "applied")
	creates := BarcodeSaveCommandsTotal.WithLabelValues("create")
	hits := CacheOperationsTotal.WithLabelValues("get", "hit")
	written := AuditLogEntriesTotal.WithLabelValues("written")
	fetches := EntityFetchesTotal.WithLabelValues("product", "success")
	before := []float64{
		testutil.ToFloat64(scans), testutil.ToFloat64(creates), testutil.ToFloat64(hits),
		testutil.ToFloat64(written), testutil.ToFloat64(fetches),
	}

	RecordScan("product", "applied")
	RecordScan("product", "applied")
	RecordScan("location", "rejected")
	RecordSaveCommands("create", 3)
	RecordSaveCommands("create", 0)
	RecordCacheOperation("get", "hit")
	RecordAuditLogs("written", 3)
	RecordEntityFetch("product", "success")

	assert.Equal(t, before[0]+2, testutil.ToFloat64(scans))
	assert.Equal(t, before[1]+3, testutil.ToFloat64(creates))
	assert.Equal(t, before[2]+1, testutil.ToFloat64(hits))
	assert.Equal(t, before[3]+3, testutil.ToFloat64(written))
	assert.Equal(t, before[4]+1, testutil.ToFloat64(fetches))
}

func TestGauges(t *testing.T) {
	SetSessionsActive(4)
	assert.Equal(t, 4.0, testutil.ToFloat64(SessionsActive))

	SetCircuitBreakerState("mongodb-pickings", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("mongodb-pickings")))
}

func TestNamespace(t *testing.T) {
	RecordSave(20*time.Millisecond, "success")

	expected := `
# HELP picking_sessions_active Open scanning sessions.
# TYPE picking_sessions_active gauge
picking_sessions_active 2
`
	SetSessionsActive(2)
	require.NoError(t, testutil.CollectAndCompare(SessionsActive, strings.NewReader(expected), "picking_sessions_active"))
	assert.Equal(t, 1, testutil.CollectAndCount(BarcodeSaveDuration, "picking_save_duration_seconds"))
}
