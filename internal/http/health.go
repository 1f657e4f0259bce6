package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/circuitbreaker"
	"golang.org/x/sync/errgroup"
)

// HealthCheckFunc probes one dependency. It must honour ctx.
type HealthCheckFunc func(ctx context.Context) error

// ReadinessResponse is the body of the readiness probe.
type ReadinessResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks"`
}

type namedCheck struct {
	name  string
	check HealthCheckFunc
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	timeout  time.Duration
	checks   []namedCheck
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a HealthHandler whose checks get three seconds.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		timeout:  3 * time.Second,
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker adds a dependency probe run by the readiness endpoint.
func (h *HealthHandler) RegisterChecker(name string, check HealthCheckFunc) {
	h.checks = append(h.checks, namedCheck{name: name, check: check})
}

// RegisterCircuitBreaker reports cb as name_circuit. An open breaker makes
// the service not ready.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb != nil {
		h.breakers[name] = cb
	}
}

// Register mounts the probes on router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness godoc
// @Summary     Liveness probe
// @Description Reports that the process is up. Prometheus metrics are served at /metrics.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness godoc
// @Summary     Readiness probe
// @Description Runs the dependency checks in parallel and reports the store circuit breakers.
// @Tags        Health
// @Produce     json
// @Success     200 {object} ReadinessResponse
// @Failure     503 {object} ReadinessResponse
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp := h.probe(c.Request.Context())
	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) probe(ctx context.Context) ReadinessResponse {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	results := make([]error, len(h.checks))
	var g errgroup.Group
	for i, nc := range h.checks {
		g.Go(func() error {
			results[i] = nc.check(ctx)
			return nil
		})
	}
	_ = g.Wait()

	resp := ReadinessResponse{Status: "ok", Checks: make(map[string]string, len(h.checks)+len(h.breakers))}
	for i, nc := range h.checks {
		if err := results[i]; err != nil {
			resp.Checks[nc.name] = err.Error()
			resp.Status = "degraded"
			continue
		}
		resp.Checks[nc.name] = "ok"
	}

	names := make([]string, 0, len(h.breakers))
	for name := range h.breakers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stats := h.breakers[name].GetStats()
		resp.Checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			resp.Status = "degraded"
		}
	}

	if len(resp.Checks) == 0 {
		resp.Checks["service"] = "ok"
	}
	return resp
}
