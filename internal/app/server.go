package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/guttosm/picking-service/config"
	"github.com/rs/zerolog/log"
)

// Server runs the HTTP API until its context ends, then drains in-flight
// requests and runs the shutdown hooks.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	onShutdown      []func(ctx context.Context)
}

// NewServer creates a Server listening on cfg.Port.
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// OnShutdown registers fn to run after the server stopped accepting
// requests. Hooks share the shutdown timeout and run in registration order.
func (s *Server) OnShutdown(fn func(ctx context.Context)) {
	s.onShutdown = append(s.onShutdown, fn)
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. It returns nil after a
// clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("Server starting")
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
	}
	return s.shutdown()
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	for _, fn := range s.onShutdown {
		fn(ctx)
	}
	if err == nil {
		log.Info().Msg("Server stopped gracefully")
	}
	return err
}
