// Package server streams generator output to websocket clients.
//
// Every connection owns a generator taken from the server's seeder, so
// connections never share state and no lock guards generation.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lox/splittable/rng"
)

// Config bounds what a single request may ask for.
type Config struct {
	MaxCount  int // largest Count accepted per request
	BatchSize int // values per TypeValues message
}

// DefaultConfig returns the default limits.
func DefaultConfig() Config {
	return Config{MaxCount: 1_000_000, BatchSize: 1024}
}

// Option configures a Server.
type Option func(*Server)

// WithConfig replaces the default limits.
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.config = cfg
	}
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// Server is the streaming server.
type Server struct {
	logger   zerolog.Logger
	seeder   *rng.Seeder
	config   Config
	registry *prometheus.Registry
	metrics  *metrics
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	mu    sync.Mutex
	conns map[*connection]struct{}
}

// NewServer creates a server drawing per-connection generators from seeder.
func NewServer(logger zerolog.Logger, seeder *rng.Seeder, opts ...Option) *Server {
	s := &Server{
		logger: logger.With().Str("component", "server").Logger(),
		seeder: seeder,
		config: DefaultConfig(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[*connection]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/stream", s.handleStream)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Streaming server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down streaming server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Hijacked websocket connections are not tracked by http.Server.
	s.closeConnections()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	c := newConnection(ws, s.seeder.New(), s.config, s.metrics, s.logger)
	s.track(c)
	defer s.untrack(c)

	c.run()
}

func (s *Server) track(c *connection) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	total := len(s.conns)
	s.mu.Unlock()

	s.metrics.connections.Inc()
	s.logger.Info().Str("remote", c.remote).Int("total", total).Msg("Client connected")
}

func (s *Server) untrack(c *connection) {
	s.mu.Lock()
	delete(s.conns, c)
	total := len(s.conns)
	s.mu.Unlock()

	_ = c.ws.Close()
	s.metrics.connections.Dec()
	s.logger.Info().Str("remote", c.remote).Int("total", total).Msg("Client disconnected")
}

func (s *Server) closeConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		_ = c.ws.Close()
	}
}
