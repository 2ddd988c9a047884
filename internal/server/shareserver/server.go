package shareserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/yndnr/foldershare-go/internal/core/service"
	"github.com/yndnr/foldershare-go/internal/telemetry/metric"
)

const (
	// DefaultShutdownTimeout bounds the drain of in-flight calls.
	DefaultShutdownTimeout = 10 * time.Second

	limiterIdle      = 10 * time.Minute
	limiterPruneTick = time.Minute
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, host:port. Port 0 picks a free port.
	Addr string
	// ShutdownTimeout bounds the drain after stop fires.
	ShutdownTimeout time.Duration
	// Service answers calls. Required.
	Service Service
	// Limiters may be nil to disable rate limiting.
	Limiters *service.RateLimiterRegistry
	// Metrics may be nil. When set and ExposeMetrics is true, /metrics is
	// served on the same listener.
	Metrics       *metric.Registry
	ExposeMetrics bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server is the host's RPC endpoint.
type Server struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// New creates a server. It does not bind until Listen or Serve.
func New(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, errors.New("shareserver: no service")
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	handler := NewHandler(cfg.Service, cfg.Logger)
	path, rpc := handler.Mount(connect.WithInterceptors(
		DefaultInterceptors(cfg.Limiters, cfg.Metrics, cfg.Logger)...,
	))

	mux := http.NewServeMux()
	mux.Handle(path, rpc)
	mux.HandleFunc("/healthz", handleHealth)
	if cfg.ExposeMetrics && cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics.Handler())
	}

	return &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Listen binds the configured address. Calling it before Serve lets the
// caller learn the bound port.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts calls until stop fires, then stops accepting and waits up
// to ShutdownTimeout for in-flight calls to finish.
func (s *Server) Serve(stop <-chan struct{}) error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	s.logger.Info("rpc server listening", "addr", ln.Addr().String())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(ln)
	}()

	pruneDone := make(chan struct{})
	defer close(pruneDone)
	if s.cfg.Limiters.Enabled() {
		go s.pruneLimiters(pruneDone)
	}

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-stop:
	}

	s.logger.Info("rpc server stopping, draining in-flight calls", "timeout", s.cfg.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.httpServer.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	<-serveErr

	s.logger.Info("rpc server stopped")
	return nil
}

func (s *Server) pruneLimiters(done <-chan struct{}) {
	ticker := time.NewTicker(limiterPruneTick)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if n := s.cfg.Limiters.Prune(limiterIdle); n > 0 {
				s.logger.Debug("pruned idle rate limiters", "count", n)
			}
		}
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","time":%q}`, time.Now().UTC().Format(time.RFC3339))
}
