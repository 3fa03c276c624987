// Package server provides the HTTP server hosting the Callisto forwarding
// proxy.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/proxy"
	"mercator-hq/callisto/pkg/proxy/middleware"
	"mercator-hq/callisto/pkg/telemetry/metrics"
	"mercator-hq/callisto/pkg/upstream"
)

// Server is the local HTTP server in front of the forwarding pipeline.
type Server struct {
	cfg          *config.Config
	httpServer   *http.Server
	collector    *metrics.Collector
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New creates a proxy server from the loaded configuration.
func New(cfg *config.Config) *Server {
	s := &Server{cfg: cfg}
	if cfg.Telemetry.Metrics.Enabled {
		s.collector = metrics.NewCollector(nil)
	}
	return s
}

// Start starts the HTTP server and blocks until shutdown is triggered by a
// signal, context cancellation, or a server error.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:           s.cfg.Proxy.ListenAddress(),
		Handler:        s.Handler(),
		ReadTimeout:    s.cfg.Proxy.ReadTimeout,
		WriteTimeout:   s.cfg.Proxy.WriteTimeout,
		IdleTimeout:    s.cfg.Proxy.IdleTimeout,
		MaxHeaderBytes: s.cfg.Proxy.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting deepseek proxy",
			"address", s.cfg.Proxy.ListenAddress(),
			"upstream", s.cfg.Upstream.BaseURL,
			"clean_response", s.cfg.CleanResponse,
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server, draining in-flight requests
// within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.cfg.Proxy.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Proxy.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("proxy server stopped")
	})

	return shutdownErr
}

// Handler builds the complete HTTP handler: service endpoints plus the
// catch-all forwarding handler, wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Service endpoints are answered locally and bypass admission.
	mux.Handle("/health", healthHandler())
	if s.cfg.Telemetry.Metrics.Enabled {
		mux.Handle(s.cfg.Telemetry.Metrics.Path, s.collector.Handler())
	}

	forwarder := upstream.NewForwarder(&s.cfg.Upstream)
	mux.Handle("/", proxy.NewHandler(s.cfg, forwarder, s.collector))

	var handler http.Handler = mux
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// healthHandler answers liveness probes.
func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})
}
