package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/danielpaul/ft8encode/ft8"
	"github.com/danielpaul/ft8encode/pkg/config"
	"github.com/danielpaul/ft8encode/pkg/logbook"
	"github.com/danielpaul/ft8encode/pkg/logger"
	"github.com/danielpaul/ft8encode/pkg/metrics"
)

// Server is the waveform-preview HTTP server: a REST endpoint to run the
// encoder and a WebSocket feed broadcasting decimated trajectory previews
// to any downstream collaborator watching the encode in progress.
type Server struct {
	config  config.WebConfig
	logger  *logger.Logger
	encoder *ft8.Encoder
	server  *http.Server
	hub     *WebSocketHub
	api     *API
	addr    string
	mu      sync.RWMutex

	repo    *logbook.Repository
	metrics *metrics.Collector
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithLogbook wires an encode-history repository into the server's /api/encode
// handler, which records every successful encode as it completes.
func WithLogbook(repo *logbook.Repository) Option {
	return func(s *Server) { s.repo = repo }
}

// WithMetrics wires a metrics collector into the server's /api/encode
// handler, which observes every encode's latency, subtype, and outcome.
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Server) { s.metrics = collector }
}

// NewServer creates a new web server instance.
func NewServer(cfg config.WebConfig, log *logger.Logger, encoder *ft8.Encoder, opts ...Option) *Server {
	s := &Server{
		config:  cfg,
		logger:  log,
		encoder: encoder,
		hub:     NewWebSocketHub(log),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.api = NewAPI(log, encoder, s.hub, s.repo, s.metrics)
	return s
}

// Start starts the web server.
func Start(ctx context.Context, cfg config.WebConfig, log *logger.Logger, encoder *ft8.Encoder, opts ...Option) error {
	srv := NewServer(cfg, log, encoder, opts...)
	return srv.Start(ctx)
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Web server is disabled")
		return nil
	}

	go s.hub.Run(ctx)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/status", s.api.HandleStatus)
	mux.HandleFunc("/api/encode", s.api.HandleEncode)
	mux.Handle("/ws", s.hub.Handler())

	staticDir := "frontend/dist"
	if fi, err := os.Stat(staticDir); err == nil && fi.IsDir() {
		s.logger.Info("Serving static frontend assets", logger.String("dir", staticDir))
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			reqPath := filepath.Clean(r.URL.Path)
			if reqPath == "/" {
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			if len(reqPath) > 0 && reqPath[0] == '/' {
				reqPath = reqPath[1:]
			}
			fullPath := filepath.Join(staticDir, reqPath)
			if fi, err := os.Stat(fullPath); err == nil && !fi.IsDir() {
				http.ServeFile(w, r, fullPath)
				return
			}
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
		})
	} else {
		s.logger.Info("No static frontend assets found; SPA not served", logger.String("dir", staticDir))
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.mu.Lock()
	s.addr = listener.Addr().String()
	s.mu.Unlock()

	s.logger.Info("Starting web server",
		logger.String("address", s.addr))

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

// GetAddr returns the address the server is listening on.
func (s *Server) GetAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// GetHub returns the WebSocket hub.
func (s *Server) GetHub() *WebSocketHub {
	return s.hub
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "ft8encode",
		"time":    time.Now().Unix(),
	}); err != nil {
		s.logger.Warn("Failed to encode health response", logger.Error(err))
	}
}
