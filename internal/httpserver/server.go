package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fpl-cache/internal/cache/tiered"
	"fpl-cache/internal/perf"
)

// Server exposes the cache's observability surface: health, performance
// stats, event invalidation, and Prometheus metrics.
type Server struct {
	coordinator *tiered.Coordinator
	sampler     *perf.Sampler
	logger      *zap.Logger
	server      *http.Server
}

// NewServer creates a new observability HTTP server
func NewServer(coordinator *tiered.Coordinator, sampler *perf.Sampler, logger *zap.Logger) *Server {
	return &Server{
		coordinator: coordinator,
		sampler:     sampler,
		logger:      logger,
	}
}

// Start starts the HTTP server on the given address
func (s *Server) Start(addr string) error {
	router := s.createRouter()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/stats", s.handleStats).Methods("GET")
	router.HandleFunc("/invalidate", s.handleInvalidate).Methods("POST")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// handleStats reports sampler aggregates and remote server statistics
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Performance: s.sampler.Snapshot(),
	}

	info, err := s.coordinator.RemoteInfo(r.Context())
	if err != nil {
		resp.RemoteError = err.Error()
	} else {
		resp.Remote = info
	}

	s.writeResponse(w, resp)
}

// handleInvalidate triggers event-based cache invalidation
func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	var req InvalidateRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Event == "" {
		s.writeErrorResponse(w, "Missing required field: event", http.StatusBadRequest)
		return
	}

	count := s.coordinator.InvalidateByEvent(r.Context(), req.Event)

	s.writeResponse(w, &InvalidateResponse{
		Success:     true,
		Event:       req.Event,
		Invalidated: count,
	})
}

// parseRequest parses JSON request body
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	defer r.Body.Close()

	return json.Unmarshal(body, v)
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
