// Package api provides the HTTP server for Vigor: task logging, statistics,
// achievements, rank, and notifications over a thin JSON REST surface.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vigor-health/vigor/internal/app/tracker"
	"github.com/vigor-health/vigor/internal/domain"
	"github.com/vigor-health/vigor/internal/infra/sqlite"
)

// Version is reported by /api/version. Overridden at build time.
var Version = "dev"

// Server is the Vigor HTTP API server.
type Server struct {
	tracker        *tracker.Service
	db             *sqlite.DB
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(svc *tracker.Service, db *sqlite.DB) *Server {
	return &Server{tracker: svc, db: db}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"version": Version})
		})
		r.Get("/catalog", s.handleCatalog)
		r.Get("/tiers", s.handleTiers)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.handleCreateUser)
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", s.handleGetUser)
				r.Get("/stats", s.handleStats)
				r.Get("/rank", s.handleRank)
				r.Get("/achievements", s.handleAchievements)
				r.Get("/notifications", s.handleNotifications)
				r.Post("/notifications/{notifID}/shown", s.handleNotificationShown)
				r.Post("/tasks/{taskID}/log", s.handleLogTask)
				r.Delete("/tasks/{taskID}/meals/{entryID}", s.handleDeleteMeal)
			})
		})
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps sentinel domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrLogEntryNotFound),
		errors.Is(err, domain.ErrMealEntryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotMealTask),
		errors.Is(err, domain.ErrNotChecklistTask),
		errors.Is(err, domain.ErrMalformedLogEntry):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for the mobile client during development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
