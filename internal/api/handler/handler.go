// Package handler provides HTTP handlers for the diagnostic API. Handlers
// serve the in-memory transformed dataset; no service layer in between.
package handler

import (
	"net/http"
	"time"

	"github.com/hyroxlab/hyrox-data/internal/api/respond"
	"github.com/hyroxlab/hyrox-data/internal/config"
	"github.com/hyroxlab/hyrox-data/internal/db"
	"github.com/hyroxlab/hyrox-data/internal/pipeline"
	"github.com/hyroxlab/hyrox-data/internal/report"
)

// Dataset is the read side of the served collection.
type Dataset interface {
	Summary() report.Summary
	Events() []report.EventTally
	Documents(limit, offset int) ([]pipeline.Document, int)
	LoadedAt() time.Time
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	dataset Dataset
	pool    *db.Pool // nil when no database is configured
	cfg     *config.Config
}

// New creates a Handler with shared dependencies.
func New(dataset Dataset, pool *db.Pool, cfg *config.Config) *Handler {
	return &Handler{
		dataset: dataset,
		pool:    pool,
		cfg:     cfg,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and dataset load time.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":       "HYROX Results Data API",
		"version":    "1.0.0",
		"status":     "running",
		"docs":       "/docs",
		"dataset_at": h.dataset.LoadedAt().UTC().Format(time.RFC3339),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity; 503 when no database is configured.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unavailable",
			"database":  "not configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
