package handler

import (
	"net/http"
	"strconv"

	"github.com/hyroxlab/hyrox-data/internal/api/respond"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// GetSummary serves the aggregate dataset report.
// @Summary Dataset summary
// @Description Aggregate counts over the transformed dataset: totals, completion, distinct events/cities/years, gender and division breakdowns.
// @Tags stats
// @Produce json
// @Success 200 {object} report.Summary
// @Router /api/v1/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.dataset.Summary())
}

// GetEvents serves per-event tallies.
// @Summary Per-event tallies
// @Description Athlete and completion counts grouped by event.
// @Tags stats
// @Produce json
// @Success 200 {array} report.EventTally
// @Router /api/v1/events [get]
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.dataset.Events())
}

// GetDocuments serves a page of transformed documents.
// @Summary Transformed documents
// @Description Paged access to the nested result documents.
// @Tags documents
// @Produce json
// @Param limit query int false "Page size (max 500)"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/documents [get]
func (h *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil || limit < 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "limit must be a non-negative integer")
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAM", "offset must be a non-negative integer")
		return
	}
	if limit == 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	docs, total := h.dataset.Documents(limit, offset)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"total":     total,
		"offset":    offset,
		"count":     len(docs),
		"documents": docs,
	})
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
