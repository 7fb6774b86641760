package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hyroxlab/hyrox-data/internal/config"
	"github.com/hyroxlab/hyrox-data/internal/pipeline"
	"github.com/hyroxlab/hyrox-data/internal/report"
)

// fakeDataset serves a fixed enriched collection.
type fakeDataset struct {
	enriched []pipeline.Enriched
	docs     []pipeline.Document
}

func newFakeDataset(t *testing.T) *fakeDataset {
	t.Helper()

	row := pipeline.Row{
		EventID:   "E1",
		EventName: "S6 2023 Munich",
		Gender:    "female",
		Division:  "open",
	}
	for i := 0; i < pipeline.StationCount; i++ {
		row.Runs[i] = "5:00"
		row.Works[i] = "4:00"
	}

	enriched, _ := pipeline.Run([]pipeline.Row{row, row}, nil)
	return &fakeDataset{
		enriched: enriched,
		docs:     pipeline.BuildDocuments(enriched),
	}
}

func (f *fakeDataset) Summary() report.Summary { return report.Build(f.enriched) }

func (f *fakeDataset) Events() []report.EventTally { return report.Events(f.enriched) }

func (f *fakeDataset) LoadedAt() time.Time { return time.Now() }

func (f *fakeDataset) Documents(limit, offset int) ([]pipeline.Document, int) {
	if offset >= len(f.docs) {
		return nil, len(f.docs)
	}
	end := offset + limit
	if end > len(f.docs) {
		end = len(f.docs)
	}
	return f.docs[offset:end], len(f.docs)
}

func testHandler(t *testing.T) *Handler {
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	return New(newFakeDataset(t), nil, cfg)
}

func TestGetSummary(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	h.GetSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var s report.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.TotalAthletes != 2 || s.ValidCount != 2 {
		t.Errorf("summary = %+v", s)
	}
	if s.ByGender["female"] != 2 {
		t.Errorf("ByGender = %v", s.ByGender)
	}
}

func TestGetDocuments(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents?limit=1&offset=1", nil)
	rec := httptest.NewRecorder()
	h.GetDocuments(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page struct {
		Total     int                 `json:"total"`
		Offset    int                 `json:"offset"`
		Count     int                 `json:"count"`
		Documents []pipeline.Document `json:"documents"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if page.Total != 2 || page.Count != 1 || page.Offset != 1 {
		t.Errorf("page = %+v", page)
	}
	if len(page.Documents) != 1 || len(page.Documents[0].Splits) != pipeline.StationCount {
		t.Errorf("documents = %+v", page.Documents)
	}
}

func TestGetDocumentsBadParams(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents?limit=abc", nil)
	rec := httptest.NewRecorder()
	h.GetDocuments(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealthCheckDBNotConfigured(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()
	h.HealthCheckDB(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
