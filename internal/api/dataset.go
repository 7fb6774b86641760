package api

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hyroxlab/hyrox-data/internal/pipeline"
	"github.com/hyroxlab/hyrox-data/internal/report"
	"github.com/hyroxlab/hyrox-data/internal/source"
)

// Dataset holds the transformed result collection served by the API. Each
// load runs the full pipeline over the input file and swaps the collection
// atomically; request handlers only ever see a complete dataset.
type Dataset struct {
	inputPath   string
	corrections pipeline.Corrections
	metrics     *Metrics
	logger      *slog.Logger

	mu       sync.RWMutex
	enriched []pipeline.Enriched
	docs     []pipeline.Document
	summary  report.Summary
	loadedAt time.Time
}

// NewDataset creates an empty dataset bound to an input file. Call Load
// before serving.
func NewDataset(inputPath string, corrections pipeline.Corrections, metrics *Metrics, logger *slog.Logger) *Dataset {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dataset{
		inputPath:   inputPath,
		corrections: corrections,
		metrics:     metrics,
		logger:      logger,
	}
}

// Load reads the input file and runs the transform, replacing the served
// collection on success. On failure the previous collection stays in place.
func (d *Dataset) Load() error {
	start := time.Now()
	rows, err := source.ReadFile(d.inputPath)
	if err != nil {
		return err
	}

	enriched, result := pipeline.Run(rows, d.corrections)
	docs := pipeline.BuildDocuments(enriched)
	summary := report.Build(enriched)

	d.mu.Lock()
	d.enriched = enriched
	d.docs = docs
	d.summary = summary
	d.loadedAt = time.Now()
	d.mu.Unlock()

	if d.metrics != nil {
		d.metrics.ObserveLoad(result.Rows, result.Valid, result.Invalid)
	}
	d.logger.Info("Dataset loaded",
		"input", d.inputPath,
		"duration", time.Since(start).Round(time.Millisecond),
		"summary", result.Summary())
	return nil
}

// StartRefresh schedules periodic reloads using a cron expression. Returns
// a stop function; the caller decides the lifecycle. Refresh failures keep
// the previous dataset and are logged, not fatal.
func (d *Dataset) StartRefresh(schedule string) (func(), error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := d.Load(); err != nil {
			d.logger.Error("Dataset refresh failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	c.Start()
	return func() { c.Stop() }, nil
}

// Summary returns the aggregate report for the current dataset.
func (d *Dataset) Summary() report.Summary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.summary
}

// Events returns per-event tallies for the current dataset.
func (d *Dataset) Events() []report.EventTally {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return report.Events(d.enriched)
}

// Documents returns a page of transformed documents and the total count.
func (d *Dataset) Documents(limit, offset int) ([]pipeline.Document, int) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	total := len(d.docs)
	if offset < 0 || offset >= total {
		return []pipeline.Document{}, total
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return d.docs[offset:end], total
}

// LoadedAt reports when the current dataset was swapped in.
func (d *Dataset) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}
