// Package source reads the flat HYROX results export into pipeline rows.
// It validates the input shape up front: a missing required column fails the
// whole load before any row is transformed. Cell-level problems are left to
// the pipeline's per-field recovery.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyroxlab/hyrox-data/internal/pipeline"
)

// requiredColumns lists every column the transform reads, minus the
// optional athlete attributes (nationality, age_group) which get defaults
// during enrichment.
func requiredColumns() []string {
	cols := []string{
		"event_id", "event_name", "gender", "division",
		"total_time", "work_time", "roxzone_time", "run_time",
	}
	for i := 1; i <= pipeline.StationCount; i++ {
		cols = append(cols,
			fmt.Sprintf("run_%d", i),
			fmt.Sprintf("work_%d", i),
			fmt.Sprintf("roxzone_%d", i),
		)
	}
	return cols
}

// ReadFile loads rows from a CSV file on disk.
func ReadFile(path string) ([]pipeline.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// Read parses the export from r, preserving row order.
func Read(r io.Reader) ([]pipeline.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows handled below

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []pipeline.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(rows)+2, err)
		}
		if blank(record) {
			continue
		}
		rows = append(rows, buildRow(record, index))
	}
	return rows, nil
}

// headerIndex maps column names to positions and rejects inputs missing any
// required column.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		index[key] = i
	}

	var missing []string
	for _, col := range requiredColumns() {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("input missing required columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func buildRow(record []string, index map[string]int) pipeline.Row {
	cell := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := pipeline.Row{
		EventID:     cell("event_id"),
		EventName:   cell("event_name"),
		Gender:      cell("gender"),
		Nationality: cell("nationality"),
		AgeGroup:    cell("age_group"),
		Division:    cell("division"),
		TotalTime:   cell("total_time"),
		WorkTime:    cell("work_time"),
		RoxzoneTime: cell("roxzone_time"),
		RunTime:     cell("run_time"),
	}
	for i := 0; i < pipeline.StationCount; i++ {
		row.Runs[i] = cell(fmt.Sprintf("run_%d", i+1))
		row.Works[i] = cell(fmt.Sprintf("work_%d", i+1))
		row.Roxzones[i] = cell(fmt.Sprintf("roxzone_%d", i+1))
	}
	return row
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
