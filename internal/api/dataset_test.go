package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeExport(t *testing.T, rows int) string {
	t.Helper()

	cols := []string{
		"event_id", "event_name", "gender", "nationality", "age_group", "division",
		"total_time", "work_time", "roxzone_time", "run_time",
	}
	for i := 1; i <= 8; i++ {
		cols = append(cols,
			fmt.Sprintf("run_%d", i),
			fmt.Sprintf("work_%d", i),
			fmt.Sprintf("roxzone_%d", i))
	}

	var b strings.Builder
	b.WriteString(strings.Join(cols, ",") + "\n")
	for n := 0; n < rows; n++ {
		fields := []string{
			fmt.Sprintf("E%d", n), "S6 2023 Munich", "male", "GER", "30-34", "open",
			"1:19:54", "35:00", "6:30", "38:24",
		}
		for i := 0; i < 8; i++ {
			fields = append(fields, "4:48", "4:22", "0:48")
		}
		b.WriteString(strings.Join(fields, ",") + "\n")
	}

	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDatasetLoad(t *testing.T) {
	d := NewDataset(writeExport(t, 3), nil, nil, nil)
	if err := d.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := d.Summary()
	if s.TotalAthletes != 3 || s.ValidCount != 3 {
		t.Errorf("summary = %+v", s)
	}
	if d.LoadedAt().IsZero() {
		t.Error("LoadedAt is zero after load")
	}

	events := d.Events()
	if len(events) != 3 {
		t.Errorf("events = %d, want 3", len(events))
	}
}

func TestDatasetLoadMissingFile(t *testing.T) {
	d := NewDataset(filepath.Join(t.TempDir(), "absent.csv"), nil, nil, nil)
	if err := d.Load(); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}

func TestDatasetLoadFailureKeepsPrevious(t *testing.T) {
	path := writeExport(t, 2)
	d := NewDataset(path, nil, nil, nil)
	if err := d.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := d.Load(); err == nil {
		t.Fatal("Load succeeded on a removed file")
	}

	if s := d.Summary(); s.TotalAthletes != 2 {
		t.Errorf("previous dataset lost after failed refresh: %+v", s)
	}
}

func TestDatasetDocumentsPaging(t *testing.T) {
	d := NewDataset(writeExport(t, 5), nil, nil, nil)
	if err := d.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name      string
		limit     int
		offset    int
		wantCount int
	}{
		{name: "first page", limit: 2, offset: 0, wantCount: 2},
		{name: "middle page", limit: 2, offset: 2, wantCount: 2},
		{name: "short last page", limit: 2, offset: 4, wantCount: 1},
		{name: "offset past end", limit: 2, offset: 10, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, total := d.Documents(tt.limit, tt.offset)
			if total != 5 {
				t.Errorf("total = %d, want 5", total)
			}
			if len(docs) != tt.wantCount {
				t.Errorf("count = %d, want %d", len(docs), tt.wantCount)
			}
		})
	}
}

func TestDatasetRefreshScheduleValidation(t *testing.T) {
	d := NewDataset(writeExport(t, 1), nil, nil, nil)
	if _, err := d.StartRefresh("not a cron expr"); err == nil {
		t.Fatal("StartRefresh accepted an invalid schedule")
	}

	stop, err := d.StartRefresh("@hourly")
	if err != nil {
		t.Fatalf("StartRefresh: %v", err)
	}
	stop()
}
