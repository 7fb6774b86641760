package pipeline

import "testing"

func TestRepairEventName(t *testing.T) {
	corrections := DefaultCorrections()

	tests := []struct {
		name string
		row  Row
		want string
	}{
		{
			name: "known bad event id is corrected",
			row:  Row{EventID: "JGDMS4JI5C9", EventName: "S6 2023 M�nchen"},
			want: "S6 2023 Munich",
		},
		{
			name: "unknown event id is untouched",
			row:  Row{EventID: "ABC123", EventName: "S6 2023 Hamburg"},
			want: "S6 2023 Hamburg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairEventName(tt.row, corrections); got != tt.want {
				t.Errorf("RepairEventName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRepairEventNameIdempotent(t *testing.T) {
	corrections := DefaultCorrections()
	row := Row{EventID: "JGDMS4JI46D", EventName: "S6 2023 Malm�"}

	once := RepairEventName(row, corrections)
	row.EventName = once
	twice := RepairEventName(row, corrections)

	if once != twice {
		t.Errorf("second repair changed the name: %q -> %q", once, twice)
	}
}

func TestIsChampionship(t *testing.T) {
	tests := []struct {
		name  string
		event string
		want  bool
	}{
		{name: "exact word", event: "2023 European Championship - Berlin", want: true},
		{name: "case insensitive", event: "hyrox world CHAMPIONSHIP nice", want: true},
		{name: "plural form contains singular", event: "Hyrox Elite Championships Paris", want: true},
		{name: "regular event", event: "S6 2023 Munich", want: false},
		{name: "empty name", event: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsChampionship(tt.event); got != tt.want {
				t.Errorf("IsChampionship(%q) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestEventYear(t *testing.T) {
	tests := []struct {
		name  string
		event string
		want  *int
	}{
		{name: "season prefix", event: "S6 2023 Munich", want: intPtr(2023)},
		{name: "leading year", event: "2022 World Championship - Las Vegas", want: intPtr(2022)},
		{name: "first of two years", event: "2021 Relay 2022 Vienna", want: intPtr(2021)},
		{name: "digits inside longer run", event: "Event 20234", want: intPtr(2023)},
		{name: "no year", event: "Hyrox Elite Championships Paris", want: nil},
		{name: "empty", event: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EventYear(tt.event)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("EventYear(%q) = %v, want %v", tt.event, fmtIntPtr(got), fmtIntPtr(tt.want))
			}
			if got != nil && *got != *tt.want {
				t.Errorf("EventYear(%q) = %d, want %d", tt.event, *got, *tt.want)
			}
		})
	}
}

func TestEventCity(t *testing.T) {
	tests := []struct {
		name         string
		event        string
		championship bool
		want         *string
	}{
		// Championship: " - " separator
		{
			name:         "separator branch",
			event:        "2023 European Championship - Berlin",
			championship: true,
			want:         strPtr("Berlin"),
		},
		// Championship: "Championships" not final token
		{
			name:         "championships final token branch",
			event:        "Hyrox Elite Championships Paris",
			championship: true,
			want:         strPtr("Paris"),
		},
		{
			name:         "championships as final token falls through",
			event:        "2022 North American Championships",
			championship: true,
			want:         strPtr("North"),
		},
		// Championship: token after first 4-digit token
		{
			name:         "token after year",
			event:        "World Championship 2023 Manchester",
			championship: true,
			want:         strPtr("Manchester"),
		},
		{
			name:         "year is last token",
			event:        "World Championship 2023",
			championship: true,
			want:         nil,
		},
		{
			name:         "no branch matches",
			event:        "World Championship",
			championship: true,
			want:         nil,
		},
		// Regular events: third whitespace token
		{
			name:  "regular three tokens",
			event: "S6 2023 Munich",
			want:  strPtr("Munich"),
		},
		{
			name:  "regular multiword city absorbs remainder",
			event: "S4 2022 New York",
			want:  strPtr("New York"),
		},
		{
			name:  "regular too few tokens",
			event: "S6 2023",
			want:  nil,
		},
		{
			name:  "regular empty name",
			event: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EventCity(tt.event, tt.championship)
			switch {
			case got == nil && tt.want != nil:
				t.Errorf("EventCity(%q) = nil, want %q", tt.event, *tt.want)
			case got != nil && tt.want == nil:
				t.Errorf("EventCity(%q) = %q, want nil", tt.event, *got)
			case got != nil && tt.want != nil && *got != *tt.want:
				t.Errorf("EventCity(%q) = %q, want %q", tt.event, *got, *tt.want)
			}
		})
	}
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func fmtIntPtr(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
