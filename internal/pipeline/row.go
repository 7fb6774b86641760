// Package pipeline implements the HYROX result transformation: event-name
// repair, duration normalization, completion validation, and projection of
// each flat row into a nested document ready for NDJSON output.
package pipeline

// StationCount is the number of (run, work station) splits in a HYROX race.
const StationCount = 8

// Default values applied to optional athlete fields before projection.
const (
	UnknownNationality  = "Unknown"
	UnspecifiedAgeGroup = "Not specified"
)

// Row is one athlete's record as it arrives from the flat export.
// All duration fields are strings formatted H:MM:SS or MM:SS, possibly empty.
type Row struct {
	EventID     string
	EventName   string
	Gender      string
	Nationality string
	AgeGroup    string
	Division    string

	TotalTime   string
	WorkTime    string
	RoxzoneTime string
	RunTime     string

	// Indexed split durations, position i holds run_{i+1} etc.
	Runs     [StationCount]string
	Works    [StationCount]string
	Roxzones [StationCount]string
}

// Enriched is a Row after all derivation stages have run. The embedded Row
// carries the corrected event name and the filled-in optional fields; nothing
// else in it is mutated.
type Enriched struct {
	Row

	IsChampionship bool
	EventYear      *int
	EventCity      *string

	TotalSeconds   int
	WorkSeconds    int
	RoxzoneSeconds int
	RunSeconds     int

	RunSplitSeconds     [StationCount]int
	WorkSplitSeconds    [StationCount]int
	RoxzoneSplitSeconds [StationCount]int

	IsValid bool
}
