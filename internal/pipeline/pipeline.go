package pipeline

import (
	"fmt"
	"strings"
)

// Result tracks counts from one pipeline run.
type Result struct {
	Rows      int
	Corrected int
	Valid     int
	Invalid   int
}

// Summary returns a human-readable summary of the run.
func (r Result) Summary() string {
	return fmt.Sprintf("rows=%d corrected=%d valid=%d invalid=%d",
		r.Rows, r.Corrected, r.Valid, r.Invalid)
}

// Enrich runs the per-row derivation stages in order: event-name repair,
// derived event attributes, duration normalization, optional-field defaults,
// and completion validation. Total for every input; never fails.
func Enrich(row Row, corrections Corrections) Enriched {
	e := Enriched{Row: row}

	// Stage 1: field repair + derived event attributes.
	e.EventName = RepairEventName(row, corrections)
	e.IsChampionship = IsChampionship(e.EventName)
	e.EventYear = EventYear(e.EventName)
	e.EventCity = EventCity(e.EventName, e.IsChampionship)

	// Stage 2: duration normalization.
	e.TotalSeconds = ParseSeconds(row.TotalTime)
	e.WorkSeconds = ParseSeconds(row.WorkTime)
	e.RoxzoneSeconds = ParseSeconds(row.RoxzoneTime)
	e.RunSeconds = ParseSeconds(row.RunTime)
	for i := 0; i < StationCount; i++ {
		e.RunSplitSeconds[i] = ParseSeconds(row.Runs[i])
		e.WorkSplitSeconds[i] = ParseSeconds(row.Works[i])
		e.RoxzoneSplitSeconds[i] = ParseSeconds(row.Roxzones[i])
	}

	// Missing optional athlete fields get fixed defaults.
	if strings.TrimSpace(e.Nationality) == "" {
		e.Nationality = UnknownNationality
	}
	if strings.TrimSpace(e.AgeGroup) == "" {
		e.AgeGroup = UnspecifiedAgeGroup
	}

	// Stage 3: completion validation.
	e.IsValid = Complete(&e)

	return e
}

// Run transforms every row in input order and returns the enriched
// collection with run counts. Rows are independent; output order matches
// input order.
func Run(rows []Row, corrections Corrections) ([]Enriched, Result) {
	if corrections == nil {
		corrections = DefaultCorrections()
	}

	enriched := make([]Enriched, 0, len(rows))
	var result Result
	for _, row := range rows {
		e := Enrich(row, corrections)
		if e.EventName != row.EventName {
			result.Corrected++
		}
		if e.IsValid {
			result.Valid++
		} else {
			result.Invalid++
		}
		enriched = append(enriched, e)
	}
	result.Rows = len(enriched)
	return enriched, result
}

// BuildDocuments projects the enriched collection, preserving order.
func BuildDocuments(rows []Enriched) []Document {
	docs := make([]Document, 0, len(rows))
	for i := range rows {
		docs = append(docs, BuildDocument(&rows[i]))
	}
	return docs
}
