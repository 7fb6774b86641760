package report

import (
	"sort"

	"github.com/hyroxlab/hyrox-data/internal/pipeline"
)

// EventTally is the per-event breakdown served by the diagnostic API.
type EventTally struct {
	EventID        string  `json:"event_id"`
	EventName      string  `json:"event_name"`
	EventYear      *int    `json:"event_year"`
	EventCity      *string `json:"event_city"`
	IsChampionship bool    `json:"is_championship"`
	Athletes       int     `json:"athletes"`
	ValidCount     int     `json:"valid_count"`
}

// Events groups the enriched rows per event, ordered by event name then id
// for stable output.
func Events(rows []pipeline.Enriched) []EventTally {
	byID := make(map[string]*EventTally)
	for i := range rows {
		row := &rows[i]
		tally, ok := byID[row.EventID]
		if !ok {
			tally = &EventTally{
				EventID:        row.EventID,
				EventName:      row.EventName,
				EventYear:      row.EventYear,
				EventCity:      row.EventCity,
				IsChampionship: row.IsChampionship,
			}
			byID[row.EventID] = tally
		}
		tally.Athletes++
		if row.IsValid {
			tally.ValidCount++
		}
	}

	out := make([]EventTally, 0, len(byID))
	for _, tally := range byID {
		out = append(out, *tally)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventName != out[j].EventName {
			return out[i].EventName < out[j].EventName
		}
		return out[i].EventID < out[j].EventID
	})
	return out
}
