// Package report builds diagnostic aggregates over a transformed result set.
// Pure read-only queries — nothing here feeds back into the pipeline.
package report

import (
	"fmt"
	"sort"

	"github.com/hyroxlab/hyrox-data/internal/pipeline"
)

// Summary holds the aggregate counts for one dataset.
type Summary struct {
	TotalAthletes  int     `json:"total_athletes"`
	ValidCount     int     `json:"valid_count"`
	InvalidCount   int     `json:"invalid_count"`
	CompletionRate float64 `json:"completion_rate"`

	UniqueEvents        int   `json:"unique_events"`
	UniqueCities        int   `json:"unique_cities"`
	UniqueNationalities int   `json:"unique_nationalities"`
	UniqueAgeGroups     int   `json:"unique_age_groups"`
	Years               []int `json:"years"`

	ByGender   map[string]int `json:"by_gender"`
	ByDivision map[string]int `json:"by_division"`

	ChampionshipCount int `json:"championship_count"`
	RegularCount      int `json:"regular_count"`
}

// Build computes the summary for an enriched collection.
func Build(rows []pipeline.Enriched) Summary {
	s := Summary{
		ByGender:   make(map[string]int),
		ByDivision: make(map[string]int),
	}

	events := make(map[string]struct{})
	cities := make(map[string]struct{})
	years := make(map[int]struct{})
	nationalities := make(map[string]struct{})
	ageGroups := make(map[string]struct{})

	for i := range rows {
		row := &rows[i]
		s.TotalAthletes++
		if row.IsValid {
			s.ValidCount++
		} else {
			s.InvalidCount++
		}

		events[row.EventName] = struct{}{}
		if row.EventCity != nil {
			cities[*row.EventCity] = struct{}{}
		}
		if row.EventYear != nil {
			years[*row.EventYear] = struct{}{}
		}
		nationalities[row.Nationality] = struct{}{}
		ageGroups[row.AgeGroup] = struct{}{}

		s.ByGender[row.Gender]++
		s.ByDivision[row.Division]++

		if row.IsChampionship {
			s.ChampionshipCount++
		} else {
			s.RegularCount++
		}
	}

	if s.TotalAthletes > 0 {
		s.CompletionRate = float64(s.ValidCount) / float64(s.TotalAthletes)
	}

	s.UniqueEvents = len(events)
	s.UniqueCities = len(cities)
	s.UniqueNationalities = len(nationalities)
	s.UniqueAgeGroups = len(ageGroups)

	s.Years = make([]int, 0, len(years))
	for y := range years {
		s.Years = append(s.Years, y)
	}
	sort.Ints(s.Years)

	return s
}

// Text renders the summary in the report format printed by the CLI.
func (s Summary) Text() string {
	out := fmt.Sprintf("Total athletes: %d\n", s.TotalAthletes)
	out += fmt.Sprintf("Valid completions: %d\n", s.ValidCount)
	out += fmt.Sprintf("Invalid/DNF: %d\n", s.InvalidCount)
	out += fmt.Sprintf("Completion rate: %.2f%%\n", s.CompletionRate*100)
	out += fmt.Sprintf("Unique events: %d\n", s.UniqueEvents)
	out += fmt.Sprintf("Event years: %v\n", s.Years)
	out += fmt.Sprintf("Unique cities: %d\n", s.UniqueCities)
	out += fmt.Sprintf("Countries: %d\n", s.UniqueNationalities)
	out += fmt.Sprintf("Age groups: %d\n", s.UniqueAgeGroups)

	out += "Gender distribution:\n"
	for _, key := range sortedKeys(s.ByGender) {
		out += fmt.Sprintf("  - %s: %d\n", key, s.ByGender[key])
	}
	out += "Division distribution:\n"
	for _, key := range sortedKeys(s.ByDivision) {
		out += fmt.Sprintf("  - %s: %d\n", key, s.ByDivision[key])
	}

	out += fmt.Sprintf("Championship events: %d\n", s.ChampionshipCount)
	out += fmt.Sprintf("Regular events: %d\n", s.RegularCount)
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
