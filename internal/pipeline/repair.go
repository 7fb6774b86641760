package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

// --------------------------------------------------------------------------
// Event name corrections
// --------------------------------------------------------------------------

// Corrections maps an event_id to the correct event_name for events whose
// names arrived mangled in the export. Lookup is by event_id only, so
// applying a correction twice is a no-op.
type Corrections map[string]string

// DefaultCorrections covers the five events with broken names in the
// reference dataset.
func DefaultCorrections() Corrections {
	return Corrections{
		"JGDMS4JI5C9": "S6 2023 Munich",
		"JGDMS4JI464": "S5 2023 Munich",
		"2EFMS4JI2BE": "S4 2022 Munich",
		"JGDMS4JI46D": "S6 2023 Malmo",
		"JGDMS4JI468": "S5 2023 Koln",
	}
}

// RepairEventName returns the corrected event name for the row, or the
// original name when the event is not in the correction table.
func RepairEventName(row Row, corrections Corrections) string {
	if fixed, ok := corrections[row.EventID]; ok {
		return fixed
	}
	return row.EventName
}

// --------------------------------------------------------------------------
// Derived event attributes
// --------------------------------------------------------------------------

var yearPattern = regexp.MustCompile(`\d{4}`)

// IsChampionship reports whether the event name marks a championship event.
func IsChampionship(eventName string) bool {
	return strings.Contains(strings.ToLower(eventName), "championship")
}

// EventYear extracts the first 4-digit run from the event name. Returns nil
// when the name contains no such run.
func EventYear(eventName string) *int {
	match := yearPattern.FindString(eventName)
	if match == "" {
		return nil
	}
	year := 0
	for _, r := range match {
		year = year*10 + int(r-'0')
	}
	return &year
}

// EventCity extracts the host city from an event name. The rules are
// heuristics tuned to the observed naming formats; each branch is tried in
// order and a name matching none of them yields nil.
//
// Championship names:
//  1. "2023 European Championship - Berlin": city follows the " - "
//     separator.
//  2. "Hyrox Elite Championships Paris": the word "Championships" appears
//     and is not the final token, so the final token is the city.
//  3. Otherwise the token after the first 4-digit token is the city.
//
// Regular names ("S6 2023 Munich"): the third whitespace token, which
// absorbs the rest of the name ("S4 2022 New York" gives "New York").
func EventCity(eventName string, championship bool) *string {
	if championship {
		return championshipCity(eventName)
	}
	parts := splitMax(eventName, 3)
	if len(parts) > 2 {
		return &parts[2]
	}
	return nil
}

func championshipCity(name string) *string {
	if _, after, found := strings.Cut(name, " - "); found {
		parts := splitMax(after, 3)
		if len(parts) == 0 {
			return nil
		}
		return &parts[len(parts)-1]
	}

	tokens := strings.Fields(name)
	if strings.Contains(name, "Championships") &&
		len(tokens) > 0 && tokens[len(tokens)-1] != "Championships" {
		return &tokens[len(tokens)-1]
	}

	// Token following the first 4-digit numeric token.
	for i, tok := range tokens {
		if len(tok) == 4 && allDigits(tok) {
			if i+1 < len(tokens) {
				return &tokens[i+1]
			}
			return nil
		}
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// splitMax splits s on runs of whitespace into at most n tokens, the last
// token absorbing the remainder of the string. Mirrors the maxsplit
// behaviour the city heuristics were tuned against.
func splitMax(s string, n int) []string {
	var out []string
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for s != "" {
		if len(out) == n-1 {
			out = append(out, s)
			return out
		}
		cut := strings.IndexFunc(s, unicode.IsSpace)
		if cut < 0 {
			out = append(out, s)
			return out
		}
		out = append(out, s[:cut])
		s = strings.TrimLeftFunc(s[cut:], unicode.IsSpace)
	}
	return out
}
