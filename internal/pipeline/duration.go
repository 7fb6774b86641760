package pipeline

import (
	"strconv"
	"strings"
)

// ParseSeconds converts a colon-delimited duration string to total seconds.
// Accepts H:MM:SS and MM:SS. Empty values, the "0:00:00" placeholder, and
// anything unparsable all normalize to 0; the function never fails.
func ParseSeconds(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "0:00:00" {
		return 0
	}

	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		sec, errS := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errH != nil || errM != nil || errS != nil {
			return 0
		}
		return h*3600 + m*60 + sec
	case 2:
		m, errM := strconv.Atoi(strings.TrimSpace(parts[0]))
		sec, errS := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errM != nil || errS != nil {
			return 0
		}
		return m*60 + sec
	default:
		return 0
	}
}
