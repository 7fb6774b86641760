package pipeline

// Complete reports whether the athlete finished all 8 stations with usable
// times: every run and work split must be strictly positive. Roxzone
// (transition) times do not count against completion. Returns on the first
// failing split.
func Complete(e *Enriched) bool {
	for i := 0; i < StationCount; i++ {
		if e.RunSplitSeconds[i] <= 0 || e.WorkSplitSeconds[i] <= 0 {
			return false
		}
	}
	return true
}
