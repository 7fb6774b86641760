package pipeline

// Document is the nested, store-ready representation of one athlete's race.
// Field order matches the reference dataset layout.
type Document struct {
	Event       EventDoc       `json:"event"`
	Athlete     AthleteDoc     `json:"athlete"`
	Performance PerformanceDoc `json:"performance"`
	Splits      []SplitDoc     `json:"splits"`
}

// EventDoc carries the repaired event metadata.
type EventDoc struct {
	EventID        string  `json:"event_id"`
	EventName      string  `json:"event_name"`
	EventYear      *int    `json:"event_year"`
	EventCity      *string `json:"event_city"`
	IsChampionship bool    `json:"is_championship"`
}

// AthleteDoc carries the athlete attributes, with optional fields already
// defaulted.
type AthleteDoc struct {
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	AgeGroup    string `json:"age_group"`
	Division    string `json:"division"`
}

// PerformanceDoc keeps both the original duration strings and their
// normalized seconds.
type PerformanceDoc struct {
	TotalTime      string `json:"total_time"`
	TotalSeconds   int    `json:"total_seconds"`
	WorkTime       string `json:"work_time"`
	WorkSeconds    int    `json:"work_seconds"`
	RoxzoneTime    string `json:"roxzone_time"`
	RoxzoneSeconds int    `json:"roxzone_seconds"`
	RunTime        string `json:"run_time"`
	RunSeconds     int    `json:"run_seconds"`
	IsValid        bool   `json:"is_valid"`
}

// SplitDoc is one of the 8 per-station stage records.
type SplitDoc struct {
	SplitNumber    int    `json:"split_number"`
	RunTime        string `json:"run_time"`
	RunSeconds     int    `json:"run_seconds"`
	WorkTime       string `json:"work_time"`
	WorkSeconds    int    `json:"work_seconds"`
	RoxzoneTime    string `json:"roxzone_time"`
	RoxzoneSeconds int    `json:"roxzone_seconds"`
}

// BuildDocument projects an enriched row into its nested document. Pure
// mapping: every value is already derived, nothing is computed here.
func BuildDocument(e *Enriched) Document {
	splits := make([]SplitDoc, 0, StationCount)
	for i := 0; i < StationCount; i++ {
		splits = append(splits, SplitDoc{
			SplitNumber:    i + 1,
			RunTime:        e.Runs[i],
			RunSeconds:     e.RunSplitSeconds[i],
			WorkTime:       e.Works[i],
			WorkSeconds:    e.WorkSplitSeconds[i],
			RoxzoneTime:    e.Roxzones[i],
			RoxzoneSeconds: e.RoxzoneSplitSeconds[i],
		})
	}

	return Document{
		Event: EventDoc{
			EventID:        e.EventID,
			EventName:      e.EventName,
			EventYear:      e.EventYear,
			EventCity:      e.EventCity,
			IsChampionship: e.IsChampionship,
		},
		Athlete: AthleteDoc{
			Gender:      e.Gender,
			Nationality: e.Nationality,
			AgeGroup:    e.AgeGroup,
			Division:    e.Division,
		},
		Performance: PerformanceDoc{
			TotalTime:      e.TotalTime,
			TotalSeconds:   e.TotalSeconds,
			WorkTime:       e.WorkTime,
			WorkSeconds:    e.WorkSeconds,
			RoxzoneTime:    e.RoxzoneTime,
			RoxzoneSeconds: e.RoxzoneSeconds,
			RunTime:        e.RunTime,
			RunSeconds:     e.RunSeconds,
			IsValid:        e.IsValid,
		},
		Splits: splits,
	}
}
