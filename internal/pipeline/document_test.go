package pipeline

import (
	"encoding/json"
	"testing"
)

func sampleRow() Row {
	row := Row{
		EventID:     "JGDMS4JI5C9",
		EventName:   "S6 2023 M�nchen",
		Gender:      "male",
		Nationality: "GER",
		AgeGroup:    "30-34",
		Division:    "open",
		TotalTime:   "1:19:54",
		WorkTime:    "35:00",
		RoxzoneTime: "6:30",
		RunTime:     "38:24",
	}
	for i := 0; i < StationCount; i++ {
		row.Runs[i] = "4:48"
		row.Works[i] = "4:22"
		row.Roxzones[i] = "0:48"
	}
	return row
}

func TestBuildDocument(t *testing.T) {
	e := Enrich(sampleRow(), DefaultCorrections())
	doc := BuildDocument(&e)

	if doc.Event.EventID != "JGDMS4JI5C9" {
		t.Errorf("event_id = %q", doc.Event.EventID)
	}
	if doc.Event.EventName != "S6 2023 Munich" {
		t.Errorf("event_name = %q, want corrected name", doc.Event.EventName)
	}
	if doc.Event.EventYear == nil || *doc.Event.EventYear != 2023 {
		t.Errorf("event_year = %v, want 2023", doc.Event.EventYear)
	}
	if doc.Event.EventCity == nil || *doc.Event.EventCity != "Munich" {
		t.Errorf("event_city = %v, want Munich", doc.Event.EventCity)
	}
	if doc.Event.IsChampionship {
		t.Error("is_championship = true for regular event")
	}

	if doc.Performance.TotalTime != "1:19:54" || doc.Performance.TotalSeconds != 4794 {
		t.Errorf("total = %q/%d, want 1:19:54/4794",
			doc.Performance.TotalTime, doc.Performance.TotalSeconds)
	}
	if !doc.Performance.IsValid {
		t.Error("is_valid = false for complete race")
	}

	if len(doc.Splits) != StationCount {
		t.Fatalf("splits length = %d, want %d", len(doc.Splits), StationCount)
	}
	for i, split := range doc.Splits {
		if split.SplitNumber != i+1 {
			t.Errorf("splits[%d].split_number = %d, want %d", i, split.SplitNumber, i+1)
		}
		if split.RunTime != "4:48" || split.RunSeconds != 288 {
			t.Errorf("splits[%d] run = %q/%d, want 4:48/288", i, split.RunTime, split.RunSeconds)
		}
		if split.WorkSeconds != 262 || split.RoxzoneSeconds != 48 {
			t.Errorf("splits[%d] work/roxzone seconds = %d/%d", i, split.WorkSeconds, split.RoxzoneSeconds)
		}
	}
}

func TestBuildDocumentOptionalDefaults(t *testing.T) {
	row := sampleRow()
	row.Nationality = ""
	row.AgeGroup = "  "

	e := Enrich(row, nil)
	doc := BuildDocument(&e)

	if doc.Athlete.Nationality != UnknownNationality {
		t.Errorf("nationality = %q, want %q", doc.Athlete.Nationality, UnknownNationality)
	}
	if doc.Athlete.AgeGroup != UnspecifiedAgeGroup {
		t.Errorf("age_group = %q, want %q", doc.Athlete.AgeGroup, UnspecifiedAgeGroup)
	}
}

// The year must serialize as a JSON integer when present and as null when
// absent; the distinction survives a decode.
func TestDocumentNullFields(t *testing.T) {
	row := sampleRow()
	row.EventID = "UNCORRECTED"
	row.EventName = "Hyrox" // no year, too few tokens for a city

	e := Enrich(row, nil)
	doc := BuildDocument(&e)

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	event := decoded["event"].(map[string]interface{})
	if event["event_year"] != nil {
		t.Errorf("event_year = %v, want null", event["event_year"])
	}
	if event["event_city"] != nil {
		t.Errorf("event_city = %v, want null", event["event_city"])
	}

	perf := decoded["performance"].(map[string]interface{})
	if _, ok := perf["total_seconds"].(float64); !ok {
		t.Errorf("total_seconds decoded as %T, want number", perf["total_seconds"])
	}
}
