package ics

import (
	"strings"
	"testing"
	"time"

	"trainingcal/internal/calendar"
	"trainingcal/internal/model"
)

func exportCatalog() *model.Catalog {
	return &model.Catalog{
		Locations: []model.TrainingLocation{{ID: "loc1", Name: "Main Garden"}},
		Trainings: []model.Training{
			{ID: "t1", Title: "Forest garden design", Status: model.StatusRegistrationsOpen, MaxParticipants: 10},
			{ID: "t2", Title: "Pruning", Status: model.StatusCancelled, MaxParticipants: 5},
		},
		Sessions: []model.TrainingSession{
			{ID: "s1", TrainingID: "t1", StartDate: "2024-03-30", EndDate: "2024-04-02", LocationIDs: []string{"loc1"}, TrainerIDs: []string{"m1", "m2"}, AssistantIDs: []string{"m3"}},
			{ID: "s2", TrainingID: "t2", StartDate: "2024-05-04", EndDate: "2024-05-04"},
			{ID: "s3", TrainingID: "ghost", StartDate: "2024-05-04", EndDate: "2024-05-04"},
		},
	}
}

func TestExportWritesAllDayEvents(t *testing.T) {
	stamp := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	out := Export(calendar.NewIndex(exportCatalog()), stamp)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:" + productID,
		"UID:s1",
		"DTSTART;VALUE=DATE:20240330",
		"DTEND;VALUE=DATE:20240403",
		"SUMMARY:Forest garden design",
		"X-TRAINING-ID:t1",
		"STATUS:CANCELLED",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q", want)
		}
	}
	if strings.Contains(out, "UID:s3") {
		t.Error("session of unknown training must not be exported")
	}
}

func TestExportParseRoundTrip(t *testing.T) {
	out := Export(calendar.NewIndex(exportCatalog()), time.Now())

	sessions, err := ParseSessions("roundtrip", []byte(out))
	if err != nil {
		t.Fatalf("ParseSessions returned error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	byID := make(map[string]model.TrainingSession)
	for _, s := range sessions {
		byID[s.ID] = s
	}
	s1 := byID["s1"]
	if s1.TrainingID != "t1" || s1.StartDate != "2024-03-30" || s1.EndDate != "2024-04-02" {
		t.Fatalf("unexpected s1: %+v", s1)
	}
	if len(s1.LocationIDs) != 1 || s1.LocationIDs[0] != "loc1" {
		t.Errorf("location ids lost: %v", s1.LocationIDs)
	}
	if len(s1.TrainerIDs) != 2 {
		t.Errorf("trainer ids lost: %v", s1.TrainerIDs)
	}
	if len(s1.AssistantIDs) != 1 || s1.AssistantIDs[0] != "m3" {
		t.Errorf("assistant ids lost: %v", s1.AssistantIDs)
	}
	if s2 := byID["s2"]; s2.StartDate != "2024-05-04" || s2.EndDate != "2024-05-04" {
		t.Fatalf("unexpected s2: %+v", s2)
	}
}

func TestParseSessionsTimedAndRecurring(t *testing.T) {
	body := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:timed",
		"X-TRAINING-ID:t1",
		"DTSTART:20240330T233000Z",
		"DTEND:20240331T010000Z",
		"RRULE:FREQ=WEEKLY;COUNT=3",
		"EXDATE:20240406T233000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:orphan",
		"DTSTART;VALUE=DATE:20240401",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	sessions, err := ParseSessions("inline", []byte(body))
	if err != nil {
		t.Fatalf("ParseSessions returned error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected event without training id to be skipped, got %d sessions", len(sessions))
	}
	s := sessions[0]
	if s.StartDate != "2024-03-30" || s.EndDate != "2024-03-31" {
		t.Fatalf("unexpected dates: %s..%s", s.StartDate, s.EndDate)
	}
	if s.RRule != "FREQ=WEEKLY;COUNT=3" {
		t.Errorf("rrule lost: %q", s.RRule)
	}
	if len(s.ExDates) != 1 || s.ExDates[0] != "2024-04-06" {
		t.Errorf("exdates lost: %v", s.ExDates)
	}
}

func TestParseSessionsMidnightEnd(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantStart string
		wantEnd   string
	}{
		{"evening until midnight", "20240330T180000", "20240331T000000", "2024-03-30", "2024-03-30"},
		{"utc until midnight", "20240330T180000Z", "20240331T000000Z", "2024-03-30", "2024-03-30"},
		{"two evenings", "20240330T180000", "20240401T000000", "2024-03-30", "2024-03-31"},
		{"past midnight", "20240330T180000", "20240331T003000", "2024-03-30", "2024-03-31"},
		{"zero length at midnight", "20240330T000000", "20240330T000000", "2024-03-30", "2024-03-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Join([]string{
				"BEGIN:VCALENDAR",
				"VERSION:2.0",
				"PRODID:-//test//EN",
				"BEGIN:VEVENT",
				"UID:evening",
				"X-TRAINING-ID:t1",
				"DTSTART:" + tt.start,
				"DTEND:" + tt.end,
				"END:VEVENT",
				"END:VCALENDAR",
				"",
			}, "\r\n")

			sessions, err := ParseSessions("inline", []byte(body))
			if err != nil {
				t.Fatalf("ParseSessions returned error: %v", err)
			}
			if len(sessions) != 1 {
				t.Fatalf("expected 1 session, got %d", len(sessions))
			}
			s := sessions[0]
			if s.StartDate != tt.wantStart || s.EndDate != tt.wantEnd {
				t.Fatalf("got %s..%s, want %s..%s", s.StartDate, s.EndDate, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParseSessionsRejectsEmptyBody(t *testing.T) {
	if _, err := ParseSessions("empty", nil); err == nil {
		t.Fatal("expected error for empty body")
	}
}
