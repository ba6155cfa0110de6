package ics

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"trainingcal/internal/calendar"
	"trainingcal/internal/grid"
	"trainingcal/internal/model"
)

// Non-standard properties carrying catalog references through a feed.
const (
	PropTrainingID   = "X-TRAINING-ID"
	PropLocationIDs  = "X-LOCATION-IDS"
	PropTrainerIDs   = "X-TRAINER-IDS"
	PropAssistantIDs = "X-ASSISTANT-IDS"
)

const productID = "-//trainingcal//Training Calendar//EN"

// Export renders every dated session of idx as an all-day VEVENT. Sessions
// whose training is missing from the catalog are left out, as they are in
// the calendar views.
func Export(idx *calendar.Index, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, s := range idx.Sessions() {
		t, ok := idx.Training(s.TrainingID)
		if !ok {
			continue
		}
		start, err := grid.ParseDate(s.Start)
		if err != nil {
			continue
		}
		end, err := grid.ParseDate(s.End)
		if err != nil {
			continue
		}

		ev := cal.AddEvent(s.ID)
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(start)
		// DTEND of an all-day event is exclusive.
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		ev.SetSummary(t.Title)
		ev.SetStatus(objectStatus(t.Status))
		ev.AddProperty(ical.ComponentPropertyCategories, string(t.Status))
		ev.SetProperty(ical.ComponentProperty(PropTrainingID), t.ID)

		if names := idx.LocationNames(s.LocationIDs); len(names) > 0 {
			ev.SetLocation(strings.Join(names, ", "))
		}
		if len(s.LocationIDs) > 0 {
			ev.SetProperty(ical.ComponentProperty(PropLocationIDs), strings.Join(s.LocationIDs, ","))
		}
		if len(s.TrainerIDs) > 0 {
			ev.SetProperty(ical.ComponentProperty(PropTrainerIDs), strings.Join(s.TrainerIDs, ","))
		}
		if len(s.AssistantIDs) > 0 {
			ev.SetProperty(ical.ComponentProperty(PropAssistantIDs), strings.Join(s.AssistantIDs, ","))
		}
	}

	return cal.Serialize()
}

func objectStatus(s model.Status) ical.ObjectStatus {
	switch s {
	case model.StatusCancelled:
		return ical.ObjectStatusCancelled
	case model.StatusDraft, model.StatusPlanned:
		return ical.ObjectStatusTentative
	default:
		return ical.ObjectStatusConfirmed
	}
}
