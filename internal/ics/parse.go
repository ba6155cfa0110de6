package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"trainingcal/internal/grid"
	appLog "trainingcal/internal/log"
	"trainingcal/internal/model"
)

// ParseSessions reads the VEVENTs of an iCalendar payload as training
// sessions. Each event must carry a UID and an X-TRAINING-ID; events
// without them are logged and skipped.
//
// Dates keep the calendar day as written in the feed. An all-day DTEND is
// exclusive and is turned into an inclusive end date.
func ParseSessions(source string, body []byte) ([]model.TrainingSession, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ics: parse %s: %w", source, err)
	}

	sessions := make([]model.TrainingSession, 0)
	for _, ve := range cal.Events() {
		s, perr := parseVEvent(ve)
		if perr != nil {
			appLog.Warn("ics vevent skipped", "source", source, "reason", perr.Error())
			continue
		}
		sessions = append(sessions, s)
	}

	appLog.Debug("ics parse completed", "source", source, "session_count", len(sessions))
	return sessions, nil
}

func parseVEvent(ve *ical.VEvent) (model.TrainingSession, error) {
	var out model.TrainingSession

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.ID = uidProp.Value

	tidProp := ve.GetProperty(ical.ComponentProperty(PropTrainingID))
	if tidProp == nil || tidProp.Value == "" {
		return out, fmt.Errorf("event %s: missing %s", out.ID, PropTrainingID)
	}
	out.TrainingID = tidProp.Value

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return out, fmt.Errorf("event %s: missing DTSTART", out.ID)
	}
	start, _, err := parseICSTime(startProp.Value)
	if err != nil {
		return out, fmt.Errorf("event %s: DTSTART: %w", out.ID, err)
	}
	out.StartDate = grid.DateKey(start)
	out.EndDate = out.StartDate

	if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
		end, endAllDay, err := parseICSTime(endProp.Value)
		if err != nil {
			return out, fmt.Errorf("event %s: DTEND: %w", out.ID, err)
		}
		// An all-day DTEND is exclusive, and so is a timed DTEND at
		// midnight: the event is over before that day begins.
		if endAllDay || (isMidnight(end) && end.After(start)) {
			end = end.AddDate(0, 0, -1)
		}
		// A zero-length or exclusive all-day end never moves before the start.
		if key := grid.DateKey(end); key > out.StartDate {
			out.EndDate = key
		}
	}

	if p := ve.GetProperty(ical.ComponentProperty(PropLocationIDs)); p != nil {
		out.LocationIDs = splitList(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentProperty(PropTrainerIDs)); p != nil {
		out.TrainerIDs = splitList(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentProperty(PropAssistantIDs)); p != nil {
		out.AssistantIDs = splitList(p.Value)
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range splitList(p.Value) {
			if t, _, err := parseICSTime(part); err == nil {
				out.ExDates = append(out.ExDates, grid.DateKey(t))
			}
		}
	}

	return out, nil
}

// parseICSTime parses DATE and DATE-TIME values. The boolean reports a
// DATE (all-day) value. TZID parameters are not needed since only the
// written calendar date is kept.
func parseICSTime(v string) (time.Time, bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false, errors.New("empty time value")
	}

	// UTC form, e.g. 20250101T090000Z
	if strings.HasSuffix(v, "Z") {
		t, err := time.Parse("20060102T150405Z", v)
		return t, false, err
	}
	// Floating or TZID local form, e.g. 20250101T090000
	if strings.Contains(v, "T") {
		t, err := time.Parse("20060102T150405", v)
		return t, false, err
	}
	// Date-only (all-day), e.g. 20250101
	t, err := time.Parse("20060102", v)
	return t, true, err
}

func isMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
