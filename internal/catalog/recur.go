package catalog

import (
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"

	"trainingcal/internal/calendar"
	"trainingcal/internal/grid"
	"trainingcal/internal/model"
)

const defaultMaxOccurrences = 500

// ExpandResult holds the sessions after recurrence expansion.
type ExpandResult struct {
	Sessions []model.TrainingSession

	// Truncated lists the IDs of recurring sessions that hit the cap.
	Truncated []string
	// Errors reports recurring sessions that could not be expanded; they are
	// kept as a single occurrence.
	Errors []error
}

// ExpandRecurring replaces every session carrying an RRule by its
// occurrences. Each occurrence keeps the day span of the template session
// and gets the ID "<template id>@<start date>". Sessions without an RRule
// pass through unchanged. maxPer caps occurrences per template (500 when
// maxPer < 1), which also bounds rules without COUNT or UNTIL.
func ExpandRecurring(sessions []model.TrainingSession, maxPer int) ExpandResult {
	if maxPer < 1 {
		maxPer = defaultMaxOccurrences
	}
	res := ExpandResult{Sessions: make([]model.TrainingSession, 0, len(sessions))}

	for _, s := range sessions {
		if s.RRule == "" {
			res.Sessions = append(res.Sessions, s)
			continue
		}
		occ, truncated, err := expandSession(s, maxPer)
		if err != nil {
			res.Errors = append(res.Errors, err)
			s.RRule = ""
			res.Sessions = append(res.Sessions, s)
			continue
		}
		if truncated {
			res.Truncated = append(res.Truncated, s.ID)
		}
		res.Sessions = append(res.Sessions, occ...)
	}
	return res
}

func expandSession(s model.TrainingSession, maxPer int) ([]model.TrainingSession, bool, error) {
	ds, err := calendar.DateSession(s)
	if err != nil {
		return nil, false, err
	}
	start, err := grid.ParseDate(ds.Start)
	if err != nil {
		return nil, false, err
	}
	end, err := grid.ParseDate(ds.End)
	if err != nil {
		return nil, false, err
	}
	spanDays := int(end.Sub(start).Hours() / 24)

	r, err := rrule.StrToRRule(strings.TrimPrefix(s.RRule, "RRULE:"))
	if err != nil {
		return nil, false, fmt.Errorf("session %s rrule %q: %w", s.ID, s.RRule, err)
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range s.ExDates {
		t, err := grid.ParseDate(ex)
		if err != nil {
			return nil, false, fmt.Errorf("session %s exdate: %w", s.ID, err)
		}
		set.ExDate(t)
	}

	out := make([]model.TrainingSession, 0)
	next := set.Iterator()
	for {
		occStart, ok := next()
		if !ok {
			return out, false, nil
		}
		if len(out) == maxPer {
			return out, true, nil
		}
		occStart = grid.CivilOf(occStart)
		key := grid.DateKey(occStart)

		o := s
		o.ID = s.ID + "@" + key
		o.StartDate = key
		o.EndDate = grid.DateKey(occStart.AddDate(0, 0, spanDays))
		o.RRule = ""
		o.ExDates = nil
		out = append(out, o)
	}
}
