package calendar

import (
	"fmt"
	"time"

	"trainingcal/internal/grid"
	"trainingcal/internal/model"
)

// DatedSession is a session whose start and end dates have been normalized
// to YYYY-MM-DD keys.
type DatedSession struct {
	model.TrainingSession

	Start string
	End   string
}

// MultiDay reports whether the session spans more than one calendar day.
func (s DatedSession) MultiDay() bool {
	return s.Start != s.End
}

// Covers reports whether key lies in [Start, End]. Keys are compared as
// strings, which orders YYYY-MM-DD dates correctly and never involves a
// timezone.
func (s DatedSession) Covers(key string) bool {
	return s.Start <= key && key <= s.End
}

// DateSession normalizes the dates of s. An empty end date means a
// single-day session.
func DateSession(s model.TrainingSession) (DatedSession, error) {
	start, err := grid.NormalizeKey(s.StartDate)
	if err != nil {
		return DatedSession{}, fmt.Errorf("session %s start: %w", s.ID, err)
	}
	end := start
	if s.EndDate != "" {
		end, err = grid.NormalizeKey(s.EndDate)
		if err != nil {
			return DatedSession{}, fmt.Errorf("session %s end: %w", s.ID, err)
		}
	}
	if end < start {
		return DatedSession{}, fmt.Errorf("session %s: %w (%s < %s)", s.ID, ErrInvertedDateRange, end, start)
	}
	return DatedSession{TrainingSession: s, Start: start, End: end}, nil
}

// DateSessions normalizes every session, skipping those whose dates
// cannot be used. The skipped sessions are reported in errs, in input
// order.
func DateSessions(sessions []model.TrainingSession) (dated []DatedSession, errs []error) {
	dated = make([]DatedSession, 0, len(sessions))
	for _, s := range sessions {
		ds, err := DateSession(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		dated = append(dated, ds)
	}
	return dated, errs
}

// SessionsOn returns the sessions whose date range contains day's calendar
// date, preserving input order. day is reduced to its date in its own
// location.
func SessionsOn(day time.Time, sessions []DatedSession) []DatedSession {
	return sessionsOnKey(grid.DateKey(day), sessions)
}

func sessionsOnKey(key string, sessions []DatedSession) []DatedSession {
	var out []DatedSession
	for _, s := range sessions {
		if s.Covers(key) {
			out = append(out, s)
		}
	}
	return out
}
