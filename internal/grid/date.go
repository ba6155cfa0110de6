package grid

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date key format. Keys in this format
// order lexicographically the same way the dates order chronologically.
const DateLayout = "2006-01-02"

// ErrMalformedDate is returned when a date string cannot be parsed.
var ErrMalformedDate = errors.New("malformed date")

// Layouts accepted by ParseDate, tried in order.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// DateKey returns the YYYY-MM-DD key of t as seen in t's own location.
// No timezone conversion is done: 23:30 on the 30th in UTC-8 is still
// the 30th.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Civil returns midnight UTC of the given calendar date. All grid dates are
// civil dates built this way so AddDate never crosses a DST transition.
func Civil(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CivilOf drops the time of day and location of t, keeping the calendar
// date as written.
func CivilOf(t time.Time) time.Time {
	return Civil(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a calendar date or timestamp string and returns the
// written calendar date as a civil date. Timestamps with offsets are not
// converted to UTC first, so "2024-03-30T23:30:00-08:00" yields March 30.
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedDate)
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return CivilOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

// NormalizeKey parses s and returns its YYYY-MM-DD key.
func NormalizeKey(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return DateKey(t), nil
}

// MondayIndex returns the weekday of t with Monday=0 ... Sunday=6.
func MondayIndex(t time.Time) int {
	wd := t.Weekday()
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}
