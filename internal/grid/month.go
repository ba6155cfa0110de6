package grid

import "time"

// MonthCells is the fixed size of a month grid: 6 weeks of 7 days.
const MonthCells = 42

// Day is one cell of a month or year grid.
type Day struct {
	Date time.Time `json:"-"`
	Key  string    `json:"date"`

	// InPeriod is true when the day belongs to the month (month grid) or
	// year (year grid) being viewed.
	InPeriod bool `json:"in_period"`
	IsToday  bool `json:"is_today"`
}

func newDay(date time.Time, inPeriod bool, todayKey string) Day {
	key := DateKey(date)
	return Day{
		Date:     date,
		Key:      key,
		InPeriod: inPeriod,
		IsToday:  todayKey != "" && key == todayKey,
	}
}

func todayKeyOf(today time.Time) string {
	if today.IsZero() {
		return ""
	}
	return DateKey(today)
}

// MonthStart returns the first day of anchor's month as a civil date.
func MonthStart(anchor time.Time) time.Time {
	return Civil(anchor.Year(), anchor.Month(), 1)
}

// PrevMonth returns the first day of the month before anchor's month.
func PrevMonth(anchor time.Time) time.Time {
	return MonthStart(anchor).AddDate(0, -1, 0)
}

// NextMonth returns the first day of the month after anchor's month.
func NextMonth(anchor time.Time) time.Time {
	return MonthStart(anchor).AddDate(0, 1, 0)
}

// MonthGrid returns the 42 days shown for the month containing anchor,
// starting on the Monday on or before the 1st. Leading and trailing cells
// are taken from the adjacent months. today is only used to flag IsToday
// and may be the zero time.
func MonthGrid(anchor, today time.Time) []Day {
	first := MonthStart(anchor)
	start := first.AddDate(0, 0, -MondayIndex(first))
	todayKey := todayKeyOf(today)

	days := make([]Day, 0, MonthCells)
	for i := 0; i < MonthCells; i++ {
		d := start.AddDate(0, 0, i)
		inMonth := d.Year() == first.Year() && d.Month() == first.Month()
		days = append(days, newDay(d, inMonth, todayKey))
	}
	return days
}
