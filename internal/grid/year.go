package grid

import "time"

// MaxWeekRows bounds the year grid. A leap year starting on a Sunday has a
// 54th Monday on Dec 31; that row is not rendered.
const MaxWeekRows = 53

// WeekRow is seven consecutive days starting on a Monday.
type WeekRow struct {
	Days [7]Day `json:"days"`

	// MonthStart marks the row where a new month label begins: the first
	// row (always labeled January), or a row whose Monday falls in a
	// different month than the previous row's Monday.
	MonthStart bool   `json:"month_start"`
	MonthLabel string `json:"month_label,omitempty"`
}

// YearStart returns the Monday on or before January 1st of year.
func YearStart(year int) time.Time {
	jan1 := Civil(year, time.January, 1)
	return jan1.AddDate(0, 0, -MondayIndex(jan1))
}

// YearGrid returns the week rows covering year. Rows are emitted from the
// Monday on or before Jan 1 until a row's Monday lies past the year, capped
// at MaxWeekRows. Rows at either edge keep all 7 days; days outside year
// have InPeriod=false.
func YearGrid(year int, today time.Time) []WeekRow {
	start := YearStart(year)
	todayKey := todayKeyOf(today)

	rows := make([]WeekRow, 0, MaxWeekRows)
	var prevMonth time.Month
	for r := 0; r < MaxWeekRows; r++ {
		monday := start.AddDate(0, 0, 7*r)
		if monday.Year() > year {
			break
		}

		var row WeekRow
		for i := range row.Days {
			d := monday.AddDate(0, 0, i)
			row.Days[i] = newDay(d, d.Year() == year, todayKey)
		}
		month := monday.Month()
		if monday.Year() < year {
			// The first row opens the year even when its Monday is in December.
			month = time.January
		}
		if r == 0 || month != prevMonth {
			row.MonthStart = true
			row.MonthLabel = month.String()
		}
		prevMonth = month
		rows = append(rows, row)
	}
	return rows
}
