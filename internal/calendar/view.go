package calendar

import (
	"fmt"
	"time"

	"trainingcal/internal/grid"
	"trainingcal/internal/model"
)

// OnViewTraining is called when the user selects a training shown in a
// view. The calendar itself never navigates.
type OnViewTraining func(trainingID string)

// Options tunes view building.
type Options struct {
	// MaxPerCell caps the trainings listed per month cell.
	MaxPerCell int
}

// DayCell is a month-view cell with its trainings.
type DayCell struct {
	grid.Day
	DaySummary
}

// MonthView is the month grid with per-cell trainings.
type MonthView struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Label string     `json:"label"`
	Prev  string     `json:"prev"`
	Next  string     `json:"next"`
	Cells []DayCell  `json:"cells"`
}

// BuildMonthView computes the month view for the month containing anchor.
func BuildMonthView(anchor, today time.Time, idx *Index, opts Options) MonthView {
	first := grid.MonthStart(anchor)
	days := grid.MonthGrid(anchor, today)

	v := MonthView{
		Year:  first.Year(),
		Month: first.Month(),
		Label: fmt.Sprintf("%s %d", first.Month(), first.Year()),
		Prev:  grid.DateKey(grid.PrevMonth(first)),
		Next:  grid.DateKey(grid.NextMonth(first)),
		Cells: make([]DayCell, 0, len(days)),
	}
	sessions := idx.Sessions()
	for _, d := range days {
		onDay := sessionsOnKey(d.Key, sessions)
		groups := attributeKey(d.Key, onDay, idx)
		v.Cells = append(v.Cells, DayCell{Day: d, DaySummary: aggregate(groups, idx, opts.MaxPerCell)})
	}
	return v
}

// ViewTraining invokes fn with id if the training appears in the view and
// reports whether it did.
func (v MonthView) ViewTraining(id string, fn OnViewTraining) bool {
	for _, c := range v.Cells {
		for _, t := range c.Trainings {
			if t.Training.ID == id {
				if fn != nil {
					fn(id)
				}
				return true
			}
		}
	}
	return false
}

// YearDay is a year-view day with its status dots.
type YearDay struct {
	grid.Day
	StatusSummary

	TrainingIDs []string `json:"training_ids,omitempty"`
}

// YearWeek is one row of the year view.
type YearWeek struct {
	Days       [7]YearDay `json:"days"`
	MonthStart bool       `json:"month_start"`
	MonthLabel string     `json:"month_label,omitempty"`
}

// YearView is the year grid with per-day status dots.
type YearView struct {
	Year  int        `json:"year"`
	Weeks []YearWeek `json:"weeks"`
}

// BuildYearView computes the year view for year.
func BuildYearView(year int, today time.Time, idx *Index) YearView {
	rows := grid.YearGrid(year, today)
	v := YearView{Year: year, Weeks: make([]YearWeek, 0, len(rows))}

	sessions := idx.Sessions()
	for _, row := range rows {
		w := YearWeek{MonthStart: row.MonthStart, MonthLabel: row.MonthLabel}
		for i, d := range row.Days {
			groups := attributeKey(d.Key, sessionsOnKey(d.Key, sessions), idx)
			yd := YearDay{Day: d}
			if len(groups) > 0 {
				trainings := make([]model.Training, 0, len(groups))
				for _, g := range groups {
					trainings = append(trainings, g.Training)
					yd.TrainingIDs = append(yd.TrainingIDs, g.Training.ID)
				}
				yd.StatusSummary = ResolveStatuses(trainings)
			}
			w.Days[i] = yd
		}
		v.Weeks = append(v.Weeks, w)
	}
	return v
}

// ViewTraining invokes fn with id if the training is active on any day of
// the view and reports whether it was.
func (v YearView) ViewTraining(id string, fn OnViewTraining) bool {
	for _, w := range v.Weeks {
		for _, d := range w.Days {
			for _, tid := range d.TrainingIDs {
				if tid == id {
					if fn != nil {
						fn(id)
					}
					return true
				}
			}
		}
	}
	return false
}
