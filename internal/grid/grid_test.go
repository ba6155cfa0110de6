package grid

import (
	"errors"
	"testing"
	"time"
)

func TestMonthGridAlwaysFortyTwoCellsStartingMonday(t *testing.T) {
	for year := 2000; year <= 2030; year++ {
		for m := time.January; m <= time.December; m++ {
			anchor := time.Date(year, m, 17, 15, 4, 5, 0, time.UTC)
			days := MonthGrid(anchor, time.Time{})
			if len(days) != MonthCells {
				t.Fatalf("%d-%02d: expected %d cells, got %d", year, m, MonthCells, len(days))
			}
			if wd := days[0].Date.Weekday(); wd != time.Monday {
				t.Fatalf("%d-%02d: first cell is %s, want Monday", year, m, wd)
			}
			for i := 1; i < len(days); i++ {
				if got := days[i].Date.Sub(days[i-1].Date); got != 24*time.Hour {
					t.Fatalf("%d-%02d: cells %d and %d are not consecutive", year, m, i-1, i)
				}
			}
			inMonth := 0
			for _, d := range days {
				if d.InPeriod {
					inMonth++
				}
			}
			if want := Civil(year, m+1, 0).Day(); inMonth != want {
				t.Fatalf("%d-%02d: expected %d in-month cells, got %d", year, m, want, inMonth)
			}
		}
	}
}

func TestMonthGridLeapFebruaryStartingWednesday(t *testing.T) {
	// February 2012 starts on a Wednesday and has 29 days.
	days := MonthGrid(Civil(2012, time.February, 10), time.Time{})

	if days[0].Key != "2012-01-30" || days[1].Key != "2012-01-31" {
		t.Fatalf("expected Jan 30/31 padding, got %s %s", days[0].Key, days[1].Key)
	}
	if days[0].InPeriod || days[1].InPeriod {
		t.Fatal("previous month padding must not be in period")
	}
	if days[2].Key != "2012-02-01" || !days[2].InPeriod {
		t.Fatalf("expected Feb 1 in period at index 2, got %+v", days[2])
	}
	if days[30].Key != "2012-02-29" {
		t.Fatalf("expected Feb 29 at index 30, got %s", days[30].Key)
	}
	if days[31].Key != "2012-03-01" || days[31].InPeriod {
		t.Fatalf("expected Mar 1 out of period at index 31, got %+v", days[31])
	}
	if days[41].Key != "2012-03-11" {
		t.Fatalf("expected last cell Mar 11, got %s", days[41].Key)
	}
}

func TestMonthGridStartingMondayHasNoLeadingPadding(t *testing.T) {
	// April 2024 starts on a Monday.
	days := MonthGrid(Civil(2024, time.April, 30), time.Time{})
	if days[0].Key != "2024-04-01" || !days[0].InPeriod {
		t.Fatalf("expected grid to start on Apr 1, got %+v", days[0])
	}
}

func TestMonthGridLongMonthStartingSunday(t *testing.T) {
	// December 2024 starts on a Sunday and needs all six rows.
	days := MonthGrid(Civil(2024, time.December, 1), time.Time{})
	if days[6].Key != "2024-12-01" {
		t.Fatalf("expected Dec 1 at index 6, got %s", days[6].Key)
	}
	if days[36].Key != "2024-12-31" || !days[36].InPeriod {
		t.Fatalf("expected Dec 31 at index 36, got %+v", days[36])
	}
	if days[41].Key != "2025-01-05" {
		t.Fatalf("expected last cell Jan 5, got %s", days[41].Key)
	}
}

func TestMonthGridMarksToday(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*60*60)
	today := time.Date(2024, time.March, 30, 23, 30, 0, 0, loc)
	days := MonthGrid(today, today)

	count := 0
	for _, d := range days {
		if d.IsToday {
			count++
			if d.Key != "2024-03-30" {
				t.Fatalf("wrong cell marked today: %s", d.Key)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one today cell, got %d", count)
	}
}

func TestMonthGridDeterministic(t *testing.T) {
	anchor := Civil(2026, time.October, 17)
	a := MonthGrid(anchor, anchor)
	b := MonthGrid(anchor, anchor)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPrevNextMonth(t *testing.T) {
	anchor := Civil(2024, time.January, 31)
	if got := DateKey(PrevMonth(anchor)); got != "2023-12-01" {
		t.Errorf("PrevMonth = %s", got)
	}
	if got := DateKey(NextMonth(anchor)); got != "2024-02-01" {
		t.Errorf("NextMonth = %s", got)
	}
}

func TestYearGridShape(t *testing.T) {
	for year := 1990; year <= 2040; year++ {
		rows := YearGrid(year, time.Time{})
		if len(rows) < 52 || len(rows) > MaxWeekRows {
			t.Fatalf("%d: expected 52-53 rows, got %d", year, len(rows))
		}
		first := rows[0].Days[0].Date
		if first.Weekday() != time.Monday {
			t.Fatalf("%d: first day is %s", year, first.Weekday())
		}
		if first.After(Civil(year, time.January, 1)) {
			t.Fatalf("%d: first day %s is after Jan 1", year, DateKey(first))
		}
		prev := first.AddDate(0, 0, -1)
		for r, row := range rows {
			for i, d := range row.Days {
				if d.Date.Sub(prev) != 24*time.Hour {
					t.Fatalf("%d: row %d day %d not consecutive", year, r, i)
				}
				if d.InPeriod != (d.Date.Year() == year) {
					t.Fatalf("%d: row %d day %d InPeriod=%v for %s", year, r, i, d.InPeriod, d.Key)
				}
				prev = d.Date
			}
		}
	}
}

func TestYearGridCapsLeapYearStartingSunday(t *testing.T) {
	// 2012 starts on a Sunday and is a leap year: Dec 31 is a 54th Monday.
	rows := YearGrid(2012, time.Time{})
	if len(rows) != MaxWeekRows {
		t.Fatalf("expected %d rows, got %d", MaxWeekRows, len(rows))
	}
	if got := rows[0].Days[0].Key; got != "2011-12-26" {
		t.Fatalf("expected first Monday 2011-12-26, got %s", got)
	}
	if got := rows[len(rows)-1].Days[0].Key; got != "2012-12-24" {
		t.Fatalf("expected last row to start 2012-12-24, got %s", got)
	}
}

func TestYearGridMonthLabels(t *testing.T) {
	rows := YearGrid(2024, time.Time{})
	if !rows[0].MonthStart || rows[0].MonthLabel != "January" {
		t.Fatalf("first row should start January, got %+v", rows[0].MonthLabel)
	}
	labels := 0
	for i, row := range rows {
		if !row.MonthStart {
			continue
		}
		labels++
		if i > 0 && row.Days[0].Date.Month() == rows[i-1].Days[0].Date.Month() {
			t.Fatalf("row %d labeled but shares month with previous row", i)
		}
	}
	if labels != 12 {
		t.Fatalf("expected 12 month labels in 2024, got %d", labels)
	}
}

func TestYearGridFirstRowLabeledJanuary(t *testing.T) {
	// 2025 starts on a Wednesday: row 0 begins on 2024-12-30.
	rows := YearGrid(2025, time.Time{})
	if got := rows[0].Days[0].Key; got != "2024-12-30" {
		t.Fatalf("expected first Monday 2024-12-30, got %s", got)
	}
	if !rows[0].MonthStart || rows[0].MonthLabel != "January" {
		t.Fatalf("first row should be labeled January, got %q", rows[0].MonthLabel)
	}
	if rows[1].MonthStart {
		t.Fatalf("second row repeats label %q", rows[1].MonthLabel)
	}

	for year := 1990; year <= 2040; year++ {
		rows := YearGrid(year, time.Time{})
		var labels []string
		for _, row := range rows {
			if row.MonthStart {
				labels = append(labels, row.MonthLabel)
			}
		}
		if len(labels) != 12 {
			t.Fatalf("%d: expected 12 month labels, got %v", year, labels)
		}
		for i, l := range labels {
			if want := time.Month(i + 1).String(); l != want {
				t.Fatalf("%d: label %d is %q, want %q", year, i, l, want)
			}
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-30", "2024-03-30"},
		{" 2024-03-30 ", "2024-03-30"},
		{"2024-03-30T23:30:00-08:00", "2024-03-30"},
		{"2024-03-31T00:30:00+02:00", "2024-03-31"},
		{"2024-03-30T10:00:00Z", "2024-03-30"},
		{"2024-03-30T10:00:00.123Z", "2024-03-30"},
		{"2024-03-30T10:00:00", "2024-03-30"},
		{"2024-03-30 10:00:00", "2024-03-30"},
	}
	for _, tt := range tests {
		got, err := NormalizeKey(tt.in)
		if err != nil {
			t.Fatalf("NormalizeKey(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeKey(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "30/03/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrMalformedDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrMalformedDate", bad, err)
		}
	}
}

func TestMondayIndex(t *testing.T) {
	// 2024-04-01 is a Monday.
	for i := 0; i < 7; i++ {
		d := Civil(2024, time.April, 1+i)
		if got := MondayIndex(d); got != i {
			t.Errorf("MondayIndex(%s) = %d, want %d", DateKey(d), got, i)
		}
	}
}
