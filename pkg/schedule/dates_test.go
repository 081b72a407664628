package schedule

import (
	"testing"
	"time"
)

func TestWeekMonday_IsMondayOfISOWeek(t *testing.T) {
	for year := 1999; year <= 2035; year++ {
		for week := 1; week <= 53; week++ {
			monday, ok := WeekMonday(year, week)
			if !ok {
				t.Fatalf("WeekMonday(%d, %d) failed", year, week)
			}
			if monday.Weekday() != time.Monday {
				t.Fatalf("WeekMonday(%d, %d) = %s, not a Monday", year, week, monday.Weekday())
			}

			for offset := 0; offset < 7; offset++ {
				day := monday.AddDate(0, 0, offset)
				isoYear, isoWeek := day.ISOWeek()

				// Week 53 only exists in long years; otherwise it rolls into week 1 of the next year.
				if week == 53 && isoWeek == 1 {
					continue
				}
				if isoYear != year || isoWeek != week {
					t.Fatalf("WeekMonday(%d, %d)+%d lands in ISO %d-W%02d", year, week, offset, isoYear, isoWeek)
				}
			}
		}
	}
}

func TestWeekMonday_KnownDates(t *testing.T) {
	tests := []struct {
		year, week int
		want       string
	}{
		{2026, 1, "2025-12-29"},
		{2026, 42, "2026-10-12"},
		{2021, 1, "2021-01-04"},
		{2020, 53, "2020-12-28"},
	}

	for _, tt := range tests {
		monday, ok := WeekMonday(tt.year, tt.week)
		if !ok {
			t.Fatalf("WeekMonday(%d, %d) failed", tt.year, tt.week)
		}
		if got := monday.Format("2006-01-02"); got != tt.want {
			t.Errorf("WeekMonday(%d, %d) = %s, want %s", tt.year, tt.week, got, tt.want)
		}
	}
}

func TestWeekMonday_Invalid(t *testing.T) {
	for _, c := range [][2]int{{2026, 0}, {2026, 54}, {0, 10}, {10000, 1}} {
		if _, ok := WeekMonday(c[0], c[1]); ok {
			t.Errorf("expected WeekMonday(%d, %d) to fail", c[0], c[1])
		}
	}
}

func TestSlotTime(t *testing.T) {
	if got := SlotTime("1"); got != "08:30 - 10:00" {
		t.Errorf("slot 1: got %q", got)
	}
	if got := SlotTime("8"); got != "20:40 - 22:10" {
		t.Errorf("slot 8: got %q", got)
	}
	if got := SlotTime("0"); got != UnknownTime {
		t.Errorf("slot 0: got %q", got)
	}
}

func TestCurrentWeek(t *testing.T) {
	tests := []struct {
		date       time.Time
		week, year int
	}{
		{time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC), 42, 2026},
		// 29.12.2025 opens ISO week 1 of 2026.
		{time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC), 1, 2026},
		// 01.01.2027 is a Friday and still in week 53 of 2026.
		{time.Date(2027, time.January, 1, 12, 0, 0, 0, time.UTC), 53, 2026},
	}

	for _, tt := range tests {
		week, year := CurrentWeek(tt.date)
		if week != tt.week || year != tt.year {
			t.Errorf("CurrentWeek(%s) = %d/%d, want %d/%d", tt.date.Format("2006-01-02"), week, year, tt.week, tt.year)
			continue
		}
		monday, ok := WeekMonday(year, week)
		if !ok || tt.date.Before(monday) || !tt.date.Before(monday.AddDate(0, 0, 7)) {
			t.Errorf("WeekMonday(%d, %d) = %s does not contain %s", year, week, monday.Format("2006-01-02"), tt.date.Format("2006-01-02"))
		}
	}
}
