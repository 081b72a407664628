package schedule

import (
	"time"
)

// WeekMonday returns the Monday of the given ISO week. January 4 always
// falls into week 1, so the week is located relative to it.
func WeekMonday(year, week int) (time.Time, bool) {
	if year < 1 || year > 9999 || week < 1 || week > 53 {
		return time.Time{}, false
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	// time.Weekday has Sunday = 0, ISO weekdays run Monday = 1 .. Sunday = 7.
	isoDay := int(jan4.Weekday())
	if isoDay == 0 {
		isoDay = 7
	}

	week1 := jan4.AddDate(0, 0, -(isoDay - 1))
	return week1.AddDate(0, 0, 7*(week-1)), true
}

// CurrentWeek returns the ISO week of t and the ISO year it belongs to, so
// that WeekMonday(year, week) is the Monday on or before t.
func CurrentWeek(t time.Time) (week, year int) {
	year, week = t.ISOWeek()
	return week, year
}

func formatDayMonth(t time.Time) string {
	return t.Format("02.01")
}
