package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"sevsuctl/pkg/schedule"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// uidNamespace scopes the name-based event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("sevsu.ru"))

// sevastopol is used when the tz database is not available. Moscow time has
// no DST.
var sevastopol = time.FixedZone("MSK", 3*60*60)

func location() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return sevastopol
	}
	return loc
}

// GenerateICS writes one event per lesson of week to w.
// Lessons without a known time and weeks without dates are skipped.
func GenerateICS(week schedule.Week, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sevsuctl//timetable//RU")

	loc := location()
	now := time.Now()

	for _, day := range week.Days {
		date, ok := dayDate(week, day.Day, loc)
		if !ok {
			continue
		}

		for _, l := range day.Lessons {
			start, end, ok := lessonBounds(date, l.Time)
			if !ok {
				continue
			}

			event := cal.AddEvent(eventUID(start, l))
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetModifiedAt(now)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(l.Subject)
			if l.Room != "" {
				event.SetLocation(l.Room)
			}
			event.SetDescription(description(l))
		}
	}

	return cal.SerializeTo(w)
}

// dayDate resolves a weekday name of week to its calendar date.
func dayDate(week schedule.Week, name string, loc *time.Location) (time.Time, bool) {
	monday, ok := schedule.WeekMonday(week.Year, week.Week)
	if !ok {
		return time.Time{}, false
	}
	for i, wd := range schedule.Weekdays {
		if wd == name {
			d := monday.AddDate(0, 0, i)
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

// lessonBounds parses an "HH:MM - HH:MM" range on date.
func lessonBounds(date time.Time, span string) (time.Time, time.Time, bool) {
	from, to, found := strings.Cut(span, "-")
	if !found {
		return time.Time{}, time.Time{}, false
	}
	start, ok := clock(date, from)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := clock(date, to)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func clock(date time.Time, hhmm string) (time.Time, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), true
}

// eventUID is stable across exports of the same lesson.
func eventUID(start time.Time, l schedule.Lesson) string {
	name := fmt.Sprintf("%s|%s|%s|%s", start.UTC().Format(time.RFC3339), l.Subject, l.Group, l.Room)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@sevsuctl"
}

func description(l schedule.Lesson) string {
	var parts []string
	if l.Type != "" {
		parts = append(parts, "Тип: "+l.Type)
	}
	if l.Teacher != "" {
		parts = append(parts, "Преподаватель: "+l.Teacher)
	}
	if l.Group != "" {
		parts = append(parts, "Группа: "+l.Group)
	}
	return strings.Join(parts, "\n")
}
