package schedule

import (
	"sort"
	"strconv"

	"sevsuctl/pkg/fields"
	"sevsuctl/pkg/group"
)

// SubjectPlaceholder is used when a record carries no discipline name.
const SubjectPlaceholder = "Предмет?"

// nonNumericSlot sorts slot keys that are not plain numbers after the real periods.
const nonNumericSlot = 99

var (
	TeacherAliases = fields.Aliases{
		"prepod_full",
		"prep_fio",
		"prep_short_name",
		"prepodName",
		"teacher_name",
		"fio",
		"prepod",
		"teacher",
	}

	RoomAliases = fields.Aliases{
		"auditorium",
		"aud_name",
		"auditory",
		"aud",
		"cabinet",
		"room_name",
		"num_aud",
	}

	GroupAliases = fields.Aliases{
		"group_name",
		"group_fio",
		"group",
	}
)

// Normalize converts the raw timetable payload into a Week.
func Normalize(raw any, week, year int) Week {
	return Week{
		Week: week,
		Year: year,
		Days: NormalizeDays(raw, week, year),
	}
}

// NormalizeDays converts the raw timetable payload, a mapping of weekday name
// to slot number to a list of lesson records, into ordered days.
// Anything that is not shaped like that is dropped silently.
func NormalizeDays(raw any, week, year int) []Day {
	data, ok := raw.(map[string]any)
	if !ok {
		return []Day{}
	}

	monday, hasDates := WeekMonday(year, week)

	days := []Day{}
	for offset, name := range Weekdays {
		slots, ok := data[name].(map[string]any)
		if !ok {
			continue
		}

		lessons := normalizeDay(slots)
		if len(lessons) == 0 {
			continue
		}

		day := Day{Day: name, Lessons: lessons}
		if hasDates {
			day.DateString = formatDayMonth(monday.AddDate(0, 0, offset))
		}
		days = append(days, day)
	}

	return days
}

func normalizeDay(slots map[string]any) []Lesson {
	var lessons []Lesson
	for _, slot := range sortedSlots(slots) {
		records, ok := slots[slot].([]any)
		if !ok {
			continue
		}
		for _, r := range records {
			rec, ok := r.(map[string]any)
			if !ok {
				continue
			}
			lessons = append(lessons, normalizeLesson(slot, rec))
		}
	}
	return lessons
}

func normalizeLesson(slot string, rec map[string]any) Lesson {
	subject := SubjectPlaceholder
	if v, present := rec["discipline_name"]; present && v != nil {
		subject, _ = fields.Text(v)
	}

	lessonType, _ := fields.Text(rec["nagruzka"])

	return Lesson{
		Time:    SlotTime(slot),
		Subject: subject,
		Type:    lessonType,
		Room:    RoomAliases.String(rec),
		Teacher: TeacherAliases.String(rec),
		Group:   group.ExtractCode(GroupAliases.String(rec)),
	}
}

// sortedSlots orders slot keys by their numeric value, so "10" follows "9".
func sortedSlots(slots map[string]any) []string {
	keys := make([]string, 0, len(slots))
	for k := range slots {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		ni, nj := slotNumber(keys[i]), slotNumber(keys[j])
		if ni != nj {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func slotNumber(key string) int {
	if key == "" {
		return nonNumericSlot
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return nonNumericSlot
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return nonNumericSlot
	}
	return n
}
