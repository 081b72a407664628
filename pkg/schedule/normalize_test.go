package schedule

import (
	"encoding/json"
	"reflect"
	"testing"

	"sevsuctl/pkg/group"
)

func decode(t *testing.T, payload string) any {
	t.Helper()
	var raw any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return raw
}

func TestNormalizeDays_CanonicalLesson(t *testing.T) {
	raw := decode(t, `{
		"Понедельник": {
			"3": [{"discipline_name":"Физика","nagruzka":"лек","auditorium":"303","prepod_full":"Иванов И.И."}]
		}
	}`)

	days := NormalizeDays(raw, 10, 2026)
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}

	want := Lesson{
		Time:    "11:50 - 13:20",
		Subject: "Физика",
		Type:    "лек",
		Room:    "303",
		Teacher: "Иванов И.И.",
		Group:   group.NotFound,
	}
	if got := days[0].Lessons[0]; got != want {
		t.Errorf("lesson mismatch.\nGot: %+v\nExpected: %+v", got, want)
	}

	// ISO week 10 of 2026 starts on Monday 2 March.
	if days[0].DateString != "02.03" {
		t.Errorf("expected date 02.03, got %q", days[0].DateString)
	}
}

func TestNormalizeDays_AliasesAndDefaults(t *testing.T) {
	raw := decode(t, `{
		"Вторник": {
			"1": [{
				"prep_short_name": "Петров П.П.",
				"aud": 115,
				"group_name": "Группа ПИ/б-23-1-о (подгруппа 1)"
			}],
			"9": [{"discipline_name": "Факультатив", "teacher": " Сидоров ", "cabinet": "  "}]
		}
	}`)

	days := NormalizeDays(raw, 1, 2026)
	if len(days) != 1 || len(days[0].Lessons) != 2 {
		t.Fatalf("expected 1 day with 2 lessons, got %+v", days)
	}

	first := days[0].Lessons[0]
	if first.Subject != SubjectPlaceholder {
		t.Errorf("expected placeholder subject, got %q", first.Subject)
	}
	if first.Type != "" {
		t.Errorf("expected empty type, got %q", first.Type)
	}
	if first.Room != "115" {
		t.Errorf("expected numeric room to be kept, got %q", first.Room)
	}
	if first.Teacher != "Петров П.П." {
		t.Errorf("expected teacher from prep_short_name, got %q", first.Teacher)
	}
	if first.Group != "ПИ/б-23-1-о" {
		t.Errorf("expected extracted group code, got %q", first.Group)
	}

	second := days[0].Lessons[1]
	if second.Time != UnknownTime {
		t.Errorf("expected unknown time for slot 9, got %q", second.Time)
	}
	if second.Teacher != "Сидоров" || second.Room != "" {
		t.Errorf("unexpected teacher/room: %+v", second)
	}
}

func TestNormalizeDays_DayOrderAndOmission(t *testing.T) {
	raw := decode(t, `{
		"Воскресенье": {"1": [{"discipline_name": "Sun"}]},
		"Среда": {"2": [{"discipline_name": "Wed"}]},
		"Понедельник": {"1": [{"discipline_name": "Mon"}]},
		"Вторник": {"1": []},
		"Четверг": {},
		"Пятница": "closed",
		"Holiday": {"1": [{"discipline_name": "ignored"}]}
	}`)

	days := NormalizeDays(raw, 42, 2026)

	var names []string
	for _, d := range days {
		names = append(names, d.Day)
	}
	want := []string{"Понедельник", "Среда", "Воскресенье"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected days %v, got %v", want, names)
	}

	// Week 42 of 2026 runs from 12 to 18 October.
	dates := []string{days[0].DateString, days[1].DateString, days[2].DateString}
	if !reflect.DeepEqual(dates, []string{"12.10", "14.10", "18.10"}) {
		t.Errorf("unexpected dates: %v", dates)
	}
}

func TestNormalizeDays_NumericSlotOrder(t *testing.T) {
	raw := decode(t, `{
		"Понедельник": {
			"2": [{"discipline_name": "two"}],
			"10": [{"discipline_name": "ten"}],
			"x": [{"discipline_name": "other"}],
			"9": [{"discipline_name": "nine"}]
		}
	}`)

	days := NormalizeDays(raw, 5, 2026)

	var got []string
	for _, l := range days[0].Lessons {
		got = append(got, l.Subject)
	}
	want := []string{"two", "nine", "ten", "other"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNormalizeDays_WrongShape(t *testing.T) {
	for _, payload := range []string{`[1, 2, 3]`, `null`, `"text"`, `42`} {
		days := NormalizeDays(decode(t, payload), 1, 2026)
		if days == nil || len(days) != 0 {
			t.Errorf("expected empty non-nil schedule for %s, got %#v", payload, days)
		}
	}
}

func TestNormalizeDays_InvalidWeekKeepsLessons(t *testing.T) {
	raw := decode(t, `{"Понедельник": {"1": [{"discipline_name": "Mon"}]}}`)

	for _, week := range []int{0, 54, -3} {
		days := NormalizeDays(raw, week, 2026)
		if len(days) != 1 {
			t.Fatalf("week %d: expected 1 day, got %d", week, len(days))
		}
		if days[0].DateString != "" {
			t.Errorf("week %d: expected empty date, got %q", week, days[0].DateString)
		}
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	payload := `{
		"Пятница": {"4": [{"discipline_name": "A", "room_name": "1"}], "zz": [{"discipline_name": "B"}], "aa": [{"discipline_name": "C"}]},
		"Понедельник": {"1": [{"discipline_name": "D", "group": "ИВТ/б-22-1-о"}]}
	}`

	first := Normalize(decode(t, payload), 12, 2026)
	for i := 0; i < 20; i++ {
		again := Normalize(decode(t, payload), 12, 2026)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("normalization is not deterministic:\n%+v\n%+v", first, again)
		}
	}

	if first.Week != 12 || first.Year != 2026 {
		t.Errorf("unexpected week/year: %d/%d", first.Week, first.Year)
	}
}
