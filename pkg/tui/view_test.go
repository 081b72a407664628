package tui

import (
	"strings"
	"testing"

	"sevsuctl/pkg/profile"
	"sevsuctl/pkg/schedule"
)

func TestRenderWeek(t *testing.T) {
	w := schedule.Week{
		Week: 10,
		Year: 2026,
		Days: []schedule.Day{
			{
				Day:        "Понедельник",
				DateString: "02.03",
				Lessons: []schedule.Lesson{
					{Time: "08:30 - 10:00", Subject: "Физика", Type: "лекция", Room: "А-101", Teacher: "Петров П.П."},
				},
			},
			{Day: "Вторник", DateString: "03.03"},
		},
	}

	out := RenderWeek(w)

	for _, want := range []string{
		"Неделя 10, 2026",
		"Понедельник, 02.03",
		"08:30 - 10:00",
		"Физика (Лекция)",
		"ауд. А-101 · Петров П.П.",
		"Занятий нет",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderWeek_NoDate(t *testing.T) {
	out := RenderWeek(schedule.Week{Days: []schedule.Day{{Day: "Среда"}}})
	if strings.Contains(out, "Среда,") {
		t.Errorf("expected no date suffix, got:\n%s", out)
	}
}

func TestRenderProfile(t *testing.T) {
	out := RenderProfile(&profile.Profile{
		FullName:       "Иванов Иван",
		Group:          "ИВТ/б-22-1-о",
		Course:         "3 курс",
		Rating:         87.5,
		AvatarInitials: "ИИ",
	})

	for _, want := range []string{"[ИИ] Иванов Иван", "ИВТ/б-22-1-о", "3 курс", "87.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected profile card to contain %q, got:\n%s", want, out)
		}
	}

	if !strings.Contains(RenderProfile(nil), "недоступен") {
		t.Errorf("expected a placeholder for a missing profile")
	}
}
