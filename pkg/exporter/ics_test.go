package exporter

import (
	"bytes"
	"strings"
	"testing"

	"sevsuctl/pkg/schedule"
)

func sampleWeek() schedule.Week {
	return schedule.Week{
		Week: 10,
		Year: 2026,
		Days: []schedule.Day{
			{
				Day:        "Среда",
				DateString: "04.03",
				Lessons: []schedule.Lesson{
					{
						Time:    "08:30 - 10:00",
						Subject: "Линейная алгебра",
						Type:    "Лекция",
						Room:    "А-301",
						Teacher: "Петров П.П.",
						Group:   "ИВТ/б-22-1-о",
					},
					{
						Time:    schedule.UnknownTime,
						Subject: "Физкультура",
					},
				},
			},
		},
	}
}

func TestGenerateICS(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateICS(sampleWeek(), &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "SUMMARY:Линейная алгебра") {
		t.Errorf("Expected ICS to contain lesson summary, got: \n%s", output)
	}

	if !strings.Contains(output, "LOCATION:А-301") {
		t.Errorf("Expected ICS to contain room location")
	}

	// Wednesday of week 10/2026 is 04-Mar-2026; 08:30 Moscow time is 05:30 UTC.
	if !strings.Contains(output, "DTSTART:20260304T053000Z") {
		t.Errorf("Expected start time string in ICS (should be UTC), got: \n%s", output)
	}

	if strings.Contains(output, "Физкультура") {
		t.Errorf("Lessons with unknown time must be skipped")
	}
}

func TestGenerateICS_StableUIDs(t *testing.T) {
	var a, b bytes.Buffer
	if err := GenerateICS(sampleWeek(), &a); err != nil {
		t.Fatal(err)
	}
	if err := GenerateICS(sampleWeek(), &b); err != nil {
		t.Fatal(err)
	}

	uid := func(s string) string {
		for _, line := range strings.Split(s, "\n") {
			if strings.HasPrefix(line, "UID:") {
				return strings.TrimSpace(line)
			}
		}
		return ""
	}

	if uid(a.String()) == "" || uid(a.String()) != uid(b.String()) {
		t.Errorf("expected identical UIDs, got %q and %q", uid(a.String()), uid(b.String()))
	}
}

func TestGenerateICS_InvalidWeek(t *testing.T) {
	week := sampleWeek()
	week.Week = 0

	var buf bytes.Buffer
	if err := GenerateICS(week, &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}
	if strings.Contains(buf.String(), "BEGIN:VEVENT") {
		t.Errorf("expected no events for an invalid week")
	}
}
