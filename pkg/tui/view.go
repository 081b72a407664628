package tui

import (
	"fmt"
	"strings"

	"sevsuctl/pkg/profile"
	"sevsuctl/pkg/schedule"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	dayStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	profileStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)

	titleCaser = cases.Title(language.Russian)
)

// RenderWeek formats a week for the terminal. Days without lessons are
// listed as free.
func RenderWeek(w schedule.Week) string {
	var b strings.Builder

	b.WriteString(accentStyle.Bold(true).Render(fmt.Sprintf("Неделя %d, %d", w.Week, w.Year)))
	b.WriteString("\n")

	for _, day := range w.Days {
		header := day.Day
		if day.DateString != "" {
			header = fmt.Sprintf("%s, %s", day.Day, day.DateString)
		}
		b.WriteString("\n")
		b.WriteString(dayStyle.Render(header))
		b.WriteString("\n")

		if len(day.Lessons) == 0 {
			b.WriteString(emptyStyle.Render("  Занятий нет"))
			b.WriteString("\n")
			continue
		}

		for _, l := range day.Lessons {
			subject := l.Subject
			if l.Type != "" {
				subject = fmt.Sprintf("%s (%s)", subject, titleCaser.String(l.Type))
			}
			fmt.Fprintf(&b, "  %s  %s\n", timeStyle.Render(l.Time), subject)

			if details := lessonDetails(l); details != "" {
				b.WriteString(detailStyle.Render("    " + details))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func lessonDetails(l schedule.Lesson) string {
	var parts []string
	if l.Room != "" {
		parts = append(parts, "ауд. "+l.Room)
	}
	if l.Teacher != "" {
		parts = append(parts, l.Teacher)
	}
	if l.Group != "" {
		parts = append(parts, l.Group)
	}
	return strings.Join(parts, " · ")
}

// RenderProfile formats a scraped profile as a card.
func RenderProfile(p *profile.Profile) string {
	if p == nil {
		return errorStyle.Render("Профиль недоступен")
	}

	lines := []string{
		accentStyle.Bold(true).Render(fmt.Sprintf("[%s] %s", p.AvatarInitials, p.FullName)),
		fmt.Sprintf("Группа:  %s", p.Group),
		fmt.Sprintf("Курс:    %s", p.Course),
		fmt.Sprintf("Рейтинг: %g", p.Rating),
	}
	return profileStyle.Render(strings.Join(lines, "\n"))
}
