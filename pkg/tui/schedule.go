package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"sevsuctl/pkg/config"
	"sevsuctl/pkg/exporter"
	"sevsuctl/pkg/portal"
	"sevsuctl/pkg/schedule"
	"sevsuctl/pkg/timetable"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// WeekChoice is a week offered in the week picker.
type WeekChoice struct {
	Week int
	Year int
}

// WeekChoices lists the previous, current and following two ISO weeks around now.
func WeekChoices(now time.Time) []WeekChoice {
	var out []WeekChoice
	for offset := -1; offset <= 2; offset++ {
		week, year := schedule.CurrentWeek(now.AddDate(0, 0, 7*offset))
		out = append(out, WeekChoice{Week: week, Year: year})
	}
	return out
}

func weekLabel(c WeekChoice, current WeekChoice) string {
	label := fmt.Sprintf("Неделя %d, %d", c.Week, c.Year)
	if c == current {
		label += " (текущая)"
	}
	if monday, ok := schedule.WeekMonday(c.Year, c.Week); ok {
		label += fmt.Sprintf("  %s - %s", monday.Format("02.01"), monday.AddDate(0, 0, 6).Format("02.01"))
	}
	return label
}

// PickWeek asks which week to load. "Other" allows typing a week number.
func PickWeek(now time.Time) (WeekChoice, error) {
	choices := WeekChoices(now)
	current := choices[1]

	options := make([]huh.Option[int], 0, len(choices)+1)
	for i, c := range choices {
		options = append(options, huh.NewOption(weekLabel(c, current), i))
	}
	options = append(options, huh.NewOption("Другая неделя...", -1))

	selected := 1
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Выберите неделю").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return WeekChoice{}, err
	}
	if selected >= 0 {
		return choices[selected], nil
	}

	weekStr := strconv.Itoa(current.Week)
	yearStr := strconv.Itoa(current.Year)
	custom := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Номер недели (1-53)").Value(&weekStr).Validate(intIn(1, 53)),
			huh.NewInput().Title("Год").Value(&yearStr).Validate(intIn(1, 9999)),
		),
	).WithTheme(GetTheme())

	if err := custom.Run(); err != nil {
		return WeekChoice{}, err
	}

	week, _ := strconv.Atoi(weekStr)
	year, _ := strconv.Atoi(yearStr)
	return WeekChoice{Week: week, Year: year}, nil
}

func intIn(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("must be a number between %d and %d", lo, hi)
		}
		return nil
	}
}

// NewTimetableClient builds a client with the on-disk week cache.
func NewTimetableClient(a *App) *timetable.Client {
	return timetable.NewClient(a.Endpoints.ScheduleURL, a.Endpoints.SemesterCode, a.Endpoints.RequestTimeout,
		timetable.WithCache(timetable.NewDiskCache(a.Endpoints.CacheTTL)),
		timetable.WithLogger(a.Log),
	)
}

func (a *App) runSchedule(export bool) error {
	choice, err := PickWeek(time.Now())
	if err != nil {
		return err
	}

	client := NewTimetableClient(a)
	var week schedule.Week
	var fetchErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Загрузка недели %d...", choice.Week)).
		Action(func() {
			week, fetchErr = client.FetchWeek(context.Background(), a.token.TimetableToken, choice.Week, choice.Year)
		}).
		Run()

	if fetchErr != nil {
		var se *timetable.StatusError
		if errors.As(fetchErr, &se) {
			a.token = portal.SessionToken{}
			fmt.Println(errorStyle.Render("Токен истек, войдите заново."))
			return nil
		}
		return fmt.Errorf("failed to fetch schedule: %w", fetchErr)
	}

	if !export {
		fmt.Println(RenderWeek(week))
		return nil
	}
	return runExport(week)
}

func runExport(week schedule.Week) error {
	format := exporter.FormatICS
	if cfg, err := config.Load(); err == nil && cfg.ExportFormat != "" {
		format = cfg.ExportFormat
	}

	var outputFile string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Формат").
				Options(
					huh.NewOption("Календарь (.ics)", exporter.FormatICS),
					huh.NewOption("Таблица Excel (.xlsx)", exporter.FormatXLSX),
				).
				Value(&format),
			huh.NewInput().
				Title("Имя файла").
				Placeholder(exporter.FileName("", "", week)).
				Value(&outputFile),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	outputFile = exporter.FileName(outputFile, format, week)

	if err := exporter.WriteFile(outputFile, format, week); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nГотово! Неделя %d сохранена в %s", week.Week, outputFile)))
	return nil
}
