package tui

import (
	"fmt"
	"regexp"
	"strings"

	"sevsuctl/pkg/config"
	"sevsuctl/pkg/exporter"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var semesterPattern = regexp.MustCompile(`^\d{2}-\d{2}$`)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Настройки").
					Options(
						huh.NewOption("Цвет интерфейса", "theme"),
						huh.NewOption("Логин по умолчанию", "login"),
						huh.NewOption("Код семестра", "semester"),
						huh.NewOption("Формат экспорта", "format"),
						huh.NewOption("Показать настройки", "view"),
						huh.NewOption("Назад", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "login":
			err = runSetTextTUI(cfg, "Логин SevSU", "", &cfg.Login, nil)
		case "semester":
			err = runSetTextTUI(cfg, "Код семестра", "Например 25-26. Пусто: вычислять по дате.", &cfg.SemesterCode, ValidateSemester)
		case "format":
			err = runSetFormatTUI(cfg)
		case "view":
			fmt.Println(DescribeConfig(cfg))
		}

		if err != nil {
			return err
		}
	}
}

// ValidateSemester accepts an empty value or a "yy-yy" code.
func ValidateSemester(s string) error {
	s = strings.TrimSpace(s)
	if s != "" && !semesterPattern.MatchString(s) {
		return fmt.Errorf("semester must look like 25-26")
	}
	return nil
}

// DescribeConfig renders the saved settings.
func DescribeConfig(cfg *config.AppConfig) string {
	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}

	var b strings.Builder
	b.WriteString(accentStyle.Render("\n--- Текущие настройки (~/.sevsuctl.json) ---"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Логин: %s\n", orDefault(cfg.Login, "не задан"))
	fmt.Fprintf(&b, "Семестр: %s\n", orDefault(cfg.SemesterCode, "по дате"))
	fmt.Fprintf(&b, "Формат экспорта: %s\n", orDefault(cfg.ExportFormat, exporter.FormatICS))
	fmt.Fprintf(&b, "Цвет: %s\n", orDefault(cfg.AccentColor, defaultAccent))
	return b.String()
}

func runSetTextTUI(cfg *config.AppConfig, title, description string, dst *string, validate func(string) error) error {
	value := *dst

	input := huh.NewInput().
		Title(title).
		Description(description).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}

	if err := huh.NewForm(huh.NewGroup(input)).WithTheme(GetTheme()).Run(); err != nil {
		return err
	}

	*dst = strings.TrimSpace(value)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Сохранено.\n"))
	return nil
}

func runSetFormatTUI(cfg *config.AppConfig) error {
	selected := cfg.ExportFormat
	if selected == "" {
		selected = exporter.FormatICS
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Формат экспорта по умолчанию").
				Options(
					huh.NewOption("Календарь (.ics)", exporter.FormatICS),
					huh.NewOption("Таблица Excel (.xlsx)", exporter.FormatXLSX),
				).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.ExportFormat = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Формат экспорта: %s\n", selected)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

// ValidateHex accepts "#RRGGBB".
func ValidateHex(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	return nil
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Цвет интерфейса sevsuctl").
				Options(
					huh.NewOption(fmt.Sprintf("%s Синий СевГУ", colorBlock(defaultAccent)), defaultAccent),
					huh.NewOption(fmt.Sprintf("%s Морская волна", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Розовый", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Зелёный", colorBlock("42")), "42"),
					huh.NewOption("✨ Свой HEX", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("HEX-код цвета").
					Description("Например #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(ValidateHex),
			),
		).WithTheme(GetCustomTheme(defaultAccent))

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(GetCustomTheme(cfg.AccentColor).Focused.Title.Render("\n✅ Цвет сохранён.\n"))
	return nil
}
