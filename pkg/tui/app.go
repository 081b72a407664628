package tui

import (
	"io"
	"log/slog"

	"sevsuctl/pkg/config"
	"sevsuctl/pkg/portal"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// defaultAccent is SevSU blue.
const defaultAccent = "33"

var (
	// These act as fallbacks initially, but should ideally be dynamically instantiated by GetTheme()
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// GetTheme loads the user's saved accent color and constructs the UI theme.
func GetTheme() *huh.Theme {
	cfg, err := config.Load()
	baseColor := defaultAccent

	if err == nil && cfg != nil && cfg.AccentColor != "" {
		baseColor = cfg.AccentColor
	}

	// Update the global lipgloss accent so manual CLI print statements also receive the color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	return GetCustomTheme(baseColor)
}

// GetCustomTheme returns a new huh.Theme instantiated with the provided lipgloss color string.
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "235"})
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	// Softer borders for unfocused elements
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// App is the state kept across menu screens for one interactive session.
type App struct {
	Endpoints config.Endpoints
	Log       *slog.Logger

	token portal.SessionToken
}

// NewApp prepares an interactive session.
func NewApp(e config.Endpoints, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{Endpoints: e, Log: log}
}

// Run launches the main menu and loops until the user quits.
func (a *App) Run() error {
	for {
		var action string

		options := []huh.Option[string]{
			huh.NewOption("🔑 Войти через SSO", "login"),
			huh.NewOption("🔤 Ввести токен вручную", "token"),
		}
		if !a.token.Empty() {
			options = append(options,
				huh.NewOption("📅 Расписание на неделю", "schedule"),
				huh.NewOption("📤 Экспорт недели", "export"),
			)
		}
		options = append(options,
			huh.NewOption("👤 Профиль", "profile"),
			huh.NewOption("⚙️ Настройки", "config"),
			huh.NewOption("Выход", "quit"),
		)

		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Что сделать?").
					Options(options...).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		var err error
		switch action {
		case "login":
			err = a.runLogin()
		case "token":
			err = a.runManualToken()
		case "schedule":
			err = a.runSchedule(false)
		case "export":
			err = a.runSchedule(true)
		case "profile":
			err = a.runProfile()
		case "config":
			err = RunConfigTUI()
		case "quit":
			return nil
		}
		if err != nil {
			return err
		}
	}
}
