package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sevsuctl/pkg/browser"
	"sevsuctl/pkg/config"
	"sevsuctl/pkg/login"
	"sevsuctl/pkg/portal"
	"sevsuctl/pkg/profile"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// PromptCredentials asks for whatever part of creds is missing. The saved
// login is offered as the default.
func PromptCredentials(creds portal.Credentials) (portal.Credentials, error) {
	if creds.Login != "" && creds.Password != "" {
		return creds, nil
	}

	if creds.Login == "" {
		if cfg, err := config.Load(); err == nil {
			creds.Login = cfg.Login
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Логин SevSU").
				Value(&creds.Login).
				Validate(notEmpty("login")),
			huh.NewInput().
				Title("Пароль").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(notEmpty("password")),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return portal.Credentials{}, err
	}
	creds.Login = strings.TrimSpace(creds.Login)
	return creds, nil
}

// RunLogin performs a full login behind a spinner.
func RunLogin(svc *login.Service, creds portal.Credentials) (login.Result, error) {
	var res login.Result
	var err error

	_ = spinner.New().
		Title("Вход через SSO, это может занять до минуты...").
		Action(func() {
			res, err = svc.Login(context.Background(), creds)
		}).
		Run()

	return res, err
}

// RunProfile scrapes the profile behind a spinner.
func RunProfile(svc *login.Service, creds portal.Credentials) (*profile.Profile, bool) {
	var p *profile.Profile
	var ok bool

	_ = spinner.New().
		Title("Загрузка профиля...").
		Action(func() {
			p, ok = svc.Profile(context.Background(), creds)
		}).
		Run()

	return p, ok
}

// ProblemMessage explains a soft login failure to the user.
func ProblemMessage(err error) string {
	switch {
	case errors.Is(err, browser.ErrFormNotFound):
		return "Форма входа SSO не загрузилась. Введите токен вручную."
	case errors.Is(err, browser.ErrAuthRejected):
		return "Вход не удался. Проверьте логин и пароль или введите токен вручную."
	case errors.Is(err, browser.ErrTokenNotFound):
		return "Сессия расписания не найдена. Введите токен вручную."
	default:
		return "Авто-вход не удался."
	}
}

func (a *App) service() *login.Service {
	return login.FromEndpoints(a.Endpoints, a.Log)
}

func (a *App) runLogin() error {
	creds, err := PromptCredentials(portal.Credentials{})
	if err != nil {
		return err
	}

	res, err := RunLogin(a.service(), creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if res.Profile != nil {
		fmt.Println(RenderProfile(res.Profile))
	}

	if !res.Authenticated() {
		fmt.Println(errorStyle.Render(ProblemMessage(res.Problem)))
		return nil
	}

	a.token = res.Token
	fmt.Println(accentStyle.Render("\n✅ Вход выполнен.\n"))
	return nil
}

func (a *App) runManualToken() error {
	var raw string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Токен сессии").
				Description("Значение cookie session с timetable.sevsu.ru, при желании через | токен IOT.").
				EchoMode(huh.EchoModePassword).
				Value(&raw).
				Validate(notEmpty("token")),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	a.token = portal.ParseSessionToken(raw)
	return nil
}

func (a *App) runProfile() error {
	creds, err := PromptCredentials(portal.Credentials{})
	if err != nil {
		return err
	}

	p, ok := RunProfile(a.service(), creds)
	if !ok {
		fmt.Println(errorStyle.Render("Профиль не найден"))
		return nil
	}
	fmt.Println(RenderProfile(p))
	return nil
}
