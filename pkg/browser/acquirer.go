package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"sevsuctl/pkg/portal"
)

// SSO form selectors.
const (
	usernameSelector = `input[name="username"]`
	passwordSelector = `input[name="password"]`
	submitSelector   = `#kc-login`
)

const urlPollInterval = 250 * time.Millisecond

// cookieReadTimeout bounds the cookie read that follows a successful login.
const cookieReadTimeout = 5 * time.Second

// Config describes the pages the acquirer walks through.
type Config struct {
	// LoginURL is the timetable page that redirects to the SSO form.
	LoginURL string
	// AuthenticatedPattern is a substring of the URL once login succeeded.
	AuthenticatedPattern string
	// SessionCookie names the cookie that carries the timetable session.
	SessionCookie string

	// SecondServiceURL is the IOT app shell. Empty skips bearer capture.
	SecondServiceURL string
	// SecondServiceReady is the selector of the app shell's root element.
	SecondServiceReady string
	// SecondServiceAPIHost and SecondServiceAPIPath select the API requests
	// whose Authorization header carries the bearer token.
	SecondServiceAPIHost string
	SecondServiceAPIPath string

	FormTimeout          time.Duration
	AuthTimeout          time.Duration
	SecondServiceTimeout time.Duration

	// SessionSettle is how long to wait after login before reading cookies.
	SessionSettle time.Duration
	// CaptureWindow is how long to watch for API requests once the second
	// service's shell is visible.
	CaptureWindow time.Duration
}

func (c Config) withDefaults() Config {
	if c.AuthenticatedPattern == "" {
		c.AuthenticatedPattern = "timetablestudent"
	}
	if c.SessionCookie == "" {
		c.SessionCookie = "session"
	}
	if c.SecondServiceReady == "" {
		c.SecondServiceReady = "#app"
	}
	if c.SecondServiceAPIPath == "" {
		c.SecondServiceAPIPath = "api"
	}
	if c.FormTimeout <= 0 {
		c.FormTimeout = 20 * time.Second
	}
	if c.AuthTimeout <= 0 {
		c.AuthTimeout = 20 * time.Second
	}
	if c.SecondServiceTimeout <= 0 {
		c.SecondServiceTimeout = 15 * time.Second
	}
	if c.CaptureWindow <= 0 {
		c.CaptureWindow = 2 * time.Second
	}
	return c
}

// Session is the outcome of one acquisition. Problem holds the reason no
// timetable token was obtained, usually wrapping ErrFormNotFound,
// ErrAuthRejected or ErrTokenNotFound.
type Session struct {
	Token   portal.SessionToken
	Problem error
}

// Acquirer logs into the SSO portal with a real browser.
type Acquirer struct {
	cfg      Config
	launcher Launcher
	log      *slog.Logger
}

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Acquirer) { a.log = l }
}

// WithLauncher replaces the headless Chrome launcher.
func WithLauncher(l Launcher) Option {
	return func(a *Acquirer) { a.launcher = l }
}

// NewAcquirer creates an Acquirer. Without WithLauncher it uses headless Chrome.
func NewAcquirer(cfg Config, opts ...Option) *Acquirer {
	a := &Acquirer{
		cfg:      cfg.withDefaults(),
		launcher: ChromeLauncher{},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire logs in with creds and returns the session token. Only a browser
// that fails to start is reported as an error; every other failure comes
// back as a Session without a timetable token and with Problem set.
func (a *Acquirer) Acquire(ctx context.Context, creds portal.Credentials) (Session, error) {
	drv, err := a.launcher.Launch(ctx)
	if err != nil {
		if !errors.Is(err, ErrLaunch) {
			err = fmt.Errorf("%w: %v", ErrLaunch, err)
		}
		return Session{}, err
	}
	defer func() {
		if err := drv.Close(); err != nil {
			a.log.Debug("browser shutdown", "err", err)
		}
	}()

	var s Session

	a.log.Info("logging into timetable", "login", creds.Login)
	s.Problem = guard(func() error {
		token, err := a.timetableToken(ctx, drv, creds)
		s.Token.TimetableToken = token
		return err
	})
	if s.Problem != nil {
		a.log.Warn("timetable login failed", "login", creds.Login, "err", s.Problem)
	} else {
		a.log.Info("timetable session obtained", "login", creds.Login)
	}

	// Only a missing SSO form skips the second service; a late redirect may
	// still have left a session behind.
	if a.cfg.SecondServiceURL == "" || errors.Is(s.Problem, ErrFormNotFound) {
		return s, nil
	}

	err = guard(func() error {
		token, err := a.bearerToken(ctx, drv)
		s.Token.IOTToken = token
		return err
	})
	if err != nil {
		a.log.Warn("IOT token not captured", "err", err)
	} else {
		a.log.Info("IOT token captured")
	}

	return s, nil
}

func (a *Acquirer) timetableToken(ctx context.Context, drv Driver, creds portal.Credentials) (string, error) {
	formCtx, cancel := context.WithTimeout(ctx, a.cfg.FormTimeout)
	defer cancel()

	if err := drv.Navigate(formCtx, a.cfg.LoginURL); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFormNotFound, err)
	}
	if err := drv.WaitReady(formCtx, usernameSelector); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFormNotFound, err)
	}
	if err := drv.Type(formCtx, usernameSelector, creds.Login); err != nil {
		return "", fmt.Errorf("%w: username: %v", ErrFormNotFound, err)
	}
	if err := drv.Type(formCtx, passwordSelector, creds.Password); err != nil {
		return "", fmt.Errorf("%w: password: %v", ErrFormNotFound, err)
	}
	if err := drv.Click(formCtx, submitSelector); err != nil {
		return "", fmt.Errorf("%w: submit: %v", ErrFormNotFound, err)
	}

	authCtx, cancelAuth := context.WithTimeout(ctx, a.cfg.AuthTimeout)
	err := waitForURL(authCtx, drv, a.cfg.AuthenticatedPattern)
	cancelAuth()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthRejected, err)
	}

	// AuthTimeout bounds only the redirect.
	if err := sleep(ctx, a.cfg.SessionSettle); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenNotFound, err)
	}

	cookieCtx, cancelCookies := context.WithTimeout(ctx, cookieReadTimeout)
	defer cancelCookies()

	cookies, err := drv.Cookies(cookieCtx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenNotFound, err)
	}
	for _, c := range cookies {
		if c.Name == a.cfg.SessionCookie {
			if c.Value == "" {
				break
			}
			return c.Value, nil
		}
	}
	return "", ErrTokenNotFound
}

// bearerToken opens the second service and watches its API traffic for an
// Authorization header.
func (a *Acquirer) bearerToken(ctx context.Context, drv Driver) (string, error) {
	stepCtx, cancel := context.WithTimeout(ctx, a.cfg.SecondServiceTimeout)
	defer cancel()

	if err := drv.Navigate(stepCtx, a.cfg.SecondServiceURL); err != nil {
		return "", err
	}
	if err := drv.WaitVisible(stepCtx, a.cfg.SecondServiceReady); err != nil {
		return "", err
	}

	find := func() (string, bool) {
		return BearerToken(drv.Requests().Matching(a.cfg.SecondServiceAPIHost, a.cfg.SecondServiceAPIPath))
	}

	captureCtx, cancelCapture := context.WithTimeout(stepCtx, a.cfg.CaptureWindow)
	defer cancelCapture()

	ticker := time.NewTicker(urlPollInterval)
	defer ticker.Stop()
	for {
		if token, ok := find(); ok {
			return token, nil
		}
		select {
		case <-captureCtx.Done():
			// One last look at whatever arrived during the final tick.
			if token, ok := find(); ok {
				return token, nil
			}
			return "", errors.New("no bearer token in captured requests")
		case <-ticker.C:
		}
	}
}

// waitForURL polls the current URL until it contains pattern.
func waitForURL(ctx context.Context, drv Driver, pattern string) error {
	ticker := time.NewTicker(urlPollInterval)
	defer ticker.Stop()

	var last string
	for {
		if u, err := drv.URL(ctx); err == nil {
			last = u
			if containsPattern(u, pattern) {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("still on %q: %w", last, ctx.Err())
		case <-ticker.C:
		}
	}
}

func containsPattern(u, pattern string) bool {
	return pattern != "" && strings.Contains(u, pattern)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// guard runs a login step and turns a panic inside it into an error.
func guard(step func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("browser step panicked: %v", r)
		}
	}()
	return step()
}
