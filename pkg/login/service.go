// Package login combines the independent SevSU login paths: the browser
// session for the timetable, the scraped Moodle profile and the IOT rating.
package login

import (
	"context"
	"io"
	"log/slog"
	"time"

	"sevsuctl/pkg/browser"
	"sevsuctl/pkg/config"
	"sevsuctl/pkg/iot"
	"sevsuctl/pkg/portal"
	"sevsuctl/pkg/profile"
)

// ProfileFetcher scrapes the student profile.
type ProfileFetcher interface {
	Fetch(ctx context.Context, creds portal.Credentials) (*profile.Profile, bool)
}

// SessionAcquirer obtains the session token through SSO.
type SessionAcquirer interface {
	Acquire(ctx context.Context, creds portal.Credentials) (browser.Session, error)
}

// RatingFetcher reads the rating with an IOT bearer token.
type RatingFetcher interface {
	FetchRating(ctx context.Context, bearer string) (float64, error)
}

// Result is the outcome of a login. Profile may be nil; Problem explains a
// missing timetable token.
type Result struct {
	Profile *profile.Profile
	Token   portal.SessionToken
	Problem error
}

// Authenticated reports whether a timetable session was obtained.
func (r Result) Authenticated() bool {
	return !r.Token.Empty()
}

// Service runs a full login.
type Service struct {
	profiles ProfileFetcher
	sessions SessionAcquirer
	ratings  RatingFetcher
	log      *slog.Logger
}

// NewService wires the login paths together. ratings may be nil.
func NewService(profiles ProfileFetcher, sessions SessionAcquirer, ratings RatingFetcher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		profiles: profiles,
		sessions: sessions,
		ratings:  ratings,
		log:      log,
	}
}

// FromEndpoints builds a Service backed by headless Chrome and the real portals.
func FromEndpoints(e config.Endpoints, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return NewService(
		profile.NewScraper(e.PortalLoginURL, e.RequestTimeout, profile.WithLogger(log)),
		browser.NewAcquirer(BrowserConfig(e),
			browser.WithLauncher(browser.ChromeLauncher{ExecPath: e.ChromePath}),
			browser.WithLogger(log),
		),
		iot.NewClient(e.SecondServiceProfileURL, e.RequestTimeout),
		log,
	)
}

// BrowserConfig maps the endpoints onto the acquirer's settings.
func BrowserConfig(e config.Endpoints) browser.Config {
	return browser.Config{
		LoginURL:             e.LoginURL,
		SecondServiceURL:     e.SecondServiceURL,
		SecondServiceAPIHost: e.SecondServiceAPIHost,
		FormTimeout:          e.FormTimeout,
		AuthTimeout:          e.AuthTimeout,
		SecondServiceTimeout: e.SecondServiceTimeout,
		SessionSettle:        time.Second,
		CaptureWindow:        2 * time.Second,
	}
}

// Login scrapes the profile and acquires the session independently. A missing
// profile never blocks the login. Only a browser that fails to start is
// returned as an error.
func (s *Service) Login(ctx context.Context, creds portal.Credentials) (Result, error) {
	var res Result

	if s.profiles != nil {
		if p, ok := s.profiles.Fetch(ctx, creds); ok {
			res.Profile = p
		} else {
			s.log.Info("profile unavailable, continuing without it", "login", creds.Login)
		}
	}

	session, err := s.sessions.Acquire(ctx, creds)
	if err != nil {
		return res, err
	}
	res.Token = session.Token
	res.Problem = session.Problem

	if res.Profile != nil && res.Token.IOTToken != "" && s.ratings != nil {
		rating, err := s.ratings.FetchRating(ctx, res.Token.IOTToken)
		if err != nil {
			s.log.Warn("rating unavailable", "err", err)
		} else {
			res.Profile.Rating = rating
		}
	}

	return res, nil
}

// Profile runs only the profile scrape.
func (s *Service) Profile(ctx context.Context, creds portal.Credentials) (*profile.Profile, bool) {
	if s.profiles == nil {
		return nil, false
	}
	return s.profiles.Fetch(ctx, creds)
}
