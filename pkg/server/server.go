// Package server exposes login, profile and schedule lookups over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"sevsuctl/pkg/browser"
	"sevsuctl/pkg/login"
	"sevsuctl/pkg/portal"
	"sevsuctl/pkg/profile"
	"sevsuctl/pkg/schedule"
	"sevsuctl/pkg/timetable"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// Authenticator performs portal logins.
type Authenticator interface {
	Login(ctx context.Context, creds portal.Credentials) (login.Result, error)
	Profile(ctx context.Context, creds portal.Credentials) (*profile.Profile, bool)
}

// Timetable fetches normalized weeks.
type Timetable interface {
	FetchWeek(ctx context.Context, session string, week, year int) (schedule.Week, error)
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ScheduleRequest struct {
	Token string `json:"token" binding:"required"`
	Week  int    `json:"week"`
	Year  int    `json:"year"`
}

// ErrorResponse mirrors the {"detail": ...} error body clients expect.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

const (
	msgAutoLoginFailed = "Авто-вход не удался."
	msgTokenExpired    = "Токен истек"
	msgProfileNotFound = "Профиль не найден"
)

type Server struct {
	auth Authenticator
	tt   Timetable
	log  *slog.Logger
	now  func() time.Time
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// New creates a server.
func New(auth Authenticator, tt Timetable, opts ...Option) *Server {
	s := &Server{
		auth: auth,
		tt:   tt,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine builds the gin router.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(s.requestLogger())
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
				"time":   s.now(),
			})
		})
		api.POST("/login", s.handleLogin)
		api.POST("/profile", s.handleProfile)
		api.POST("/schedule", s.handleSchedule)
	}
	return r
}

// Handler is the engine wrapped with CORS that allows any origin with credentials.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowOriginFunc:  func(string) bool { return true },
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(s.Engine())
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	res, err := s.auth.Login(c.Request.Context(), portal.Credentials{Login: req.Login, Password: req.Password})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, browser.ErrLaunch) {
			status = http.StatusBadGateway
		}
		s.log.Error("login failed", "err", err)
		c.JSON(status, ErrorResponse{Detail: err.Error()})
		return
	}

	if !res.Authenticated() {
		s.log.Info("automatic login failed", "login", req.Login, "reason", res.Problem)
		c.JSON(http.StatusOK, gin.H{
			"manual_token_required": true,
			"message":               msgAutoLoginFailed,
			"partial_user":          res.Profile,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  res.Profile,
		"token": res.Token.String(),
	})
}

func (s *Server) handleProfile(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	p, ok := s.auth.Profile(c.Request.Context(), portal.Credentials{Login: req.Login, Password: req.Password})
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: msgProfileNotFound})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	week, year := req.Week, req.Year
	if week == 0 || year == 0 {
		cw, cy := schedule.CurrentWeek(s.now())
		if week == 0 {
			week = cw
		}
		if year == 0 {
			year = cy
		}
	}

	token := portal.ParseSessionToken(req.Token)
	w, err := s.tt.FetchWeek(c.Request.Context(), token.TimetableToken, week, year)
	if err != nil {
		var se *timetable.StatusError
		if errors.As(err, &se) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: msgTokenExpired})
			return
		}
		s.log.Error("schedule fetch failed", "week", week, "year", year, "err", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedule": w.Days,
		"week":     w.Week,
		"year":     w.Year,
	})
}
