package timetable

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"sevsuctl/pkg/schedule"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"

// Client queries the timetable API with a session token.
type Client struct {
	endpoint   string
	semester   string
	httpClient *http.Client
	cache      Cache
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache stores normalized weeks in c.
func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.httpClient = h }
}

// NewClient creates a client for the StudentsRaspGet endpoint.
func NewClient(endpoint, semester string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		semester: semester,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type scheduleRequest struct {
	Session  string `json:"session"`
	Week     int    `json:"week"`
	Year     int    `json:"year"`
	Semester string `json:"semestr"`
}

// FetchRaw downloads the undecoded schedule payload for one week.
func (c *Client) FetchRaw(ctx context.Context, session string, week, year int) (any, error) {
	body, err := json.Marshal(scheduleRequest{
		Session:  session,
		Week:     week,
		Year:     year,
		Semester: c.semester,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	// The API only answers requests that look like they come from its own page.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if origin := originOf(c.endpoint); origin != "" {
		req.Header.Set("Origin", origin)
		req.Header.Set("Referer", origin+"/timetablestudent")
	}
	req.AddCookie(&http.Cookie{Name: "session", Value: session})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var raw any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedUpstreamData, err)
	}
	return raw, nil
}

// FetchWeek downloads and normalizes the schedule of one ISO week.
func (c *Client) FetchWeek(ctx context.Context, session string, week, year int) (schedule.Week, error) {
	key := c.cacheKey(session, week, year)
	if c.cache != nil {
		if w, ok := c.cache.Get(key); ok {
			c.log.Debug("schedule served from cache", "week", week, "year", year)
			return w, nil
		}
	}

	raw, err := c.FetchRaw(ctx, session, week, year)
	if err != nil {
		return schedule.Week{}, err
	}

	if _, ok := raw.(map[string]any); !ok {
		c.log.Warn("timetable payload is not a mapping", "week", week, "year", year, "type", fmt.Sprintf("%T", raw))
	}

	w := schedule.Normalize(raw, week, year)
	if c.cache != nil {
		c.cache.Set(key, w)
	}
	return w, nil
}

// cacheKey never contains the session itself.
func (c *Client) cacheKey(session string, week, year int) string {
	sum := sha256.Sum256([]byte(c.endpoint + "\x00" + c.semester + "\x00" + session))
	return fmt.Sprintf("%s-%d-%02d", hex.EncodeToString(sum[:8]), year, week)
}

func originOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
