package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sevsuctl/pkg/group"
	"sevsuctl/pkg/portal"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	ssoLinkMarker     = "oauth2/login.php"
	profileLinkMarker = "user/profile.php"
	groupLabelMarker  = "Групп"
)

var whitespace = regexp.MustCompile(`\s+`)

// Scraper walks the Moodle SSO redirect chain with a plain HTTP client to read
// the student's name and group. It never drives a browser.
type Scraper struct {
	loginURL string
	timeout  time.Duration
	log      *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scraper) { s.log = l }
}

// NewScraper creates a scraper for the portal whose login page is loginURL.
func NewScraper(loginURL string, timeout time.Duration, opts ...Option) *Scraper {
	s := &Scraper{
		loginURL: loginURL,
		timeout:  timeout,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch logs into the portal and scrapes the profile. It reports false on any
// failure, including wrong credentials; callers treat the profile as optional.
func (s *Scraper) Fetch(ctx context.Context, creds portal.Credentials) (*Profile, bool) {
	p, err := s.fetch(ctx, creds)
	if err != nil {
		s.log.Debug("profile scrape failed", "login", creds.Login, "err", err)
		return nil, false
	}
	return p, true
}

// session is the per-call browsing state: one cookie jar, one client.
type session struct {
	ctx    context.Context
	client *http.Client
}

func (s *Scraper) newSession(ctx context.Context) (*session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &session{
		ctx:    ctx,
		client: &http.Client{Jar: jar, Timeout: s.timeout},
	}, nil
}

func (s *Scraper) fetch(ctx context.Context, creds portal.Credentials) (*Profile, error) {
	home, err := url.Parse(s.loginURL)
	if err != nil {
		return nil, fmt.Errorf("invalid portal url: %w", err)
	}

	sess, err := s.newSession(ctx)
	if err != nil {
		return nil, err
	}

	landing, _, err := sess.get(s.loginURL)
	if err != nil {
		return nil, err
	}
	ssoLink, ok := findLink(landing, ssoLinkMarker)
	if !ok {
		return nil, fmt.Errorf("no SSO link on %s", s.loginURL)
	}

	loginPage, loginURL, err := sess.get(ssoLink)
	if err != nil {
		return nil, err
	}
	action, payload, err := loginForm(loginPage, loginURL)
	if err != nil {
		return nil, err
	}
	payload.Set("username", creds.Login)
	payload.Set("password", creds.Password)

	dashboard, landedOn, err := sess.post(action, payload)
	if err != nil {
		return nil, err
	}
	if landedOn.Host != home.Host {
		return nil, fmt.Errorf("login ended on %s, credentials rejected", landedOn.Host)
	}

	p := &Profile{
		FullName: displayName(dashboard),
		Group:    group.NotFound,
	}

	if link, ok := findLink(dashboard, profileLinkMarker); ok {
		if page, _, err := sess.get(link); err == nil {
			p.Group = pageGroup(page)
		} else {
			s.log.Debug("profile page unavailable", "err", err)
		}
	}

	p.Course = group.CalculateCourse(p.Group)
	p.AvatarInitials = Initials(p.FullName)
	return p, nil
}

func (sess *session) get(rawURL string) (*goquery.Document, *url.URL, error) {
	req, err := http.NewRequestWithContext(sess.ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, err
	}
	return sess.do(req)
}

func (sess *session) post(rawURL string, form url.Values) (*goquery.Document, *url.URL, error) {
	req, err := http.NewRequestWithContext(sess.ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return sess.do(req)
}

// do sends the request and parses the page the redirect chain ends on.
func (sess *session) do(req *http.Request) (*goquery.Document, *url.URL, error) {
	req.Header.Set("User-Agent", userAgent)

	resp, err := sess.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, resp.Request.URL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	// Relative links on the page resolve against where we actually landed.
	doc.Url = resp.Request.URL
	return doc, resp.Request.URL, nil
}

// findLink returns the absolute href of the first anchor containing marker.
func findLink(doc *goquery.Document, marker string) (string, bool) {
	var link string
	doc.Find("a[href]").EachWithBreak(func(i int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.Contains(href, marker) {
			link = resolve(doc.Url, href)
			return false
		}
		return true
	})
	return link, link != ""
}

// loginForm collects every named input of the login form, hidden anti-forgery
// fields included, and the URL it submits to.
func loginForm(doc *goquery.Document, pageURL *url.URL) (string, url.Values, error) {
	form := doc.Find("form").First()
	if form.Length() == 0 {
		return "", nil, fmt.Errorf("no login form on %s", pageURL)
	}

	payload := url.Values{}
	form.Find("input").Each(func(i int, in *goquery.Selection) {
		name, ok := in.Attr("name")
		if !ok || name == "" {
			return
		}
		value, _ := in.Attr("value")
		payload.Set(name, value)
	})

	action, _ := form.Attr("action")
	if action == "" {
		return pageURL.String(), payload, nil
	}
	return resolve(pageURL, action), payload, nil
}

func displayName(doc *goquery.Document) string {
	span := doc.Find("div.usermenu span.usertext").First()
	if span.Length() == 0 {
		return DefaultName
	}
	name := strings.TrimSpace(whitespace.ReplaceAllString(span.Text(), " "))
	if name == "" {
		return DefaultName
	}
	return name
}

// pageGroup reads the group from the profile page. The value next to a
// "Группа" label is preferred; otherwise the whole page is searched for a
// group code.
func pageGroup(doc *goquery.Document) string {
	var labelled string
	doc.Find("dt, th").EachWithBreak(func(i int, label *goquery.Selection) bool {
		if !strings.Contains(label.Text(), groupLabelMarker) {
			return true
		}
		value := label.NextAllFiltered("dd, td").First()
		if value.Length() == 0 {
			return true
		}
		labelled = strings.TrimSpace(value.Text())
		return false
	})

	if labelled != "" {
		return group.ExtractCode(labelled)
	}
	if code, ok := group.FindCode(doc.Text()); ok {
		return code
	}
	return group.NotFound
}

// Initials returns the first two letters of name, upper-cased.
func Initials(name string) string {
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil || base == nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
