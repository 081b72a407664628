package browser

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Request is an outgoing request observed in the browser.
type Request struct {
	URL     string
	Headers http.Header
}

// RequestLog gives access to the requests a page has sent so far.
type RequestLog interface {
	// Matching returns requests whose host contains host and whose path
	// contains path, in the order they were sent.
	Matching(host, path string) []Request
}

// Recorder is an in-memory RequestLog. Browser events may report the URL
// and the final headers of a request separately; both are merged by id.
type Recorder struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*Request
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{entries: make(map[string]*Request)}
}

// Record notes a request being sent.
func (r *Recorder) Record(id, rawURL string, headers map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.entry(id)
	if e.URL == "" {
		e.URL = rawURL
	}
	addHeaders(e.Headers, headers)
}

// Merge adds headers reported for a request after it was recorded.
func (r *Recorder) Merge(id string, headers map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	addHeaders(r.entry(id).Headers, headers)
}

func (r *Recorder) entry(id string) *Request {
	e, ok := r.entries[id]
	if !ok {
		e = &Request{Headers: http.Header{}}
		r.entries[id] = e
		r.order = append(r.order, id)
	}
	return e
}

// Matching implements RequestLog.
func (r *Recorder) Matching(host, path string) []Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Request
	for _, id := range r.order {
		e := r.entries[id]
		u, err := url.Parse(e.URL)
		if e.URL == "" || err != nil {
			continue
		}
		if strings.Contains(u.Host, host) && strings.Contains(u.Path, path) {
			out = append(out, Request{URL: e.URL, Headers: e.Headers.Clone()})
		}
	}
	return out
}

func addHeaders(dst http.Header, src map[string]any) {
	for k, v := range src {
		dst.Set(k, fmt.Sprint(v))
	}
}

// BearerToken returns the token of the first request carrying an
// "Authorization: Bearer" header.
func BearerToken(reqs []Request) (string, bool) {
	for _, req := range reqs {
		auth := strings.TrimSpace(req.Headers.Get("Authorization"))
		if len(auth) < len("Bearer ") || !strings.EqualFold(auth[:len("Bearer ")], "Bearer ") {
			continue
		}
		if token := strings.TrimSpace(auth[len("Bearer "):]); token != "" {
			return token, true
		}
	}
	return "", false
}
