package iot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"sevsuctl/pkg/fields"
)

// ratingKeys are the names the IOT profile uses for a student's rating.
var ratingKeys = fields.Aliases{"rating", "score", "balls", "total"}

// Client reads the IOT (individual learning track) profile.
type Client struct {
	profileURL string
	httpClient *http.Client
}

// NewClient creates a client for the IOT profile endpoint.
func NewClient(profileURL string, timeout time.Duration) *Client {
	return &Client{
		profileURL: profileURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchProfile returns the decoded profile document.
func (c *Client) FetchProfile(ctx context.Context, bearer string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch IOT profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON response: %w", err)
	}
	return doc, nil
}

// FetchRating returns the student's rating, or 0 if the profile has none.
func (c *Client) FetchRating(ctx context.Context, bearer string) (float64, error) {
	doc, err := c.FetchProfile(ctx, bearer)
	if err != nil {
		return 0, err
	}
	return FindRating(doc), nil
}

// FindRating searches a JSON document depth-first for the first non-zero
// rating. An object's own keys are checked before its children.
func FindRating(doc any) float64 {
	switch v := doc.(type) {
	case map[string]any:
		if r, ok := ratingKeys.Number(v); ok && r != 0 {
			return r
		}
		// Map iteration order is random; walk the keys sorted for a stable answer.
		for _, k := range sortedKeys(v) {
			if r := FindRating(v[k]); r != 0 {
				return r
			}
		}
	case []any:
		for _, item := range v {
			if r := FindRating(item); r != 0 {
				return r
			}
		}
	}
	return 0
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
