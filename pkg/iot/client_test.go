package iot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFindRating(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want float64
	}{
		{"top level", `{"rating": 87.5, "name": "x"}`, 87.5},
		{"key priority", `{"total": 10, "score": 55}`, 55},
		{"rating beats an earlier total", `{"total": 5, "rating": 3}`, 3},
		{"children in key order", `{"b": {"score": 2}, "a": {"score": 1}}`, 1},
		{"nested in cohort list", `{"id": 1, "cohorts": [{"option": {"balls": 73}}]}`, 73},
		{"zero falls through", `{"rating": 0, "cohorts": [{"score": 12}]}`, 12},
		{"strings are ignored", `{"rating": "high", "data": {"total": 5}}`, 5},
		{"absent", `{"cohorts": [{"option": {"title": "ИВТ"}}]}`, 0},
		{"not an object", `"nope"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc any
			if err := json.Unmarshal([]byte(tt.doc), &doc); err != nil {
				t.Fatalf("bad fixture: %v", err)
			}
			if got := FindRating(doc); got != tt.want {
				t.Errorf("FindRating = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_FetchRating_Mock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer iot-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"user": {"fio": "Иванов"}, "cohorts": [{"option": {"rating": 91}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api/profile?expand=cohorts.option", 5*time.Second)

	rating, err := client.FetchRating(context.Background(), "iot-token")
	if err != nil {
		t.Fatalf("unexpected error fetching mocked profile: %v", err)
	}
	if rating != 91 {
		t.Errorf("expected rating 91, got %v", rating)
	}

	if _, err := client.FetchRating(context.Background(), "wrong"); err == nil {
		t.Errorf("expected an error for a rejected bearer token")
	}
}
