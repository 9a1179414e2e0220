package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientScore(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/polarity" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header: %q", got)
		}

		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}

		score := 0.42
		if body.Text == "off the chart" {
			score = 3
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"compound": score})
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", "secret")

	got, err := c.Score(context.Background(), "nice")
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if got != 0.42 {
		t.Fatalf("unexpected score: %v", got)
	}

	got, err = c.Score(context.Background(), "off the chart")
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected clamped score 1, got %v", got)
	}
}

func TestClientScoreErrors(t *testing.T) {
	t.Parallel()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer failing.Close()

	if _, err := NewClient(failing.URL, "").Score(context.Background(), "x"); err == nil {
		t.Fatalf("expected error on 500")
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer empty.Close()

	if _, err := NewClient(empty.URL, "").Score(context.Background(), "x"); err == nil {
		t.Fatalf("expected error when compound is missing")
	}

	if _, err := NewClient("", "").Score(context.Background(), "x"); err == nil {
		t.Fatalf("expected error without endpoint")
	}
}
