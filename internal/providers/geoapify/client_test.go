package geoapify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, apiKey, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, "key", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/geocode/search" {
			t.Errorf("path = %q, want /geocode/search", r.URL.Path)
		}
		if got := q.Get("text"); got != "New Delhi, Delhi, India" {
			t.Errorf("text = %q", got)
		}
		if got := q.Get("filter"); got != "countrycode:in" {
			t.Errorf("filter = %q, want countrycode:in", got)
		}
		if got := q.Get("apiKey"); got != "key" {
			t.Errorf("apiKey = %q, want key", got)
		}
		if got := q.Get("limit"); got != "1" {
			t.Errorf("limit = %q, want 1", got)
		}
		_, _ = io.WriteString(w, `{"results":[{"place_id":"abc","lat":28.6139,"lon":77.209,"formatted":"New Delhi, Delhi, India","country_code":"in"}]}`)
	})

	resp, err := client.Search(context.Background(), "New Delhi, Delhi, India", "IN")
	if err != nil {
		t.Fatalf("Search() unexpected error = %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("Search() returned %d results, want 1", len(resp.Results))
	}
	r := resp.Results[0]
	if r.Lat != 28.6139 || r.Lon != 77.209 {
		t.Errorf("Search() lat/lon = %v/%v, want 28.6139/77.209", r.Lat, r.Lon)
	}
	if r.PlaceId != "abc" {
		t.Errorf("PlaceId = %q, want abc", r.PlaceId)
	}
}

func TestClient_SearchWithoutFilter(t *testing.T) {
	client := newTestClient(t, "key", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["filter"]; ok {
			t.Error("filter should be omitted without a country code")
		}
		_, _ = io.WriteString(w, `{"results":[]}`)
	})

	if _, err := client.Search(context.Background(), "Somewhere", ""); err != nil {
		t.Fatalf("Search() unexpected error = %v", err)
	}
}

func TestClient_Reverse(t *testing.T) {
	client := newTestClient(t, "key", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/geocode/reverse" {
			t.Errorf("path = %q, want /geocode/reverse", r.URL.Path)
		}
		if q.Get("lat") != "28.6139" || q.Get("lon") != "77.209" {
			t.Errorf("lat/lon = %q/%q", q.Get("lat"), q.Get("lon"))
		}
		_, _ = io.WriteString(w, `{"results":[{"city":"New Delhi","state":"Delhi","country":"India","country_code":"in","formatted":"New Delhi, India"}]}`)
	})

	resp, err := client.Reverse(context.Background(), 28.6139, 77.209)
	if err != nil {
		t.Fatalf("Reverse() unexpected error = %v", err)
	}
	if resp.Results[0].City != "New Delhi" {
		t.Errorf("City = %q, want New Delhi", resp.Results[0].City)
	}
}

func TestClient_Errors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected without an API key")
		})
		if _, err := client.Search(context.Background(), "x", ""); err == nil {
			t.Fatal("Search() expected error but got none")
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		client := newTestClient(t, "key", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, err := client.Reverse(context.Background(), 1, 2)
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
			t.Fatalf("Reverse() error = %v, want *APIError with 401", err)
		}
	})

	t.Run("unreachable upstream hides api key", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client := NewClient(server.URL, "SECRETKEY", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := client.Search(context.Background(), "Paris", "fr")
		if err == nil {
			t.Fatal("Search() expected error but got none")
		}
		if strings.Contains(err.Error(), "SECRETKEY") {
			t.Errorf("Search() error = %q, must not contain the API key", err)
		}
	})
}
