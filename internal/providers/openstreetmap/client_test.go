package openstreetmap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "", 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Lookup(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("path = %q, want /reverse", r.URL.Path)
		}
		if got := r.Header.Get("User-Agent"); got != DefaultUserAgent {
			t.Errorf("User-Agent = %q, want %q", got, DefaultUserAgent)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %q, want json", got)
		}
		_, _ = io.WriteString(w, `{"place_id":1,"display_name":"Connaught Place, New Delhi, Delhi, India","address":{"city":"New Delhi","state":"Delhi","country":"India","country_code":"in"}}`)
	})

	resp, err := client.Lookup(context.Background(), 28.6139, 77.2090)
	if err != nil {
		t.Fatalf("Lookup() unexpected error = %v", err)
	}
	if resp.Address.Locality() != "New Delhi" {
		t.Errorf("Locality() = %q, want New Delhi", resp.Address.Locality())
	}
	if resp.Address.CountryCode != "in" {
		t.Errorf("CountryCode = %q, want in", resp.Address.CountryCode)
	}
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		if q.Get("q") != "Pune, Maharashtra, India" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("countrycodes") != "in" {
			t.Errorf("countrycodes = %q, want in", q.Get("countrycodes"))
		}
		_, _ = io.WriteString(w, `[{"place_id":7,"lat":"18.5204","lon":"73.8567","display_name":"Pune, Maharashtra, India"}]`)
	})

	results, err := client.Search(context.Background(), "Pune, Maharashtra, India", "IN")
	if err != nil {
		t.Fatalf("Search() unexpected error = %v", err)
	}
	if len(results) != 1 || results[0].Lat != "18.5204" || results[0].Lon != "73.8567" {
		t.Errorf("Search() = %+v", results)
	}
}

func TestAddress_Locality(t *testing.T) {
	tests := []struct {
		name    string
		address Address
		want    string
	}{
		{name: "city wins", address: Address{City: "A", Town: "B", Village: "C"}, want: "A"},
		{name: "town fallback", address: Address{Town: "B", Village: "C"}, want: "B"},
		{name: "village fallback", address: Address{Village: "C"}, want: "C"},
		{name: "empty", address: Address{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.address.Locality(); got != tt.want {
				t.Errorf("Locality() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, "slow down")
	})

	_, err := client.Lookup(context.Background(), 1, 2)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Lookup() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests || apiErr.Body != "slow down" {
		t.Errorf("APIError = %+v", apiErr)
	}
}
