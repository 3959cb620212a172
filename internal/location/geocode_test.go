package location

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-location/internal/providers/geoapify"
	"storefront-location/internal/providers/openstreetmap"
	"storefront-location/internal/types"
)

type mockGeoapifyAPI struct {
	search    *geoapify.GeocodeAPIResponse
	reverse   *geoapify.GeocodeAPIResponse
	err       error
	calls     int
	gotFilter string
}

func (m *mockGeoapifyAPI) Search(ctx context.Context, text, countryCode string) (*geoapify.GeocodeAPIResponse, error) {
	m.calls++
	m.gotFilter = countryCode
	return m.search, m.err
}

func (m *mockGeoapifyAPI) Reverse(ctx context.Context, latitude, longitude float64) (*geoapify.GeocodeAPIResponse, error) {
	m.calls++
	return m.reverse, m.err
}

type mockNominatimAPI struct {
	search []openstreetmap.SearchAPIResult
	lookup *openstreetmap.LookupAPIResponse
	err    error
}

func (m *mockNominatimAPI) Search(ctx context.Context, query, countryCode string) ([]openstreetmap.SearchAPIResult, error) {
	return m.search, m.err
}

func (m *mockNominatimAPI) Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error) {
	return m.lookup, m.err
}

func TestGeocodeService_GeocodeAddress(t *testing.T) {
	tests := []struct {
		name     string
		provider GeocodeProvider
		address  string
		filter   string
		wantErr  error
		validate func(*testing.T, *types.Coordinates)
	}{
		{
			name: "geoapify result",
			provider: NewGeoapifyProvider(&mockGeoapifyAPI{
				search: &geoapify.GeocodeAPIResponse{Results: []geoapify.GeocodeResult{
					{PlaceId: "p1", Lat: 28.6139, Lon: 77.2090, Formatted: "New Delhi, Delhi, India"},
				}},
			}),
			address: "New Delhi, Delhi, India",
			filter:  "IN",
			validate: func(t *testing.T, c *types.Coordinates) {
				if c.Lat != 28.6139 || c.Lng != 77.2090 {
					t.Errorf("lat/lng = %v/%v, want 28.6139/77.2090", c.Lat, c.Lng)
				}
				if c.FormattedAddress != "New Delhi, Delhi, India" {
					t.Errorf("FormattedAddress = %q", c.FormattedAddress)
				}
				if c.Address != "New Delhi, Delhi, India" {
					t.Errorf("Address = %q", c.Address)
				}
				if c.PlaceID != "p1" {
					t.Errorf("PlaceID = %q, want p1", c.PlaceID)
				}
			},
		},
		{
			name: "nominatim result",
			provider: NewNominatimProvider(&mockNominatimAPI{
				search: []openstreetmap.SearchAPIResult{
					{PlaceId: 42, Lat: "18.5204", Lon: "73.8567", DisplayName: "Pune, Maharashtra, India"},
				},
			}),
			address: "Pune, Maharashtra, India",
			validate: func(t *testing.T, c *types.Coordinates) {
				if c.Lat != 18.5204 || c.Lng != 73.8567 {
					t.Errorf("lat/lng = %v/%v, want 18.5204/73.8567", c.Lat, c.Lng)
				}
				if c.PlaceID != "42" {
					t.Errorf("PlaceID = %q, want 42", c.PlaceID)
				}
			},
		},
		{
			name:     "no results",
			provider: NewGeoapifyProvider(&mockGeoapifyAPI{search: &geoapify.GeocodeAPIResponse{}}),
			address:  "Atlantis",
			wantErr:  ErrGeocode,
		},
		{
			name:     "provider unreachable",
			provider: NewNominatimProvider(&mockNominatimAPI{err: errors.New("dial tcp: timeout")}),
			address:  "Anywhere",
			wantErr:  ErrGeocode,
		},
		{
			name: "unparseable latitude",
			provider: NewNominatimProvider(&mockNominatimAPI{
				search: []openstreetmap.SearchAPIResult{{Lat: "north", Lon: "1"}},
			}),
			address: "Somewhere",
			wantErr: ErrGeocode,
		},
		{
			name: "out of range coordinates",
			provider: NewGeoapifyProvider(&mockGeoapifyAPI{
				search: &geoapify.GeocodeAPIResponse{Results: []geoapify.GeocodeResult{{Lat: 123, Lon: 0}}},
			}),
			address: "Nowhere",
			wantErr: ErrGeocode,
		},
		{
			name:     "empty address",
			provider: NewGeoapifyProvider(&mockGeoapifyAPI{}),
			address:  "  ",
			wantErr:  ErrGeocode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGeocodeServiceWithProvider(tt.provider, 0, 0, discardLogger())

			got, err := svc.GeocodeAddress(context.Background(), tt.address, tt.filter)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GeocodeAddress() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GeocodeAddress() unexpected error = %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, got)
			}
		})
	}
}

func TestGeocodeService_CachesResults(t *testing.T) {
	api := &mockGeoapifyAPI{
		search: &geoapify.GeocodeAPIResponse{Results: []geoapify.GeocodeResult{{Lat: 1, Lon: 2}}},
	}
	svc := NewGeocodeServiceWithProvider(NewGeoapifyProvider(api), 8, time.Minute, discardLogger())

	for i := 0; i < 3; i++ {
		if _, err := svc.GeocodeAddress(context.Background(), "Goa, India", "IN"); err != nil {
			t.Fatalf("GeocodeAddress() unexpected error = %v", err)
		}
	}
	if api.calls != 1 {
		t.Errorf("provider called %d times, want 1", api.calls)
	}
	if api.gotFilter != "in" {
		t.Errorf("country filter = %q, want in", api.gotFilter)
	}

	// A different filter is a different lookup
	if _, err := svc.GeocodeAddress(context.Background(), "Goa, India", ""); err != nil {
		t.Fatalf("GeocodeAddress() unexpected error = %v", err)
	}
	if api.calls != 2 {
		t.Errorf("provider called %d times, want 2", api.calls)
	}
}

func TestGeocodeService_ReverseGeocode(t *testing.T) {
	tests := []struct {
		name     string
		provider GeocodeProvider
		lat, lng float64
		wantErr  error
		want     types.LocationInfo
	}{
		{
			name: "geoapify upper-cases country code",
			provider: NewGeoapifyProvider(&mockGeoapifyAPI{
				reverse: &geoapify.GeocodeAPIResponse{Results: []geoapify.GeocodeResult{
					{City: "New Delhi", State: "Delhi", Country: "India", CountryCode: "in", Formatted: "New Delhi, India"},
				}},
			}),
			lat: 28.6139, lng: 77.2090,
			want: types.LocationInfo{
				City: "New Delhi", State: "Delhi", Country: "India", CountryCode: "IN", FormattedAddress: "New Delhi, India",
			},
		},
		{
			name: "nominatim prefers name over display name",
			provider: NewNominatimProvider(&mockNominatimAPI{
				lookup: &openstreetmap.LookupAPIResponse{
					PlaceId:     1234,
					Name:        "Aspen",
					DisplayName: "Aspen, Pitkin County, Colorado, United States",
					Address: openstreetmap.Address{
						Town: "Aspen", County: "Pitkin County", State: "Colorado", Country: "United States", CountryCode: "us",
					},
				},
			}),
			lat: 39.1911, lng: -106.8175,
			want: types.LocationInfo{
				Name: "Aspen", City: "Aspen", County: "Pitkin County", State: "Colorado",
				Country: "United States", CountryCode: "US",
				FormattedAddress: "Aspen, Pitkin County, Colorado, United States",
			},
		},
		{
			name:     "invalid latitude",
			provider: NewGeoapifyProvider(&mockGeoapifyAPI{}),
			lat:      91, lng: 0,
			wantErr: ErrInvalidCoordinates,
		},
		{
			name:     "NaN longitude",
			provider: NewGeoapifyProvider(&mockGeoapifyAPI{}),
			lat:      0, lng: math.NaN(),
			wantErr: ErrInvalidCoordinates,
		},
		{
			name:     "no results",
			provider: NewGeoapifyProvider(&mockGeoapifyAPI{reverse: &geoapify.GeocodeAPIResponse{}}),
			lat:      0, lng: 0,
			wantErr: ErrGeocode,
		},
		{
			name:     "nominatim unable to geocode",
			provider: NewNominatimProvider(&mockNominatimAPI{lookup: &openstreetmap.LookupAPIResponse{Error: "Unable to geocode"}}),
			lat:      0, lng: -160,
			wantErr: ErrGeocode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGeocodeServiceWithProvider(tt.provider, 4, time.Minute, discardLogger())

			got, err := svc.ReverseGeocode(context.Background(), tt.lat, tt.lng)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ReverseGeocode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReverseGeocode() unexpected error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("ReverseGeocode() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestGeocodeService_ReverseGeocodeNominatimNoResult(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	t.Cleanup(server.Close)

	client := openstreetmap.NewClient(server.URL, "storefront-location-test", 5*time.Second, discardLogger())
	svc := NewGeocodeServiceWithProvider(NewNominatimProvider(client), 4, time.Minute, discardLogger())

	for i := range 2 {
		info, err := svc.ReverseGeocode(context.Background(), 0, -160)
		if !errors.Is(err, ErrGeocode) {
			t.Fatalf("ReverseGeocode() #%d = %+v, %v, want ErrGeocode", i, info, err)
		}
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2 (failures are not cached)", requests)
	}
}

func TestNormalizeCountryCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "in", want: "IN"},
		{in: "US", want: "US"},
		{in: "usa", want: "US"},
		{in: "", want: ""},
		{in: "not-a-country", want: "NOT-A-COUNTRY"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeCountryCode(tt.in); got != tt.want {
				t.Errorf("NormalizeCountryCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
