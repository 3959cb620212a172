package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/biter777/countries"
	"github.com/golang/geo/s2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"storefront-location/internal/config"
	"storefront-location/internal/providers/geoapify"
	"storefront-location/internal/providers/openstreetmap"
	"storefront-location/internal/types"
)

// Geocoder resolves addresses to coordinates and back
type Geocoder interface {
	// GeocodeAddress resolves free text to a point. countryFilter, when set,
	// restricts the lookup to one ISO2 country.
	GeocodeAddress(ctx context.Context, address, countryFilter string) (*types.Coordinates, error)
	// ReverseGeocode describes the place at a coordinate
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (*types.LocationInfo, error)
}

// GeocodeProvider is a vendor adapter translating API responses to domain types
type GeocodeProvider interface {
	Geocode(ctx context.Context, address, countryCode string) (*types.Coordinates, error)
	Reverse(ctx context.Context, latitude, longitude float64) (*types.LocationInfo, error)
}

type geocodeService struct {
	provider GeocodeProvider
	forward  *expirable.LRU[string, types.Coordinates]
	reverse  *expirable.LRU[string, types.LocationInfo]
	logger   *slog.Logger
}

// NewGeocodeService creates a geocoder for the provider named in the configuration
func NewGeocodeService(cfg *config.Config, logger *slog.Logger) (Geocoder, error) {
	var provider GeocodeProvider
	switch strings.ToLower(cfg.Providers.Geocoder) {
	case config.GeocoderGeoapify:
		g := cfg.Providers.Geoapify
		provider = NewGeoapifyProvider(geoapify.NewClient(g.BaseURL, g.APIKey, g.Timeout, logger))
	case config.GeocoderNominatim:
		n := cfg.Providers.Nominatim
		provider = NewNominatimProvider(openstreetmap.NewClient(n.BaseURL, n.UserAgent, n.Timeout, logger))
	default:
		return nil, fmt.Errorf("unknown geocoder provider %q", cfg.Providers.Geocoder)
	}
	return NewGeocodeServiceWithProvider(provider, cfg.Cache.GeocodeSize, cfg.Cache.GeocodeTTL, logger), nil
}

// NewGeocodeServiceWithProvider creates a geocoder with a custom provider.
// A non-positive cacheSize disables result caching.
func NewGeocodeServiceWithProvider(provider GeocodeProvider, cacheSize int, cacheTTL time.Duration, logger *slog.Logger) Geocoder {
	s := &geocodeService{
		provider: provider,
		logger:   logger.With("component", "geocode-service"),
	}
	if cacheSize > 0 {
		s.forward = expirable.NewLRU[string, types.Coordinates](cacheSize, nil, cacheTTL)
		s.reverse = expirable.NewLRU[string, types.LocationInfo](cacheSize, nil, cacheTTL)
	}
	return s
}

func (s *geocodeService) GeocodeAddress(ctx context.Context, address, countryFilter string) (*types.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("address is required: %w", ErrGeocode)
	}
	countryFilter = strings.ToLower(strings.TrimSpace(countryFilter))

	key := strings.ToLower(address) + "|" + countryFilter
	if s.forward != nil {
		if coords, ok := s.forward.Get(key); ok {
			return &coords, nil
		}
	}

	coords, err := s.provider.Geocode(ctx, address, countryFilter)
	if err != nil {
		s.logger.Warn("failed to geocode address",
			"address", address,
			"country_filter", countryFilter,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrGeocode, err)
	}

	if !validLatLng(coords.Lat, coords.Lng) {
		s.logger.Warn("geocoder returned invalid coordinates",
			"address", address,
			"lat", coords.Lat,
			"lng", coords.Lng,
		)
		return nil, fmt.Errorf("provider returned invalid coordinates (%f, %f): %w", coords.Lat, coords.Lng, ErrGeocode)
	}
	if coords.Address == "" {
		coords.Address = address
	}

	s.logger.Debug("geocoded address",
		"address", address,
		"lat", coords.Lat,
		"lng", coords.Lng,
	)

	if s.forward != nil {
		s.forward.Add(key, *coords)
	}
	return coords, nil
}

func (s *geocodeService) ReverseGeocode(ctx context.Context, latitude, longitude float64) (*types.LocationInfo, error) {
	if !validLatLng(latitude, longitude) {
		return nil, fmt.Errorf("(%f, %f): %w", latitude, longitude, ErrInvalidCoordinates)
	}

	key := fmt.Sprintf("%.5f,%.5f", latitude, longitude)
	if s.reverse != nil {
		if info, ok := s.reverse.Get(key); ok {
			return &info, nil
		}
	}

	info, err := s.provider.Reverse(ctx, latitude, longitude)
	if err != nil {
		s.logger.Warn("failed to reverse geocode",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrGeocode, err)
	}
	info.CountryCode = NormalizeCountryCode(info.CountryCode)

	if s.reverse != nil {
		s.reverse.Add(key, *info)
	}
	return info, nil
}

// NormalizeCountryCode returns the ISO 3166-1 alpha-2 form of a country code
// or name, upper-casing codes it does not recognise.
func NormalizeCountryCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if c := countries.ByName(code); c != countries.Unknown {
		return c.Alpha2()
	}
	return strings.ToUpper(code)
}

func validLatLng(latitude, longitude float64) bool {
	return s2.LatLngFromDegrees(latitude, longitude).IsValid()
}
