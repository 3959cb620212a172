// Package enrich resolves a complete country/state/city selection to map
// coordinates and formats the location document the backend stores.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"

	"storefront-location/internal/location"
	"storefront-location/internal/types"
)

// AddressGeocoder resolves free-text addresses
type AddressGeocoder interface {
	GeocodeAddress(ctx context.Context, address, countryFilter string) (*types.Coordinates, error)
}

// TimezoneLookup resolves the timezone of a coordinate
type TimezoneLookup interface {
	Lookup(latitude, longitude float64) (string, error)
}

type Service struct {
	geocoder AddressGeocoder
	timezone TimezoneLookup
	logger   *slog.Logger
}

// NewService creates the enrichment step. timezone may be nil.
func NewService(geocoder AddressGeocoder, timezone TimezoneLookup, logger *slog.Logger) *Service {
	return &Service{
		geocoder: geocoder,
		timezone: timezone,
		logger:   logger.With("component", "geo-enrichment"),
	}
}

// ResolveCoordinates geocodes the selected city. Both country and city must be
// resolved; every failure wraps location.ErrGeocode.
func (s *Service) ResolveCoordinates(ctx context.Context, sel types.Selection) (*types.Coordinates, error) {
	if !sel.Complete() {
		return nil, fmt.Errorf("country and city are required: %w", location.ErrGeocode)
	}

	address := BuildAddress(sel)
	coords, err := s.geocoder.GeocodeAddress(ctx, address, CountryFilter(sel))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", address, err)
	}

	resolved := *coords
	if resolved.Address == "" {
		resolved.Address = address
	}
	resolved.Geohash = geohash.Encode(resolved.Lat, resolved.Lng)

	if s.timezone != nil {
		tz, err := s.timezone.Lookup(resolved.Lat, resolved.Lng)
		if err != nil {
			s.logger.Warn("failed to resolve timezone",
				"lat", resolved.Lat,
				"lng", resolved.Lng,
				"error", err,
			)
		} else {
			resolved.Timezone = tz
		}
	}

	s.logger.Debug("resolved coordinates",
		"address", address,
		"lat", resolved.Lat,
		"lng", resolved.Lng,
		"timezone", resolved.Timezone,
	)

	return &resolved, nil
}

// BuildAddress joins city, state and country names, most specific first
func BuildAddress(sel types.Selection) string {
	parts := make([]string, 0, 3)
	if sel.City != nil && sel.City.Name != "" {
		parts = append(parts, sel.City.Name)
	}
	if sel.State != nil && sel.State.Name != "" {
		parts = append(parts, sel.State.Name)
	}
	if sel.Country != nil && sel.Country.Name != "" {
		parts = append(parts, sel.Country.Name)
	}
	return strings.Join(parts, ", ")
}

// CountryFilter returns the lower-cased ISO2 code of the selected country, or ""
func CountryFilter(sel types.Selection) string {
	if sel.Country == nil {
		return ""
	}
	return strings.ToLower(sel.Country.Iso2)
}
