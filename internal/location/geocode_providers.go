package location

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"storefront-location/internal/providers/geoapify"
	"storefront-location/internal/providers/openstreetmap"
	"storefront-location/internal/types"
)

var errNoResults = errors.New("no geocoding results found")

// GeoapifyAPI is the subset of the Geoapify client the adapter needs
type GeoapifyAPI interface {
	Search(ctx context.Context, text, countryCode string) (*geoapify.GeocodeAPIResponse, error)
	Reverse(ctx context.Context, latitude, longitude float64) (*geoapify.GeocodeAPIResponse, error)
}

// NominatimAPI is the subset of the OpenStreetMap client the adapter needs
type NominatimAPI interface {
	Search(ctx context.Context, query, countryCode string) ([]openstreetmap.SearchAPIResult, error)
	Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error)
}

type geoapifyProvider struct {
	api GeoapifyAPI
}

func NewGeoapifyProvider(api GeoapifyAPI) GeocodeProvider {
	return &geoapifyProvider{api: api}
}

func (p *geoapifyProvider) Geocode(ctx context.Context, address, countryCode string) (*types.Coordinates, error) {
	resp, err := p.api.Search(ctx, address, countryCode)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Results) == 0 {
		return nil, errNoResults
	}

	result := resp.Results[0]
	return &types.Coordinates{
		Lat:              result.Lat,
		Lng:              result.Lon,
		Address:          address,
		FormattedAddress: result.Formatted,
		PlaceID:          result.PlaceId,
	}, nil
}

func (p *geoapifyProvider) Reverse(ctx context.Context, latitude, longitude float64) (*types.LocationInfo, error) {
	resp, err := p.api.Reverse(ctx, latitude, longitude)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Results) == 0 {
		return nil, errNoResults
	}

	result := resp.Results[0]
	return &types.LocationInfo{
		Name:             result.Name,
		City:             result.City,
		County:           result.County,
		State:            result.State,
		Country:          result.Country,
		CountryCode:      result.CountryCode,
		FormattedAddress: result.Formatted,
	}, nil
}

type nominatimProvider struct {
	api NominatimAPI
}

func NewNominatimProvider(api NominatimAPI) GeocodeProvider {
	return &nominatimProvider{api: api}
}

func (p *nominatimProvider) Geocode(ctx context.Context, address, countryCode string) (*types.Coordinates, error) {
	results, err := p.api.Search(ctx, address, countryCode)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errNoResults
	}

	result := results[0]
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse latitude %q: %w", result.Lat, err)
	}
	lng, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse longitude %q: %w", result.Lon, err)
	}

	return &types.Coordinates{
		Lat:              lat,
		Lng:              lng,
		Address:          address,
		FormattedAddress: result.DisplayName,
		PlaceID:          strconv.Itoa(result.PlaceId),
	}, nil
}

func (p *nominatimProvider) Reverse(ctx context.Context, latitude, longitude float64) (*types.LocationInfo, error) {
	resp, err := p.api.Lookup(ctx, latitude, longitude)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("lookup response is nil")
	}
	if resp.Error != "" || resp.PlaceId == 0 {
		return nil, errNoResults
	}

	// Extract the display name or name as the location name
	name := resp.DisplayName
	if resp.Name != "" {
		name = resp.Name
	}

	return &types.LocationInfo{
		Name:             name,
		City:             resp.Address.Locality(),
		County:           resp.Address.County,
		State:            resp.Address.State,
		Country:          resp.Address.Country,
		CountryCode:      resp.Address.CountryCode,
		FormattedAddress: resp.DisplayName,
	}, nil
}
