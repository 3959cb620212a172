package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"storefront-location/internal/config"
	"storefront-location/internal/providers/countrystatecity"
	"storefront-location/internal/types"
)

// Directory provides the option lists of the three selection tiers
type Directory interface {
	FetchCountries(ctx context.Context) ([]types.Country, error)
	FetchStates(ctx context.Context, countryIso2 string) ([]types.State, error)
	FetchCities(ctx context.Context, countryIso2, stateIso2 string) ([]types.City, error)
}

// CatalogProvider defines the interface for country/state/city data providers
type CatalogProvider interface {
	GetCountries(ctx context.Context) ([]countrystatecity.CountryAPIResponse, error)
	GetStates(ctx context.Context, countryIso2 string) ([]countrystatecity.StateAPIResponse, error)
	GetCities(ctx context.Context, countryIso2, stateIso2 string) ([]countrystatecity.CityAPIResponse, error)
}

// Cache stores option lists between requests. Get reports whether key was
// found and decoded into dst.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Put(ctx context.Context, key string, value any) error
}

type directoryService struct {
	provider CatalogProvider
	cache    Cache
	logger   *slog.Logger
}

// NewDirectoryService creates a directory backed by the CountryStateCity API
func NewDirectoryService(cfg *config.Config, cache Cache, logger *slog.Logger) Directory {
	csc := cfg.Providers.CountryStateCity
	client := countrystatecity.NewClient(csc.BaseURL, csc.APIKey, csc.Timeout, logger)
	return NewDirectoryServiceWithProviders(client, cache, logger)
}

// NewDirectoryServiceWithProviders creates a directory with a custom provider.
// cache may be nil.
func NewDirectoryServiceWithProviders(provider CatalogProvider, cache Cache, logger *slog.Logger) Directory {
	return &directoryService{
		provider: provider,
		cache:    cache,
		logger:   logger.With("component", "location-directory"),
	}
}

func (s *directoryService) FetchCountries(ctx context.Context) ([]types.Country, error) {
	const key = "countries"

	var countries []types.Country
	if s.cached(ctx, key, &countries) {
		return countries, nil
	}

	resp, err := s.provider.GetCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", classify(err))
	}

	countries = translateCountries(resp)
	s.store(ctx, key, countries)
	return countries, nil
}

func (s *directoryService) FetchStates(ctx context.Context, countryIso2 string) ([]types.State, error) {
	country, err := normalizeCode(countryIso2, "country")
	if err != nil {
		return nil, err
	}
	key := "states:" + country

	var states []types.State
	if s.cached(ctx, key, &states) {
		return states, nil
	}

	resp, err := s.provider.GetStates(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch states for %s: %w", country, classify(err))
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("country %s has no states: %w", country, ErrNotFound)
	}

	states = translateStates(resp)
	s.store(ctx, key, states)
	return states, nil
}

func (s *directoryService) FetchCities(ctx context.Context, countryIso2, stateIso2 string) ([]types.City, error) {
	country, err := normalizeCode(countryIso2, "country")
	if err != nil {
		return nil, err
	}
	state, err := normalizeCode(stateIso2, "state")
	if err != nil {
		return nil, err
	}
	key := "cities:" + country + ":" + state

	var cities []types.City
	if s.cached(ctx, key, &cities) {
		return cities, nil
	}

	resp, err := s.provider.GetCities(ctx, country, state)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cities for %s/%s: %w", country, state, classify(err))
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("state %s/%s has no cities: %w", country, state, ErrNotFound)
	}

	cities = translateCities(resp)
	s.store(ctx, key, cities)
	return cities, nil
}

// cached loads key from the cache. Cache failures are logged and treated as misses.
func (s *directoryService) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.logger.Warn("failed to read option list cache", "key", key, "error", err)
		return false
	}
	if found {
		s.logger.Debug("option list served from cache", "key", key)
	}
	return found
}

func (s *directoryService) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, key, value); err != nil {
		s.logger.Warn("failed to write option list cache", "key", key, "error", err)
	}
}

// normalizeCode upper-cases an ISO 3166 code. Subdivision codes may carry
// digits and up to three characters.
func normalizeCode(code, kind string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("%s ISO2 code is required: %w", kind, ErrInvalidCode)
	}
	if len(code) > 3 {
		return "", fmt.Errorf("%s code %q is too long: %w", kind, code, ErrInvalidCode)
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", fmt.Errorf("%s code %q has invalid characters: %w", kind, code, ErrInvalidCode)
		}
	}
	return code, nil
}

// classify maps a provider error onto the location error taxonomy
func classify(err error) error {
	var apiErr *countrystatecity.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

func translateCountries(resp []countrystatecity.CountryAPIResponse) []types.Country {
	countries := make([]types.Country, 0, len(resp))
	for _, c := range resp {
		countries = append(countries, types.Country{
			ID:        c.Id,
			Name:      c.Name,
			Iso2:      c.Iso2,
			Iso3:      c.Iso3,
			PhoneCode: c.Phonecode,
			Capital:   c.Capital,
			Currency:  c.Currency,
			Emoji:     c.Emoji,
		})
	}
	return countries
}

func translateStates(resp []countrystatecity.StateAPIResponse) []types.State {
	states := make([]types.State, 0, len(resp))
	for _, s := range resp {
		states = append(states, types.State{ID: s.Id, Name: s.Name, Iso2: s.Iso2})
	}
	return states
}

func translateCities(resp []countrystatecity.CityAPIResponse) []types.City {
	cities := make([]types.City, 0, len(resp))
	for _, c := range resp {
		cities = append(cities, types.City{ID: c.Id, Name: c.Name})
	}
	return cities
}
