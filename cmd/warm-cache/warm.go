package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront-location/internal/location"
)

// Report counts the option lists fetched while warming
type Report struct {
	Countries int
	States    int
	Cities    int
	Failed    []string // keys that could not be fetched
}

// warm fetches the country list and, for each of countryCodes, its states
// (and their cities when withCities is set). The directory writes every list
// through its cache. Only a failure to list countries is fatal.
func warm(ctx context.Context, directory location.Directory, countryCodes []string, withCities bool, logger *slog.Logger) (Report, error) {
	var report Report

	countries, err := directory.FetchCountries(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to fetch countries: %w", err)
	}
	report.Countries = len(countries)

	for _, country := range countryCodes {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		states, err := directory.FetchStates(ctx, country)
		if err != nil {
			report.fail(logger, "states:"+country, err)
			continue
		}
		report.States += len(states)

		if !withCities {
			continue
		}
		for _, state := range states {
			cities, err := directory.FetchCities(ctx, country, state.Iso2)
			if err != nil {
				report.fail(logger, "cities:"+country+":"+state.Iso2, err)
				continue
			}
			report.Cities += len(cities)
		}
	}

	return report, nil
}

func (r *Report) fail(logger *slog.Logger, key string, err error) {
	// empty lists are expected for some countries and states
	if errors.Is(err, location.ErrNotFound) {
		logger.Debug("nothing to cache", "key", key)
		return
	}
	logger.Warn("failed to warm option list", "key", key, "error", err)
	r.Failed = append(r.Failed, key)
}
