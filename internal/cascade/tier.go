// Package cascade keeps a country/state/city selection consistent while the
// option lists of each tier load asynchronously.
package cascade

import (
	"storefront-location/internal/search"
	"storefront-location/internal/types"
)

// Tier describes one selection level and how its options are searched
type Tier[T types.Option] struct {
	Name   string
	Fields search.Fields[T]
}

// Find returns the option with the given id
func (t Tier[T]) Find(options []T, id int) (T, bool) {
	for _, option := range options {
		if option.OptionID() == id {
			return option, true
		}
	}
	var zero T
	return zero, false
}

// Search filters options by term over the named fields, or the tier's
// default fields when none of the names is known.
func (t Tier[T]) Search(options []T, term string, fieldNames ...string) []T {
	return search.Filter(options, term, t.Fields.Resolve(fieldNames...)...)
}

var (
	CountryTier = Tier[types.Country]{Name: "country", Fields: search.CountryFields}
	StateTier   = Tier[types.State]{Name: "state", Fields: search.StateFields}
	CityTier    = Tier[types.City]{Name: "city", Fields: search.CityFields}
)
