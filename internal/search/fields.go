package search

import (
	"strconv"
	"strings"

	"storefront-location/internal/types"
)

// Fields is a named table of the searchable fields of one option type
type Fields[T any] struct {
	byName   map[string]Field[T]
	defaults []string
}

// NewFields builds a field table. defaults names the fields used when a
// caller does not ask for specific ones.
func NewFields[T any](byName map[string]Field[T], defaults ...string) Fields[T] {
	return Fields[T]{byName: byName, defaults: defaults}
}

// Resolve maps field names to accessors. Unknown names are skipped; when none
// of the names is known the default fields are returned.
func (f Fields[T]) Resolve(names ...string) []Field[T] {
	resolved := f.lookup(names)
	if len(resolved) == 0 {
		resolved = f.lookup(f.defaults)
	}
	return resolved
}

func (f Fields[T]) lookup(names []string) []Field[T] {
	var resolved []Field[T]
	for _, name := range names {
		if field, ok := f.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
			resolved = append(resolved, field)
		}
	}
	return resolved
}

// Names returns the known field names in no particular order
func (f Fields[T]) Names() []string {
	names := make([]string, 0, len(f.byName))
	for name := range f.byName {
		names = append(names, name)
	}
	return names
}

// ParseNames splits a comma separated field list such as "name,iso2"
func ParseNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

var CountryFields = NewFields(map[string]Field[types.Country]{
	"id":        func(c types.Country) string { return strconv.Itoa(c.ID) },
	"name":      func(c types.Country) string { return c.Name },
	"iso2":      func(c types.Country) string { return c.Iso2 },
	"iso3":      func(c types.Country) string { return c.Iso3 },
	"phonecode": func(c types.Country) string { return c.PhoneCode },
	"capital":   func(c types.Country) string { return c.Capital },
	"currency":  func(c types.Country) string { return c.Currency },
}, "name", "iso2", "iso3")

var StateFields = NewFields(map[string]Field[types.State]{
	"id":   func(s types.State) string { return strconv.Itoa(s.ID) },
	"name": func(s types.State) string { return s.Name },
	"iso2": func(s types.State) string { return s.Iso2 },
}, "name", "iso2")

var CityFields = NewFields(map[string]Field[types.City]{
	"id":   func(c types.City) string { return strconv.Itoa(c.ID) },
	"name": func(c types.City) string { return c.Name },
}, "name")
