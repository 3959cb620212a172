// Package search narrows loaded option lists against a free-text term.
package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// Field extracts one searchable text value from an option
type Field[T any] func(T) string

// Filter returns the options for which any of the given fields contains term
// as a case-insensitive substring. The relative order of options is kept.
//
// An empty term returns options unchanged. With a term but no fields nothing
// can match, so the result is empty. Filtering an already filtered list with
// the same term and fields yields the same list.
func Filter[T any](options []T, term string, fields ...Field[T]) []T {
	if term == "" {
		return options
	}

	folder := cases.Fold()
	needle := folder.String(term)

	filtered := make([]T, 0, len(options))
	for _, option := range options {
		for _, field := range fields {
			if strings.Contains(folder.String(field(option)), needle) {
				filtered = append(filtered, option)
				break
			}
		}
	}
	return filtered
}
