// Package query provides the pure, allocation-light primitives every CRM view
// uses to answer its questions: multi-field substring search, categorical
// filtering, id lookup, one-to-many joins, stable comparator sorting and
// tallying.
//
// Every function is total and side-effect free. Inputs are never mutated;
// results are fresh slices that preserve the relative order of the input
// unless a sort is explicitly requested.
package query

import (
	"slices"
	"strings"
)

// AllCategories is the sentinel category selection that disables filtering.
const AllCategories = "all"

// Contains reports whether needle is a case-insensitive substring of haystack.
func Contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// IsBlank reports whether the query is empty or whitespace-only.
func IsBlank(q string) bool {
	return strings.TrimSpace(q) == ""
}

// Search returns the items where q, as given, is a case-insensitive substring
// of at least one of the fields produced by fields. Surrounding whitespace is
// part of the needle.
//
// A blank query matches every item. Callers that need a different policy for
// short queries apply it before calling Search.
func Search[T any](items []T, q string, fields func(T) []string) []T {
	if IsBlank(q) {
		return slices.Clone(items)
	}
	needle := strings.ToLower(q)
	return Where(items, func(item T) bool {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	})
}

// Where returns the items accepted by keep, in input order.
func Where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// FilterCategory keeps the items whose discriminant equals selected. An empty
// selection or AllCategories keeps everything.
func FilterCategory[T any, K ~string](items []T, selected K, discriminant func(T) K) []T {
	if selected == "" || string(selected) == AllCategories {
		return slices.Clone(items)
	}
	return Where(items, func(item T) bool {
		return discriminant(item) == selected
	})
}

// FindByID returns the first item whose id equals id. The boolean is false
// when nothing matches; the zero value is returned in that case.
func FindByID[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, item := range items {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FindByOptionalID resolves an optional foreign key. A nil key never matches.
func FindByOptionalID[T any](items []T, id *string, idOf func(T) string) (T, bool) {
	if id == nil {
		var zero T
		return zero, false
	}
	return FindByID(items, *id, idOf)
}

// ManyBy returns every item whose foreign key equals key, in input order.
func ManyBy[T any](items []T, key string, fk func(T) string) []T {
	return Where(items, func(item T) bool {
		return fk(item) == key
	})
}

// ManyByOptional is ManyBy for optional foreign keys; nil keys never match.
func ManyByOptional[T any](items []T, key string, fk func(T) *string) []T {
	return Where(items, func(item T) bool {
		ref := fk(item)
		return ref != nil && *ref == key
	})
}

// SortStable returns a sorted copy of items. Equal elements keep their input
// order, which keeps secondary ordering deterministic.
func SortStable[T any](items []T, cmp func(a, b T) int) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, cmp)
	return out
}

// Tally counts items per key.
func Tally[T any, K comparable](items []T, key func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, item := range items {
		counts[key(item)]++
	}
	return counts
}

// Limit truncates items to at most n entries. A non-positive n keeps all.
func Limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
