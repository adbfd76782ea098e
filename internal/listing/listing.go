// Package listing implements the client-side slicing shared by every list
// screen: the full filtered result set lives in memory and pages are cut out
// of it, there is no server-side cursoring.
package listing

import "strings"

// Page slices items for a zero-based page index. Out-of-range pages return an
// empty page rather than an error so a stale page index after a re-fetch is
// harmless.
func Page[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = 10
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if page < 0 || page >= totalPages {
		return nil, totalPages
	}
	start := page * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// Filter keeps items matching the predicate, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// ContainsFold reports whether any of the fields contains the search term,
// case-insensitively. An empty term matches everything.
func ContainsFold(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
