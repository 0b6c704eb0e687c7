package records

import (
	"slices"

	"babytrack/internal/core"
)

// Latest returns the record with the greatest timestamp. When several share
// it, the one encountered last wins.
func Latest[T core.Record](items []T) (T, bool) {
	var best T
	found := false
	for _, r := range items {
		if !found || !r.Timestamp().Before(best.Timestamp()) {
			best = r
			found = true
		}
	}
	return best, found
}

// SortAscending returns a copy ordered oldest first. Equal timestamps keep
// their storage order.
func SortAscending[T core.Record](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return a.Timestamp().Compare(b.Timestamp())
	})
	return out
}

// SortDescending returns a copy ordered newest first.
func SortDescending[T core.Record](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return b.Timestamp().Compare(a.Timestamp())
	})
	return out
}
