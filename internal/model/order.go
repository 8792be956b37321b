package model

import (
	"cmp"
	"math"
	"slices"
)

const (
	// ReadingRowThreshold groups reading-mode elements into visual rows.
	ReadingRowThreshold = 15.0
	// FocusRowThreshold groups panel elements for coarse focus order.
	FocusRowThreshold = 20.0
)

// OrderByPosition stable-sorts items top-to-bottom, left-to-right. Two items
// whose top edges are within threshold of each other are on the same row and
// order by x; otherwise they order by y.
//
// The same-row relation is not transitive: items spread across several
// nearly-equal y bands can compare inconsistently, so the result is only a
// best-effort reading order for such layouts.
func OrderByPosition[T any](items []T, bounds func(T) Rect, threshold float64) {
	slices.SortStableFunc(items, func(a, b T) int {
		ra, rb := bounds(a), bounds(b)
		if math.Abs(ra.Y-rb.Y) <= threshold {
			return cmp.Compare(ra.X, rb.X)
		}
		return cmp.Compare(ra.Y, rb.Y)
	})
}
