package model

import (
	"slices"
	"testing"
)

type placed struct {
	name string
	r    Rect
}

func names(items []placed) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

func TestOrderByPosition(t *testing.T) {
	items := []placed{
		{"footer", Rect{X: 0, Y: 400, Width: 10, Height: 10}},
		{"right", Rect{X: 100, Y: 10, Width: 10, Height: 10}},
		{"left", Rect{X: 10, Y: 22, Width: 10, Height: 10}},
		{"middle", Rect{X: 50, Y: 50, Width: 10, Height: 10}},
	}
	OrderByPosition(items, func(p placed) Rect { return p.r }, ReadingRowThreshold)

	want := []string{"left", "right", "middle", "footer"}
	if got := names(items); !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestOrderByPosition_Stable(t *testing.T) {
	items := []placed{{"a", Rect{X: 5, Y: 5}}, {"b", Rect{X: 5, Y: 5}}, {"c", Rect{X: 5, Y: 5}}}
	OrderByPosition(items, func(p placed) Rect { return p.r }, FocusRowThreshold)
	if got := names(items); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("equal positions reordered: %v", got)
	}
}

func TestOrderByPosition_Threshold(t *testing.T) {
	// 18px apart: one row at the focus threshold, two at the reading one.
	mk := func() []placed {
		return []placed{{"lower-left", Rect{X: 0, Y: 18}}, {"upper-right", Rect{X: 100, Y: 0}}}
	}
	bounds := func(p placed) Rect { return p.r }

	reading := mk()
	OrderByPosition(reading, bounds, ReadingRowThreshold)
	if got := names(reading); got[0] != "upper-right" {
		t.Errorf("reading order = %v", got)
	}

	focus := mk()
	OrderByPosition(focus, bounds, FocusRowThreshold)
	if got := names(focus); got[0] != "lower-left" {
		t.Errorf("focus order = %v", got)
	}
}

// Staircase layouts make the same-row relation non-transitive. The result
// is unspecified but must still be a permutation of the input.
func TestOrderByPosition_NonTransitive(t *testing.T) {
	items := []placed{
		{"a", Rect{X: 30, Y: 0}},
		{"b", Rect{X: 20, Y: 10}},
		{"c", Rect{X: 10, Y: 20}},
	}
	OrderByPosition(items, func(p placed) Rect { return p.r }, ReadingRowThreshold)
	got := names(items)
	slices.Sort(got)
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("items lost or duplicated: %v", got)
	}
}
