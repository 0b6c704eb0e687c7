package stats

import (
	mstats "github.com/montanaflynn/stats"
)

// PieItem is one weighted entry of a distribution.
type PieItem struct {
	Value float64
	Label string
}

// PieSlice describes one slice independently of how it is drawn. Angles
// are in degrees, clockwise from the chart's origin.
type PieSlice struct {
	StartAngleDeg float64
	SweepAngleDeg float64
	Percentage    float64
	Value         float64
	Color         Color
	Label         string
}

// BuildPieSlices lays items out around the circle in the order given; sort
// before calling if the chart needs a particular order. It returns nil for
// an empty input or a zero total so callers can show a "no data" state.
func BuildPieSlices(items []PieItem, scheme ColorScheme) []PieSlice {
	if len(items) == 0 {
		return nil
	}

	values := make(mstats.Float64Data, len(items))
	for i, it := range items {
		values[i] = it.Value
	}
	total, err := mstats.Sum(values)
	if err != nil || total <= 0 {
		return nil
	}

	slices := make([]PieSlice, len(items))
	start := 0.0
	for i, it := range items {
		pct := it.Value / total * 100
		sweep := pct * 3.6
		slices[i] = PieSlice{
			StartAngleDeg: start,
			SweepAngleDeg: sweep,
			Percentage:    pct,
			Value:         it.Value,
			Color:         scheme.ColorAt(i, len(items), it.Label),
			Label:         it.Label,
		}
		start += sweep
	}
	return slices
}
