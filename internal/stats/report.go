package stats

import (
	"fmt"
	"slices"
	"time"

	mstats "github.com/montanaflynn/stats"

	"babytrack/internal/core"
	"babytrack/internal/records"
)

// GrowthChart is the derived view of one growth measurement over a period.
type GrowthChart struct {
	Field  Field
	Series []SeriesPoint // oldest first
	Slices []PieSlice    // one per measurement, smallest value first
	Last   float64       // value of the newest point, the chart's center figure
	Mean   float64
}

// HasData reports whether the period holds any measurement of the field.
func (g GrowthChart) HasData() bool {
	return len(g.Series) > 0
}

// FeedingChart is the derived view of feedings over a period.
type FeedingChart struct {
	Daily         []DailyFeedingStat
	Distribution  TypeDistribution
	Slices        []PieSlice
	TotalFeedings int
	Days          int // distinct days with at least one feeding

	HasFormula            bool
	AverageFormulaPerDay  float64
	HasAverageFormulaData bool
}

// Report bundles every statistic shown for a period.
type Report struct {
	Period   Period
	Now      time.Time
	BabyName string
	Weight   GrowthChart
	Height   GrowthChart
	Feeding  FeedingChart
}

// BuildReport filters both collections to period and derives every chart.
// The baby name comes from the newest growth record regardless of period.
func BuildReport(growth []core.GrowthRecord, feedings []core.FeedingEvent, period Period, now time.Time) (Report, error) {
	inGrowth, err := Filter(growth, period, now)
	if err != nil {
		return Report{}, fmt.Errorf("filter growth records: %w", err)
	}
	inFeedings, err := Filter(feedings, period, now)
	if err != nil {
		return Report{}, fmt.Errorf("filter feeding events: %w", err)
	}

	report := Report{
		Period:  period,
		Now:     now,
		Weight:  BuildGrowthChart(inGrowth, Weight),
		Height:  BuildGrowthChart(inGrowth, Height),
		Feeding: BuildFeedingChart(inFeedings),
	}
	if latest, ok := records.Latest(growth); ok {
		report.BabyName = latest.Name
	}
	return report, nil
}

// BuildGrowthChart derives the series and pie geometry for one field.
func BuildGrowthChart(growth []core.GrowthRecord, field Field) GrowthChart {
	chart := GrowthChart{Field: field, Series: GrowthEvolution(growth, field)}
	if len(chart.Series) == 0 {
		return chart
	}
	chart.Last = chart.Series[len(chart.Series)-1].Value

	values := make(mstats.Float64Data, len(chart.Series))
	items := make([]PieItem, len(chart.Series))
	for i, p := range chart.Series {
		values[i] = p.Value
		items[i] = PieItem{Value: p.Value, Label: p.Label()}
	}
	if mean, err := mstats.Mean(values); err == nil {
		chart.Mean = mean
	}

	slices.SortStableFunc(items, func(a, b PieItem) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		default:
			return 0
		}
	})
	chart.Slices = BuildPieSlices(items, HuesFor(field))
	return chart
}

// BuildFeedingChart derives daily totals, the type distribution and the
// formula summary from already filtered events.
func BuildFeedingChart(events []core.FeedingEvent) FeedingChart {
	dist := TypeDistributionOf(events)
	daily := DailyFeedingStats(events)

	chart := FeedingChart{
		Daily:         daily,
		Distribution:  dist,
		Slices:        BuildPieSlices(dist.PieItems(), FeedingPalette()),
		TotalFeedings: dist.Counts.Total(),
		Days:          len(daily),
		HasFormula:    dist.Counts.Formula > 0,
	}
	chart.AverageFormulaPerDay, chart.HasAverageFormulaData = AveragePerDay(dist.TotalFormulaMl, len(daily))
	return chart
}
