package stats

import (
	"fmt"
	"slices"
	"strings"
	"time"

	mstats "github.com/montanaflynn/stats"

	"babytrack/internal/core"
)

const (
	Weight Field = "weight"
	Height Field = "height"
)

// Field selects which growth measurement a series follows.
type Field string

func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case Weight, Height:
		return f, nil
	default:
		return "", fmt.Errorf("unknown growth field: %q", s)
	}
}

// Unit returns the measurement unit of the field.
func (f Field) Unit() string {
	if f == Height {
		return "cm"
	}
	return "kg"
}

// DailyFeedingStat summarizes one calendar day of feedings.
type DailyFeedingStat struct {
	Date           time.Time // midnight of the day, in the events' location
	Count          int
	TotalFormulaMl float64
}

// Key returns the day as YYYY-MM-DD.
func (d DailyFeedingStat) Key() string {
	return d.Date.Format(time.DateOnly)
}

// Label returns the short d/m label used by chart legends.
func (d DailyFeedingStat) Label() string {
	return DayLabel(d.Date)
}

// DayLabel formats t as d/m.
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
}

// TypeCounts counts feedings per type.
type TypeCounts struct {
	BreastMilk int
	Formula    int
	SolidFood  int
}

// Of returns the count for t.
func (c TypeCounts) Of(t core.FeedingType) int {
	switch t {
	case core.BreastMilk:
		return c.BreastMilk
	case core.Formula:
		return c.Formula
	case core.SolidFood:
		return c.SolidFood
	default:
		return 0
	}
}

// Total returns the number of counted feedings.
func (c TypeCounts) Total() int {
	return c.BreastMilk + c.Formula + c.SolidFood
}

// TypeDistribution is the per-type breakdown of a set of feedings.
type TypeDistribution struct {
	Counts         TypeCounts
	TotalFormulaMl float64
}

// PieItems returns one categorical item per feeding type with a non-zero
// count, in FeedingTypes order.
func (d TypeDistribution) PieItems() []PieItem {
	var items []PieItem
	for _, t := range core.FeedingTypes() {
		if n := d.Counts.Of(t); n > 0 {
			items = append(items, PieItem{Value: float64(n), Label: t.Label()})
		}
	}
	return items
}

// SeriesPoint is one growth measurement in time.
type SeriesPoint struct {
	Date     time.Time
	Value    float64
	RecordID string
}

// Label returns the d/m label of the point.
func (p SeriesPoint) Label() string {
	return DayLabel(p.Date)
}

// DailyFeedingStats groups events by calendar day in the location of the
// first event, oldest day first.
func DailyFeedingStats(events []core.FeedingEvent) []DailyFeedingStat {
	if len(events) == 0 {
		return []DailyFeedingStat{}
	}
	return DailyFeedingStatsIn(events, events[0].OccurredAt.Location())
}

// DailyFeedingStatsIn groups events by their calendar day in loc, oldest
// day first.
func DailyFeedingStatsIn(events []core.FeedingEvent, loc *time.Location) []DailyFeedingStat {
	byDay := map[string]*DailyFeedingStat{}
	for _, e := range events {
		y, m, d := e.OccurredAt.In(loc).Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, loc)
		key := day.Format(time.DateOnly)

		stat, ok := byDay[key]
		if !ok {
			stat = &DailyFeedingStat{Date: day}
			byDay[key] = stat
		}
		stat.Count++
		if ml, ok := e.FormulaMl(); ok {
			stat.TotalFormulaMl += ml
		}
	}

	out := make([]DailyFeedingStat, 0, len(byDay))
	for _, stat := range byDay {
		out = append(out, *stat)
	}
	slices.SortFunc(out, func(a, b DailyFeedingStat) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// TypeDistributionOf counts events per type and sums formula amounts.
func TypeDistributionOf(events []core.FeedingEvent) TypeDistribution {
	var dist TypeDistribution
	for _, e := range events {
		switch e.Type {
		case core.BreastMilk:
			dist.Counts.BreastMilk++
		case core.Formula:
			dist.Counts.Formula++
			if ml, ok := e.FormulaMl(); ok {
				dist.TotalFormulaMl += ml
			}
		case core.SolidFood:
			dist.Counts.SolidFood++
		}
	}
	return dist
}

// GrowthEvolution returns the chosen measurement over time, oldest first.
// Records without a height are left out of the height series.
func GrowthEvolution(records []core.GrowthRecord, field Field) []SeriesPoint {
	out := make([]SeriesPoint, 0, len(records))
	for _, r := range records {
		var v float64
		switch field {
		case Weight:
			v = r.WeightKg
		case Height:
			if !r.HasHeight() {
				continue
			}
			v = *r.HeightCm
		default:
			continue
		}
		out = append(out, SeriesPoint{Date: r.RecordedAt, Value: v, RecordID: r.ID})
	}
	slices.SortStableFunc(out, func(a, b SeriesPoint) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// AveragePerDay divides total by days and rounds to the nearest integer.
// It reports false when there are no days to average over.
func AveragePerDay(total float64, days int) (float64, bool) {
	if days <= 0 {
		return 0, false
	}
	avg, err := mstats.Round(total/float64(days), 0)
	if err != nil {
		return 0, false
	}
	return avg, true
}
