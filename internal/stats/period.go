// Package stats derives time-windowed statistics and chart geometry from
// record snapshots.
//
// Every function here is pure: inputs are never mutated and the reference
// instant is always passed in by the caller.
package stats

import (
	"fmt"
	"strings"
	"time"

	"babytrack/internal/core"
)

const (
	Week  Period = "week"
	Month Period = "month"
	All   Period = "all"
)

// Period is a named time window ending at a reference instant.
type Period string

// Periods lists the periods in display order.
func Periods() []Period {
	return []Period{Week, Month, All}
}

func (p Period) String() string {
	return string(p)
}

// ParsePeriod accepts a period name case-insensitively.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := cutoffStrategies[p]; !ok {
		return "", fmt.Errorf("unknown period: %q", s)
	}
	return p, nil
}

// CutoffStrategy computes the earliest admitted instant for a period.
type CutoffStrategy interface {
	// Cutoff returns the inclusive lower bound derived from now, or false
	// when the period is unbounded.
	Cutoff(now time.Time) (time.Time, bool)
}

// WeekCutoff admits the seven calendar days before now.
type WeekCutoff struct{}

func (WeekCutoff) Cutoff(now time.Time) (time.Time, bool) {
	return now.AddDate(0, 0, -7), true
}

// MonthCutoff admits one calendar month before now. When the previous month
// is shorter, the day is clamped to its last day (31 March -> 28/29 February).
type MonthCutoff struct{}

func (MonthCutoff) Cutoff(now time.Time) (time.Time, bool) {
	year, month, day := now.Date()
	lastDayOfPrev := time.Date(year, month, 0, 0, 0, 0, 0, now.Location()).Day()
	if day > lastDayOfPrev {
		day = lastDayOfPrev
	}
	return time.Date(year, month-1, day, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location()), true
}

// AllCutoff admits everything.
type AllCutoff struct{}

func (AllCutoff) Cutoff(time.Time) (time.Time, bool) {
	return time.Time{}, false
}

var cutoffStrategies = map[Period]CutoffStrategy{
	Week:  WeekCutoff{},
	Month: MonthCutoff{},
	All:   AllCutoff{},
}

// GetCutoffStrategy returns the strategy for p.
func GetCutoffStrategy(p Period) (CutoffStrategy, error) {
	s, ok := cutoffStrategies[p]
	if !ok {
		return nil, fmt.Errorf("unknown period: %q", string(p))
	}
	return s, nil
}

// Filter narrows items to the records whose timestamp lies in
// [cutoff, now]. All returns items unchanged.
func Filter[T core.Record](items []T, p Period, now time.Time) ([]T, error) {
	strategy, err := GetCutoffStrategy(p)
	if err != nil {
		return nil, err
	}
	cutoff, bounded := strategy.Cutoff(now)
	if !bounded {
		return items, nil
	}

	out := make([]T, 0, len(items))
	for _, r := range items {
		ts := r.Timestamp()
		if ts.Before(cutoff) || ts.After(now) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// OnDay keeps the records that fall on day's calendar date, in day's
// location.
func OnDay[T core.Record](items []T, day time.Time) []T {
	y, m, d := day.Date()
	out := make([]T, 0, len(items))
	for _, r := range items {
		ry, rm, rd := r.Timestamp().In(day.Location()).Date()
		if ry == y && rm == m && rd == d {
			out = append(out, r)
		}
	}
	return out
}
