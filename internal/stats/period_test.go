package stats

import (
	"testing"
	"time"

	"babytrack/internal/core"
)

func feeding(id string, typ core.FeedingType, at time.Time) core.FeedingEvent {
	return core.FeedingEvent{ID: id, Type: typ, OccurredAt: at}
}

func formula(id string, ml float64, at time.Time) core.FeedingEvent {
	return core.FeedingEvent{ID: id, Type: core.Formula, AmountMl: core.Float(ml), OccurredAt: at}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{in: "week", want: Week},
		{in: " Month ", want: Month},
		{in: "ALL", want: All},
		{in: "year", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePeriod(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeekCutoff(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	got, bounded := WeekCutoff{}.Cutoff(now)
	if !bounded {
		t.Fatalf("week must be bounded")
	}
	want := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WeekCutoff = %v, want %v", got, want)
	}
}

func TestMonthCutoff(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "mid month",
			now:  time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC),
			want: time.Date(2025, 2, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "end of march clamps to february",
			now:  time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC),
			want: time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "leap year",
			now:  time.Date(2024, 3, 30, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "january goes back a year",
			now:  time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "may 31 clamps to april 30",
			now:  time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bounded := MonthCutoff{}.Cutoff(tt.now)
			if !bounded {
				t.Fatalf("month must be bounded")
			}
			if !got.Equal(tt.want) {
				t.Errorf("MonthCutoff(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestFilterWeekBoundary(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -7)

	events := []core.FeedingEvent{
		feeding("before", core.BreastMilk, cutoff.Add(-time.Second)),
		feeding("at-cutoff", core.BreastMilk, cutoff),
		feeding("inside", core.SolidFood, now.Add(-time.Hour)),
		feeding("at-now", core.BreastMilk, now),
		feeding("future", core.BreastMilk, now.Add(time.Minute)),
	}

	got, err := Filter(events, Week, now)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	want := []string{"at-cutoff", "inside", "at-now"}
	if len(ids) != len(want) {
		t.Fatalf("Filter(Week) = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Filter(Week)[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestFilterAllIsIdentity(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []core.FeedingEvent{
		feeding("old", core.BreastMilk, now.AddDate(-2, 0, 0)),
		feeding("future", core.Formula, now.AddDate(0, 0, 3)),
		feeding("now", core.SolidFood, now),
	}

	got, err := Filter(events, All, now)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("Filter(All) returned %d records, want %d", len(got), len(events))
	}
	for i := range events {
		if got[i].ID != events[i].ID {
			t.Errorf("Filter(All) reordered records: got %s at %d", got[i].ID, i)
		}
	}
}

func TestFilterIsPureInNow(t *testing.T) {
	events := []core.FeedingEvent{
		feeding("a", core.BreastMilk, time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)),
		feeding("b", core.BreastMilk, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)),
	}

	march := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	first, _ := Filter(events, Month, march)
	second, _ := Filter(events, Month, march)
	if len(first) != len(second) {
		t.Fatalf("same now must give same result: %d vs %d", len(first), len(second))
	}
	if len(first) != 1 || first[0].ID != "b" {
		t.Fatalf("Filter(Month) = %+v, want only b", first)
	}

	later, _ := Filter(events, Month, time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC))
	if len(later) != 0 {
		t.Fatalf("moving now forward must drop old records, got %d", len(later))
	}
	if events[0].ID != "a" || events[1].ID != "b" {
		t.Fatalf("Filter mutated its input")
	}
}

func TestFilterUnknownPeriod(t *testing.T) {
	if _, err := Filter([]core.FeedingEvent{}, Period("fortnight"), time.Now()); err == nil {
		t.Fatalf("expected error for unknown period")
	}
}

func TestOnDay(t *testing.T) {
	day := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	events := []core.FeedingEvent{
		feeding("yesterday", core.BreastMilk, time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)),
		feeding("morning", core.BreastMilk, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
		feeding("night", core.Formula, time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)),
		feeding("tomorrow", core.SolidFood, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)),
	}

	got := OnDay(events, day)
	if len(got) != 2 || got[0].ID != "morning" || got[1].ID != "night" {
		t.Fatalf("OnDay = %+v, want morning and night", got)
	}
}
