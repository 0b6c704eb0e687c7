// Package services provides the input and query operations the command line
// runs against the record stores.
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"babytrack/internal/core"
	"babytrack/internal/log"
	"babytrack/internal/records"
	"babytrack/internal/stats"
	"babytrack/internal/storage"
)

// GrowthInput holds the fields a caller supplies for a new growth record.
type GrowthInput struct {
	Name      string
	AgeMonths int
	WeightKg  float64
	HeightCm  *float64
}

// FeedingInput holds the fields a caller supplies for a new feeding event.
// A zero OccurredAt means now.
type FeedingInput struct {
	Type       core.FeedingType
	AmountMl   *float64
	Notes      string
	OccurredAt time.Time
}

// Snapshot is the content of both collections read at one point.
type Snapshot struct {
	Growth   []core.GrowthRecord
	Feedings []core.FeedingEvent
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator replaces core.NewID.
func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

// WithLocation sets the zone used for calendar days.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) { t.loc = loc }
}

// Tracker records growth and feedings and answers questions about them.
type Tracker struct {
	growth   *records.Store[core.GrowthRecord]
	feedings *records.Store[core.FeedingEvent]
	logger   *log.Logger

	now   func() time.Time
	newID func() string
	loc   *time.Location
}

func NewTracker(medium storage.Medium, logger *log.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	storeLogger := logger.WithComponent(log.ComponentRecords).Slog()

	t := &Tracker{
		growth:   records.NewGrowthStore(medium, storeLogger),
		feedings: records.NewFeedingStore(medium, storeLogger),
		logger:   logger.WithComponent(log.ComponentTracker),
		now:      time.Now,
		newID:    core.NewID,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the current instant in the tracker's location.
func (t *Tracker) Now() time.Time {
	return t.now().In(t.loc)
}

// RecordGrowth validates the input, stamps it and appends it.
func (t *Tracker) RecordGrowth(ctx context.Context, in GrowthInput) (core.GrowthRecord, error) {
	r := core.GrowthRecord{
		ID:         t.newID(),
		Name:       in.Name,
		AgeMonths:  in.AgeMonths,
		WeightKg:   in.WeightKg,
		HeightCm:   in.HeightCm,
		RecordedAt: t.Now(),
	}
	if err := r.Validate(); err != nil {
		return core.GrowthRecord{}, err
	}

	if err := t.growth.Append(ctx, r); err != nil {
		t.logger.ErrorContext(ctx, "Failed to record growth", log.NewFields().WithRecord(core.GrowthCollection, r.ID).WithError(err).ToSlice()...)
		return core.GrowthRecord{}, fmt.Errorf("record growth: %w", err)
	}

	t.logger.InfoContext(ctx, "Growth recorded", log.FieldRecordID, r.ID, log.FieldWeightKg, r.WeightKg)
	return r, nil
}

// RecordFeeding validates the input, stamps it and appends it. An amount on
// a non-formula feeding is dropped.
func (t *Tracker) RecordFeeding(ctx context.Context, in FeedingInput) (core.FeedingEvent, error) {
	at := in.OccurredAt
	if at.IsZero() {
		at = t.Now()
	}
	e := core.FeedingEvent{
		ID:         t.newID(),
		Type:       in.Type,
		AmountMl:   in.AmountMl,
		Notes:      in.Notes,
		OccurredAt: at,
	}.Normalize()
	if err := e.Validate(); err != nil {
		return core.FeedingEvent{}, err
	}

	if err := t.feedings.Append(ctx, e); err != nil {
		t.logger.ErrorContext(ctx, "Failed to record feeding", log.NewFields().WithRecord(core.FeedingCollection, e.ID).WithError(err).ToSlice()...)
		return core.FeedingEvent{}, fmt.Errorf("record feeding: %w", err)
	}

	args := []any{log.FieldRecordID, e.ID, log.FieldFeedingType, e.Type.String()}
	if ml, ok := e.FormulaMl(); ok {
		args = append(args, log.FieldAmountMl, ml)
	}
	t.logger.InfoContext(ctx, "Feeding recorded", args...)
	return e, nil
}

// DeleteGrowth removes a growth record. A missing id is not an error.
func (t *Tracker) DeleteGrowth(ctx context.Context, id string) error {
	if err := t.growth.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete growth record: %w", err)
	}
	t.logger.InfoContext(ctx, "Delete requested", log.NewFields().WithOperation(log.OpDelete).WithRecord(core.GrowthCollection, id).ToSlice()...)
	return nil
}

// DeleteFeeding removes a feeding event. A missing id is not an error.
func (t *Tracker) DeleteFeeding(ctx context.Context, id string) error {
	if err := t.feedings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete feeding event: %w", err)
	}
	t.logger.InfoContext(ctx, "Delete requested", log.NewFields().WithOperation(log.OpDelete).WithRecord(core.FeedingCollection, id).ToSlice()...)
	return nil
}

// CurrentState returns the most recent growth record, if any.
func (t *Tracker) CurrentState(ctx context.Context) (core.GrowthRecord, bool, error) {
	r, ok, err := t.growth.Latest(ctx)
	if err != nil {
		return core.GrowthRecord{}, false, fmt.Errorf("current state: %w", err)
	}
	if ok {
		r.RecordedAt = r.RecordedAt.In(t.loc)
	}
	return r, ok, nil
}

// GrowthHistory returns every growth record, newest first.
func (t *Tracker) GrowthHistory(ctx context.Context) ([]core.GrowthRecord, error) {
	items, err := t.growth.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("growth history: %w", err)
	}
	return records.SortDescending(t.growthIn(items)), nil
}

// FeedingHistory returns every feeding event, newest first.
func (t *Tracker) FeedingHistory(ctx context.Context) ([]core.FeedingEvent, error) {
	items, err := t.feedings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("feeding history: %w", err)
	}
	return records.SortDescending(t.feedingsIn(items)), nil
}

// TodayFeedings returns the feedings on the current calendar day, newest
// first.
func (t *Tracker) TodayFeedings(ctx context.Context) ([]core.FeedingEvent, error) {
	items, err := t.FeedingHistory(ctx)
	if err != nil {
		return nil, err
	}
	return stats.OnDay(items, t.Now()), nil
}

// Snapshot reads both collections concurrently.
func (t *Tracker) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := t.growth.Get(gctx)
		if err != nil {
			return err
		}
		snap.Growth = t.growthIn(items)
		return nil
	})
	g.Go(func() error {
		items, err := t.feedings.Get(gctx)
		if err != nil {
			return err
		}
		snap.Feedings = t.feedingsIn(items)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// Report builds the statistics for period as of now.
func (t *Tracker) Report(ctx context.Context, period stats.Period) (stats.Report, error) {
	start := time.Now()
	snap, err := t.Snapshot(ctx)
	if err != nil {
		return stats.Report{}, err
	}

	report, err := stats.BuildReport(snap.Growth, snap.Feedings, period, t.Now())
	if err != nil {
		return stats.Report{}, fmt.Errorf("build report: %w", err)
	}

	t.logger.DebugContext(ctx, "Report built", log.NewFields().
		WithOperation(log.OpReport).
		WithPeriod(period.String()).
		WithDuration(start).
		ToSlice()...)
	return report, nil
}

// growthIn moves timestamps to the tracker's location so calendar days
// follow it.
func (t *Tracker) growthIn(items []core.GrowthRecord) []core.GrowthRecord {
	out := make([]core.GrowthRecord, len(items))
	for i, r := range items {
		r.RecordedAt = r.RecordedAt.In(t.loc)
		out[i] = r
	}
	return out
}

func (t *Tracker) feedingsIn(items []core.FeedingEvent) []core.FeedingEvent {
	out := make([]core.FeedingEvent, len(items))
	for i, e := range items {
		e.OccurredAt = e.OccurredAt.In(t.loc)
		out[i] = e
	}
	return out
}
