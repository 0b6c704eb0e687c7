package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"babytrack/internal/core"
)

// GrowthRow is the CSV shape of a growth record.
type GrowthRow struct {
	ID         string `csv:"id"`
	Name       string `csv:"name"`
	AgeMonths  int    `csv:"age_months"`
	WeightKg   string `csv:"weight_kg"`
	HeightCm   string `csv:"height_cm"`
	RecordedAt string `csv:"recorded_at"`
}

// FeedingRow is the CSV shape of a feeding event.
type FeedingRow struct {
	ID         string `csv:"id"`
	Type       string `csv:"type"`
	AmountMl   string `csv:"amount_ml"`
	Notes      string `csv:"notes"`
	OccurredAt string `csv:"occurred_at"`
}

// GrowthRows converts records to CSV rows. Numbers use a dot and
// timestamps RFC 3339 so the file reads the same in every locale.
func GrowthRows(items []core.GrowthRecord) []GrowthRow {
	rows := make([]GrowthRow, len(items))
	for i, g := range items {
		row := GrowthRow{
			ID:         g.ID,
			Name:       g.Name,
			AgeMonths:  g.AgeMonths,
			WeightKg:   formatFloat(g.WeightKg),
			RecordedAt: g.RecordedAt.Format(time.RFC3339),
		}
		if g.HasHeight() {
			row.HeightCm = formatFloat(*g.HeightCm)
		}
		rows[i] = row
	}
	return rows
}

// FeedingRows converts events to CSV rows.
func FeedingRows(items []core.FeedingEvent) []FeedingRow {
	rows := make([]FeedingRow, len(items))
	for i, e := range items {
		row := FeedingRow{
			ID:         e.ID,
			Type:       e.Type.String(),
			Notes:      e.Notes,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
		if ml, ok := e.FormulaMl(); ok {
			row.AmountMl = formatFloat(ml)
		}
		rows[i] = row
	}
	return rows
}

// ExportGrowth writes records as CSV with a header row.
func ExportGrowth(w io.Writer, items []core.GrowthRecord) error {
	rows := GrowthRows(items)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("export growth records: %w", err)
	}
	return nil
}

// ExportFeedings writes events as CSV with a header row.
func ExportFeedings(w io.Writer, items []core.FeedingEvent) error {
	rows := FeedingRows(items)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("export feeding events: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
