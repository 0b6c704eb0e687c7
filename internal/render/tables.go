package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"babytrack/internal/core"
	"babytrack/internal/stats"
)

const (
	SectionWeight   Section = "weight"
	SectionHeight   Section = "height"
	SectionFeedings Section = "feedings"
)

// Section names one block of the statistics view.
type Section string

// Sections lists every section in display order.
func Sections() []Section {
	return []Section{SectionWeight, SectionHeight, SectionFeedings}
}

func ParseSection(s string) (Section, error) {
	switch sec := Section(s); sec {
	case SectionWeight, SectionHeight, SectionFeedings:
		return sec, nil
	default:
		return "", fmt.Errorf("unknown statistic %q: must be weight, height or feedings", s)
	}
}

// Renderer writes localized views to a terminal.
type Renderer struct {
	l *Localizer
}

func NewRenderer(l *Localizer) *Renderer {
	return &Renderer{l: l}
}

// Localizer returns the localizer the renderer writes with.
func (r *Renderer) Localizer() *Localizer {
	return r.l
}

func (r *Renderer) newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	translated := make([]string, len(header))
	for i, h := range header {
		translated[i] = r.l.Sprintf(h)
	}
	table.SetHeader(translated)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// GrowthHistory writes one row per growth record, in the order given.
func (r *Renderer) GrowthHistory(w io.Writer, items []core.GrowthRecord) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, r.l.Sprintf("No records yet."))
		return err
	}

	table := r.newTable(w, "ID", "Date", "Name", "Age (months)", "Weight (kg)", "Height (cm)")
	for _, g := range items {
		height := "-"
		if g.HasHeight() {
			height = r.l.Decimal(*g.HeightCm, 1)
		}
		table.Append([]string{
			g.ID,
			r.l.DateTime(g.RecordedAt),
			g.Name,
			strconv.Itoa(g.AgeMonths),
			r.l.Decimal(g.WeightKg, 2),
			height,
		})
	}
	table.Render()
	return nil
}

// FeedingHistory writes one row per feeding event, in the order given.
func (r *Renderer) FeedingHistory(w io.Writer, items []core.FeedingEvent, emptyMessage string) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, r.l.Sprintf(emptyMessage))
		return err
	}

	table := r.newTable(w, "ID", "Date", "Type", "Amount (ml)", "Notes")
	for _, e := range items {
		amount := "-"
		if ml, ok := e.FormulaMl(); ok {
			amount = r.l.Decimal(ml, 0)
		}
		table.Append([]string{
			e.ID,
			r.l.DateTime(e.OccurredAt),
			r.l.FeedingType(e.Type),
			amount,
			e.Notes,
		})
	}
	table.Render()
	return nil
}

// Status writes the baby's current state and how many feedings happened
// today.
func (r *Renderer) Status(w io.Writer, current core.GrowthRecord, ok bool, today []core.FeedingEvent) error {
	if !ok {
		if _, err := fmt.Fprintln(w, r.l.Sprintf("No records yet.")); err != nil {
			return err
		}
	} else {
		lines := []string{
			r.l.Sprintf("Baby: %s", current.Name),
			r.l.Sprintf("Age: %d months", current.AgeMonths),
			r.l.Sprintf("Weight: %s kg", r.l.Decimal(current.WeightKg, 2)),
		}
		if current.HasHeight() {
			lines = append(lines, r.l.Sprintf("Height: %s cm", r.l.Decimal(*current.HeightCm, 1)))
		}
		lines = append(lines, r.l.Sprintf("Last update: %s", r.l.DateTime(current.RecordedAt)))
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, r.l.Sprintf("Today's feedings: %d", len(today))); err != nil {
		return err
	}
	return r.FeedingHistory(w, today, "No feedings today.")
}

// Report writes the requested sections of a statistics report. With no
// sections, all of them are written.
func (r *Renderer) Report(w io.Writer, report stats.Report, sections ...Section) error {
	if len(sections) == 0 {
		sections = Sections()
	}

	if report.BabyName != "" {
		fmt.Fprintln(w, r.l.Sprintf("Baby: %s", report.BabyName))
	}
	fmt.Fprintln(w, r.l.Sprintf("Period: %s", r.l.Period(report.Period)))

	for _, sec := range sections {
		fmt.Fprintln(w)
		var err error
		switch sec {
		case SectionWeight:
			err = r.growthSection(w, "Weight evolution", "Weight (kg)", report.Weight)
		case SectionHeight:
			err = r.growthSection(w, "Height evolution", "Height (cm)", report.Height)
		case SectionFeedings:
			err = r.feedingSection(w, report.Feeding)
		default:
			err = fmt.Errorf("unknown statistic %q", sec)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) growthSection(w io.Writer, title, column string, chart stats.GrowthChart) error {
	fmt.Fprintln(w, r.l.Sprintf(title))
	if !chart.HasData() {
		_, err := fmt.Fprintln(w, r.l.Sprintf("No data for this period."))
		return err
	}

	unit := chart.Field.Unit()
	fmt.Fprintln(w, r.l.Sprintf("Last: %s %s, mean: %s %s",
		r.l.Decimal(chart.Last, 2), unit, r.l.Decimal(chart.Mean, 2), unit))

	table := r.newTable(w, "Date", column)
	for _, p := range chart.Series {
		table.Append([]string{r.l.Date(p.Date), r.l.Decimal(p.Value, 2)})
	}
	table.Render()
	return nil
}

func (r *Renderer) feedingSection(w io.Writer, chart stats.FeedingChart) error {
	fmt.Fprintln(w, r.l.Sprintf("Feeding distribution"))
	if chart.TotalFeedings == 0 {
		_, err := fmt.Fprintln(w, r.l.Sprintf("No data for this period."))
		return err
	}

	fmt.Fprintln(w, r.l.Sprintf("%d feedings in %d days", chart.TotalFeedings, chart.Days))

	dist := r.newTable(w, "Type", "Count", "Share")
	for _, s := range chart.Slices {
		dist.Append([]string{
			r.l.Label(s.Label),
			strconv.Itoa(int(s.Value)),
			r.l.Decimal(s.Percentage, 1) + "%",
		})
	}
	dist.Render()

	daily := r.newTable(w, "Day", "Feedings", "Formula (ml)")
	for _, d := range chart.Daily {
		daily.Append([]string{d.Label(), strconv.Itoa(d.Count), r.l.Decimal(d.TotalFormulaMl, 0)})
	}
	daily.Render()

	if chart.HasFormula {
		fmt.Fprintln(w, r.l.Sprintf("Total formula: %s ml", r.l.Decimal(chart.Distribution.TotalFormulaMl, 0)))
		if chart.HasAverageFormulaData {
			fmt.Fprintln(w, r.l.Sprintf("Average formula per day: %s ml", r.l.Decimal(chart.AverageFormulaPerDay, 0)))
		}
	}
	return nil
}
