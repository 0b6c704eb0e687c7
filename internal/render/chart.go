package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"babytrack/internal/stats"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data for this period")

// ChartFormat is an image encoding supported for pie charts.
type ChartFormat string

const (
	PNG ChartFormat = "png"
	SVG ChartFormat = "svg"
)

const (
	chartWidth  = 640
	chartHeight = 640
)

// ChartFormatFromPath picks the format from the file extension.
func ChartFormatFromPath(path string) (ChartFormat, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q: use .png or .svg", ext)
	}
}

// PieChart is a titled set of slices ready to draw.
type PieChart struct {
	Title  string
	Slices []stats.PieSlice
}

// ChartFor selects the slices for one statistics section and translates
// their labels.
func (r *Renderer) ChartFor(report stats.Report, sec Section) (PieChart, error) {
	var (
		title  string
		slices []stats.PieSlice
	)
	switch sec {
	case SectionWeight:
		title, slices = r.l.Sprintf("Weight evolution"), report.Weight.Slices
	case SectionHeight:
		title, slices = r.l.Sprintf("Height evolution"), report.Height.Slices
	case SectionFeedings:
		title, slices = r.l.Sprintf("Feeding distribution"), report.Feeding.Slices
	default:
		return PieChart{}, fmt.Errorf("unknown statistic %q", sec)
	}

	translated := make([]stats.PieSlice, len(slices))
	for i, s := range slices {
		s.Label = r.l.Label(s.Label)
		translated[i] = s
	}
	return PieChart{
		Title:  fmt.Sprintf("%s (%s)", title, r.l.Period(report.Period)),
		Slices: translated,
	}, nil
}

// WritePieChart draws the slices with their own colors. Slices are passed
// in order, so the drawn angles match the computed geometry.
func WritePieChart(w io.Writer, format ChartFormat, pie PieChart) error {
	if len(pie.Slices) == 0 {
		return ErrNoData
	}

	values := make([]chart.Value, len(pie.Slices))
	for i, s := range pie.Slices {
		values[i] = chart.Value{
			Value: s.Value,
			Label: fmt.Sprintf("%s %.0f%%", s.Label, s.Percentage),
			Style: chart.Style{
				FillColor:   toDrawing(s.Color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
			},
		}
	}

	pc := chart.PieChart{
		Title:  pie.Title,
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
	}

	var provider chart.RendererProvider
	switch format {
	case PNG:
		provider = chart.PNG
	case SVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}

	if err := pc.Render(provider, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

func toDrawing(c stats.Color) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
