package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"babytrack/internal/core"
	"babytrack/internal/stats"
)

var at = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func enRenderer() *Renderer { return NewRenderer(NewLocalizer(language.English)) }
func ptRenderer() *Renderer { return NewRenderer(NewLocalizer(language.BrazilianPortuguese)) }

func sampleReport(t *testing.T) stats.Report {
	t.Helper()
	growth := []core.GrowthRecord{
		{ID: "g0", Name: "Ana", AgeMonths: 3, WeightKg: 5.2, HeightCm: core.Float(58), RecordedAt: at.AddDate(0, 0, -2)},
		{ID: "g1", Name: "Ana", AgeMonths: 3, WeightKg: 5.5, RecordedAt: at.AddDate(0, 0, -1)},
	}
	feedings := []core.FeedingEvent{
		{ID: "f0", Type: core.BreastMilk, OccurredAt: at.Add(-2 * time.Hour)},
		{ID: "f1", Type: core.BreastMilk, OccurredAt: at.Add(-time.Hour)},
		{ID: "f2", Type: core.Formula, AmountMl: core.Float(100), OccurredAt: at},
	}
	report, err := stats.BuildReport(growth, feedings, stats.Week, at)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	return report
}

func TestLocalizer(t *testing.T) {
	pt := NewLocalizer(language.BrazilianPortuguese)
	en := NewLocalizer(language.English)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "pt feeding type", got: pt.FeedingType(core.BreastMilk), want: "Leite materno"},
		{name: "pt formula", got: pt.FeedingType(core.Formula), want: "Fórmula"},
		{name: "en feeding type", got: en.FeedingType(core.SolidFood), want: "Solid food"},
		{name: "pt period", got: pt.Period(stats.Month), want: "mês"},
		{name: "pt sentence", got: pt.Sprintf("Baby: %s", "Ana"), want: "Bebê: Ana"},
		{name: "en sentence", got: en.Sprintf("Baby: %s", "Ana"), want: "Baby: Ana"},
		{name: "pt decimal", got: pt.Decimal(5.2, 2), want: "5,20"},
		{name: "en decimal", got: en.Decimal(5.2, 1), want: "5.2"},
		{name: "pt date", got: pt.DateTime(at), want: "10/03/2025 09:30"},
		{name: "en date", got: en.Date(at), want: "2025-03-10"},
		{name: "untranslated label", got: pt.Label("10/3"), want: "10/3"},
		{name: "translated label", got: pt.Label(core.SolidFood.Label()), want: "Alimento sólido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestRenderer_GrowthHistory(t *testing.T) {
	var buf bytes.Buffer
	items := []core.GrowthRecord{
		{ID: "g1", Name: "Ana", AgeMonths: 3, WeightKg: 5.5, RecordedAt: at},
		{ID: "g0", Name: "Ana", AgeMonths: 3, WeightKg: 5.2, HeightCm: core.Float(58), RecordedAt: at.AddDate(0, 0, -1)},
	}
	if err := enRenderer().GrowthHistory(&buf, items); err != nil {
		t.Fatalf("GrowthHistory: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Weight (kg)", "g1", "5.50", "58.0", "2025-03-10 09:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "g1") > strings.Index(out, "g0") {
		t.Errorf("rows must keep the given order:\n%s", out)
	}

	buf.Reset()
	if err := ptRenderer().GrowthHistory(&buf, nil); err != nil {
		t.Fatalf("GrowthHistory: %v", err)
	}
	if !strings.Contains(buf.String(), "Nenhum registro ainda.") {
		t.Errorf("empty history = %q", buf.String())
	}
}

func TestRenderer_Status(t *testing.T) {
	var buf bytes.Buffer
	current := core.GrowthRecord{ID: "g1", Name: "Ana", AgeMonths: 3, WeightKg: 5.5, HeightCm: core.Float(60), RecordedAt: at}
	today := []core.FeedingEvent{{ID: "f1", Type: core.Formula, AmountMl: core.Float(90), OccurredAt: at}}

	if err := ptRenderer().Status(&buf, current, true, today); err != nil {
		t.Fatalf("Status: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Bebê: Ana", "Idade: 3 meses", "Peso: 5,50 kg", "Altura: 60,0 cm", "Alimentações de hoje: 1", "Fórmula", "90"} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := enRenderer().Status(&buf, core.GrowthRecord{}, false, nil); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !strings.Contains(buf.String(), "No records yet.") || !strings.Contains(buf.String(), "No feedings today.") {
		t.Errorf("empty status = %q", buf.String())
	}
}

func TestRenderer_Report(t *testing.T) {
	var buf bytes.Buffer
	if err := enRenderer().Report(&buf, sampleReport(t)); err != nil {
		t.Fatalf("Report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Baby: Ana",
		"Period: week",
		"Last: 5.50 kg, mean: 5.35 kg",
		"3 feedings in 1 days",
		"Breast milk",
		"66.7%",
		"Total formula: 100 ml",
		"Average formula per day: 100 ml",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_ReportSections(t *testing.T) {
	var buf bytes.Buffer
	empty, err := stats.BuildReport(nil, nil, stats.All, at)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if err := enRenderer().Report(&buf, empty, SectionFeedings); err != nil {
		t.Fatalf("Report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "No data for this period.") {
		t.Errorf("empty feeding section = %q", out)
	}
	if strings.Contains(out, "Weight evolution") {
		t.Errorf("only the requested section must be written:\n%s", out)
	}
	if strings.Contains(out, "Total formula") {
		t.Errorf("formula summary needs a formula feeding:\n%s", out)
	}
}

func TestParseSection(t *testing.T) {
	for _, s := range Sections() {
		if got, err := ParseSection(string(s)); err != nil || got != s {
			t.Errorf("ParseSection(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseSection("bmi"); err == nil {
		t.Errorf("expected error for bmi")
	}
}

func TestChartFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    ChartFormat
		wantErr bool
	}{
		{path: "out.png", want: PNG},
		{path: "/tmp/Chart.SVG", want: SVG},
		{path: "chart.jpg", wantErr: true},
		{path: "chart", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ChartFormatFromPath(tt.path)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ChartFormatFromPath(%q) = %q, %v", tt.path, got, err)
			}
		})
	}
}

func TestWritePieChart(t *testing.T) {
	r := ptRenderer()
	pie, err := r.ChartFor(sampleReport(t), SectionFeedings)
	if err != nil {
		t.Fatalf("ChartFor: %v", err)
	}
	if pie.Title != "Distribuição das alimentações (semana)" {
		t.Errorf("title = %q", pie.Title)
	}
	if len(pie.Slices) != 2 || pie.Slices[0].Label != "Leite materno" {
		t.Fatalf("slices = %+v", pie.Slices)
	}

	var png bytes.Buffer
	if err := WritePieChart(&png, PNG, pie); err != nil {
		t.Fatalf("WritePieChart png: %v", err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Errorf("output is not a PNG")
	}

	var svg bytes.Buffer
	if err := WritePieChart(&svg, SVG, pie); err != nil {
		t.Fatalf("WritePieChart svg: %v", err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Errorf("output is not an SVG")
	}

	if err := WritePieChart(&png, PNG, PieChart{Title: "empty"}); !errors.Is(err, ErrNoData) {
		t.Errorf("empty chart error = %v, want ErrNoData", err)
	}
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	growth := []core.GrowthRecord{
		{ID: "g0", Name: "Ana", AgeMonths: 3, WeightKg: 5.2, HeightCm: core.Float(58.5), RecordedAt: at},
		{ID: "g1", Name: "Ana", AgeMonths: 4, WeightKg: 5.75, RecordedAt: at.AddDate(0, 1, 0)},
	}
	if err := ExportGrowth(&buf, growth); err != nil {
		t.Fatalf("ExportGrowth: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", buf.String())
	}
	if lines[0] != "id,name,age_months,weight_kg,height_cm,recorded_at" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "g0,Ana,3,5.2,58.5,2025-03-10T09:30:00Z" {
		t.Errorf("row = %q", lines[1])
	}
	if lines[2] != "g1,Ana,4,5.75,,2025-04-10T09:30:00Z" {
		t.Errorf("row without height = %q", lines[2])
	}

	buf.Reset()
	feedings := []core.FeedingEvent{
		{ID: "f0", Type: core.Formula, AmountMl: core.Float(120), Notes: "night", OccurredAt: at},
		{ID: "f1", Type: core.SolidFood, OccurredAt: at},
	}
	if err := ExportFeedings(&buf, feedings); err != nil {
		t.Fatalf("ExportFeedings: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "id,type,amount_ml,notes,occurred_at\n") {
		t.Errorf("header = %q", out)
	}
	if !strings.Contains(out, "f0,formula,120,night,") || !strings.Contains(out, "f1,solidFood,,,") {
		t.Errorf("rows = %q", out)
	}
}
