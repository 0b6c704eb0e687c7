// Package render turns core records and derived statistics into terminal
// tables, pie chart images and CSV files.
package render

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"

	"babytrack/internal/core"
	"babytrack/internal/stats"
)

// Message keys are the English text; other languages are looked up in the
// catalog below.
var portuguese = map[string]string{
	// feeding types
	"Breast milk": "Leite materno",
	"Formula":     "Fórmula",
	"Solid food":  "Alimento sólido",
	"Other":       "Outro",

	// periods
	"week":  "semana",
	"month": "mês",
	"all":   "tudo",

	// table headers
	"ID":           "ID",
	"Date":         "Data",
	"Day":          "Dia",
	"Name":         "Nome",
	"Age (months)": "Idade (meses)",
	"Weight (kg)":  "Peso (kg)",
	"Height (cm)":  "Altura (cm)",
	"Type":         "Tipo",
	"Amount (ml)":  "Quantidade (ml)",
	"Notes":        "Observações",
	"Feedings":     "Alimentações",
	"Formula (ml)": "Fórmula (ml)",
	"Count":        "Quantidade",
	"Share":        "Percentual",

	// sentences
	"No records yet.":                "Nenhum registro ainda.",
	"No data for this period.":       "Sem dados para este período.",
	"No feedings today.":             "Nenhuma alimentação hoje.",
	"Baby: %s":                       "Bebê: %s",
	"Period: %s":                     "Período: %s",
	"Age: %d months":                 "Idade: %d meses",
	"Weight: %s kg":                  "Peso: %s kg",
	"Height: %s cm":                  "Altura: %s cm",
	"Last update: %s":                "Última atualização: %s",
	"Today's feedings: %d":           "Alimentações de hoje: %d",
	"Weight evolution":               "Evolução do peso",
	"Height evolution":               "Evolução da altura",
	"Feeding distribution":           "Distribuição das alimentações",
	"Last: %s %s, mean: %s %s":       "Último: %s %s, média: %s %s",
	"%d feedings in %d days":         "%d alimentações em %d dias",
	"Total formula: %s ml":           "Total de fórmula: %s ml",
	"Average formula per day: %s ml": "Média de fórmula por dia: %s ml",
	"Growth record %s saved.":        "Registro de crescimento %s salvo.",
	"Feeding %s saved.":              "Alimentação %s salva.",
	"Record %s deleted.":             "Registro %s excluído.",
	"Chart written to %s.":           "Gráfico salvo em %s.",
	"%d records exported.":           "%d registros exportados.",
}

var translations = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range portuguese {
		for _, tag := range []language.Tag{language.Portuguese, language.BrazilianPortuguese} {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Localizer formats user-facing text for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

func NewLocalizer(tag language.Tag) *Localizer {
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(translations)),
	}
}

// Tag returns the language the localizer formats for.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Sprintf translates key and formats it with args.
func (l *Localizer) Sprintf(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// FeedingType returns the translated display name of t.
func (l *Localizer) FeedingType(t core.FeedingType) string {
	return l.printer.Sprintf(t.Label())
}

// Label translates a chart label, leaving labels without a translation
// (such as d/m dates) unchanged.
func (l *Localizer) Label(label string) string {
	if _, ok := portuguese[label]; !ok {
		return label
	}
	return l.printer.Sprintf(label)
}

// Period returns the translated period name.
func (l *Localizer) Period(p stats.Period) string {
	return l.printer.Sprintf(p.String())
}

// Decimal formats v with exactly places fraction digits, using the
// language's separators (5,2 in Portuguese).
func (l *Localizer) Decimal(v float64, places int) string {
	return l.printer.Sprint(number.Decimal(v, number.Scale(places)))
}

// DateTime formats t as a short date and time.
func (l *Localizer) DateTime(t time.Time) string {
	if l.isPortuguese() {
		return t.Format("02/01/2006 15:04")
	}
	return t.Format("2006-01-02 15:04")
}

// Date formats the calendar day of t.
func (l *Localizer) Date(t time.Time) string {
	if l.isPortuguese() {
		return t.Format("02/01/2006")
	}
	return t.Format(time.DateOnly)
}

func (l *Localizer) isPortuguese() bool {
	base, _ := l.tag.Base()
	pt, _ := language.Portuguese.Base()
	return base == pt
}
