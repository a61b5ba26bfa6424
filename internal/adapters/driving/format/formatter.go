// Package format renders contract values for people: currency, dates and
// Portuguese labels for the enumerated codes.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/custodia-labs/ensaio/internal/core/domain"
)

// isoDate is how session dates are entered.
const isoDate = "2006-01-02"

// Formatter renders values according to display settings.
type Formatter struct {
	printer    *message.Printer
	unit       currency.Unit
	dateLayout string
}

// New creates a formatter. Unparseable locale or currency settings fall back
// to the defaults.
func New(settings domain.DisplaySettings) *Formatter {
	defaults := domain.DefaultAppSettings().Display

	tag, err := language.Parse(settings.Locale)
	if err != nil {
		tag = language.MustParse(defaults.Locale)
	}
	unit, err := currency.ParseISO(settings.Currency)
	if err != nil {
		unit = currency.MustParseISO(defaults.Currency)
	}
	layout := settings.DateLayout
	if layout == "" {
		layout = defaults.DateLayout
	}

	return &Formatter{
		printer:    message.NewPrinter(tag),
		unit:       unit,
		dateLayout: layout,
	}
}

// Default returns a formatter for the default display settings.
func Default() *Formatter {
	return New(domain.DefaultAppSettings().Display)
}

// Currency renders an amount with the currency symbol and locale separators,
// e.g. "R$ 1.234,50".
func (f *Formatter) Currency(value float64) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(value)))
}

// Number renders an integer with locale grouping.
func (f *Formatter) Number(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Timestamp renders t in local time using the configured layout.
func (f *Formatter) Timestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(f.dateLayout)
}

// OptionalTimestamp renders t, or "-" when unset.
func (f *Formatter) OptionalTimestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return f.Timestamp(*t)
}

// SessionDate shows an ISO date as DD/MM/YYYY. Anything else is shown as entered.
func SessionDate(s string) string {
	d, err := time.Parse(isoDate, s)
	if err != nil {
		return s
	}
	return d.Format("02/01/2006")
}

// ParseTimestamp accepts RFC 3339 or a bare YYYY-MM-DD date (midnight UTC).
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected RFC 3339 or YYYY-MM-DD, got %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// thousandsGrouped matches "1.500" and "12.345.678": dots splitting digits into groups of three.
var thousandsGrouped = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// ParseAmount reads a money amount typed by a person. A comma marks the
// decimal separator, in which case dots are thousands separators. Without a
// comma, dots that split the digits into groups of three are thousands
// separators too: "1234.5", "1234,50", "R$ 1.234,50" and "1.234,5" all parse
// to 1234.5, while "1.500" is fifteen hundred.
func ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	switch {
	case strings.Contains(clean, ","):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case thousandsGrouped.MatchString(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: not an amount: %q", domain.ErrInvalidInput, s)
	}
	return d.InexactFloat64(), nil
}
