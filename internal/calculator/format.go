package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en-AU"

// Formatter renders calculator figures with locale-aware grouping.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter creates a formatter for a BCP 47 locale such as "en-AU".
func NewFormatter(locale string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}, nil
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Whole formats v with no fraction digits, e.g. "600,000".
func (f *Formatter) Whole(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// Cents formats v with exactly two fraction digits, e.g. "3,674.81".
func (f *Formatter) Cents(v float64) string {
	return f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// Amount formats an exact cent total such as Summary.TotalRepaid.
func (f *Formatter) Amount(d decimal.Decimal) string {
	return f.Cents(d.Round(2).InexactFloat64())
}

// Rate formats an annual percentage rate with two decimals and no grouping.
func (f *Formatter) Rate(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
