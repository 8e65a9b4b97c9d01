package handler

import (
	"html/template"
	"strings"
	"time"

	"github.com/DukeRupert/savant/internal/calculator"
)

// TemplateFuncs returns the functions the page templates call. Numbers are
// formatted in the locale of f; the result card is rendered separately by
// renderRepaymentCard.
func TemplateFuncs(f *calculator.Formatter) template.FuncMap {
	return template.FuncMap{
		// Process step numbers are 1-based
		"add": func(a, b int) int {
			return a + b
		},

		"year": func() int {
			return time.Now().Year()
		},

		// Slider labels
		"whole": f.Whole,
		"rate":  f.Rate,

		// Anchor ids for service cards
		"slug": func(s string) string {
			return strings.Join(strings.Fields(strings.ToLower(s)), "-")
		},
	}
}
