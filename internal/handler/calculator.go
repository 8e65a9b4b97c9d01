package handler

import (
	"context"
	"html/template"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"

	"github.com/DukeRupert/savant/internal/calculator"
	"github.com/DukeRupert/savant/internal/domain"
	"github.com/DukeRupert/savant/internal/metrics"
	"github.com/DukeRupert/savant/internal/templ/partials"
)

// repaymentQuery carries the slider values from the query string. The bounds
// mirror the range inputs on the page.
type repaymentQuery struct {
	Principal float64 `validate:"gte=100000,lte=2000000"`
	Rate      float64 `validate:"gte=1,lte=12"`
	Term      int     `validate:"gte=5,lte=35"`
}

// CalculatorHandler renders the repayment result card.
type CalculatorHandler struct {
	formatter *calculator.Formatter
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewCalculatorHandler creates a new CalculatorHandler.
func NewCalculatorHandler(formatter *calculator.Formatter, logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		formatter: formatter,
		validate:  validator.New(),
		logger:    logger,
	}
}

// RegisterRoutes registers the calculator routes.
//
// Routes:
// - GET /partials/repayment -> Repayment (htmx fragment)
func (h *CalculatorHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /partials/repayment", h.Repayment)
}

// Repayment renders the result card for ?principal=&rate=&term=.
//
// A missing or unparsable value falls back to its default. A value outside
// the slider range is clamped to the nearest bound and the card says so.
func (h *CalculatorHandler) Repayment(w http.ResponseWriter, r *http.Request) {
	const op = "calculator.repayment"

	params, adjusted := h.parseLoan(r.URL.Query())

	card, err := renderRepaymentCard(r.Context(), h.formatter, params, adjusted)
	if err != nil {
		InternalErrorResponse(w, r, h.logger, domain.Internal(err, op, "failed to render repayment card"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, string(card))
	metrics.RepaymentCalculated()
}

// parseLoan reads the loan parameters and reports whether any of them had
// to be replaced or clamped.
func (h *CalculatorHandler) parseLoan(q url.Values) (domain.LoanParameters, bool) {
	defaults := domain.DefaultLoanParameters()
	adjusted := false

	query := repaymentQuery{
		Principal: defaults.Principal,
		Rate:      defaults.AnnualRatePercent,
		Term:      defaults.TermYears,
	}

	if v, ok := parseFloatParam(q, "principal"); ok {
		query.Principal = v
	} else if q.Has("principal") {
		adjusted = true
	}
	if v, ok := parseFloatParam(q, "rate"); ok {
		query.Rate = v
	} else if q.Has("rate") {
		adjusted = true
	}
	if v, ok := parseIntParam(q, "term"); ok {
		query.Term = v
	} else if q.Has("term") {
		adjusted = true
	}

	params := domain.LoanParameters{
		Principal:         query.Principal,
		AnnualRatePercent: query.Rate,
		TermYears:         query.Term,
	}

	if err := h.validate.Struct(query); err != nil {
		h.logger.Debug("clamping calculator input", "error", params.Validate())
		params = params.Clamp()
		adjusted = true
	}

	return params, adjusted
}

// adjustedCardClass marks a card whose inputs were replaced or clamped.
const adjustedCardClass = "card-adjusted"

// renderRepaymentCard renders the result card for p. The home page and the
// htmx endpoint both go through here so a slider change swaps in identical
// markup.
func renderRepaymentCard(ctx context.Context, f *calculator.Formatter, p domain.LoanParameters, adjusted bool) (template.HTML, error) {
	s := calculator.Summarize(p)
	data := partials.RepaymentCardData{
		TermYears:     p.TermYears,
		Repayments:    s.Repayments,
		Monthly:       f.Cents(s.Monthly),
		TotalRepaid:   f.Amount(s.TotalRepaid),
		TotalInterest: f.Amount(s.TotalInterest),
		Adjusted:      adjusted,
	}
	if adjusted {
		data.Class = adjustedCardClass
	}
	return templ.ToGoHTML(ctx, partials.RepaymentCard(data))
}

func parseFloatParam(q url.Values, key string) (float64, bool) {
	raw := q.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseIntParam(q url.Values, key string) (int, bool) {
	v, ok := parseFloatParam(q, key)
	if !ok || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(math.Round(v)), true
}
