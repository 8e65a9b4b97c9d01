package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/savant/internal/calculator"
	"github.com/DukeRupert/savant/internal/domain"
	"github.com/DukeRupert/savant/internal/metrics"
)

func newTestCalculatorHandler(t *testing.T) *CalculatorHandler {
	t.Helper()
	f, err := calculator.NewFormatter("en-AU")
	require.NoError(t, err)
	return NewCalculatorHandler(f, discardLogger())
}

func getRepayment(t *testing.T, h *CalculatorHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/partials/repayment?"+query, nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCalculatorHandler_Repayment(t *testing.T) {
	h := newTestCalculatorHandler(t)
	before := testutil.ToFloat64(metrics.RepaymentCalculations)

	rec := getRepayment(t, h, "principal=600000&rate=6.2&term=30")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `id="repayment-card"`)
	assert.Contains(t, body, "$3,674.81")
	assert.Contains(t, body, "360 months")
	assert.Contains(t, body, "$1,322,931.60")
	assert.NotContains(t, body, "adjusted")

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RepaymentCalculations))
}

func TestCalculatorHandler_KnownValues(t *testing.T) {
	h := newTestCalculatorHandler(t)

	tests := []struct {
		query   string
		monthly string
	}{
		{"principal=100000&rate=1&term=5", "$1,709.37"},
		{"principal=2000000&rate=12&term=35", "$20,311.00"},
		{"principal=500000&rate=5&term=25", "$2,922.95"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := getRepayment(t, h, tt.query)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.monthly)
		})
	}
}

func TestCalculatorHandler_Defaults(t *testing.T) {
	h := newTestCalculatorHandler(t)

	rec := getRepayment(t, h, "")

	assert.Contains(t, rec.Body.String(), "$3,674.81")
	assert.NotContains(t, rec.Body.String(), "adjusted")
}

func TestCalculatorHandler_ParseLoan(t *testing.T) {
	h := newTestCalculatorHandler(t)

	tests := []struct {
		name     string
		query    url.Values
		want     domain.LoanParameters
		adjusted bool
	}{
		{
			name:  "in range",
			query: url.Values{"principal": {"750000"}, "rate": {"5.55"}, "term": {"25"}},
			want:  domain.LoanParameters{Principal: 750_000, AnnualRatePercent: 5.55, TermYears: 25},
		},
		{
			name:  "missing values use defaults",
			query: url.Values{"principal": {"250000"}},
			want:  domain.LoanParameters{Principal: 250_000, AnnualRatePercent: 6.2, TermYears: 30},
		},
		{
			name:     "unparsable values fall back to defaults",
			query:    url.Values{"principal": {"lots"}, "rate": {"NaN"}, "term": {"forever"}},
			want:     domain.DefaultLoanParameters(),
			adjusted: true,
		},
		{
			name:     "above range is clamped",
			query:    url.Values{"principal": {"5000000"}, "rate": {"20"}, "term": {"50"}},
			want:     domain.LoanParameters{Principal: 2_000_000, AnnualRatePercent: 12, TermYears: 35},
			adjusted: true,
		},
		{
			name:     "below range is clamped",
			query:    url.Values{"principal": {"0"}, "rate": {"0"}, "term": {"0"}},
			want:     domain.LoanParameters{Principal: 100_000, AnnualRatePercent: 1, TermYears: 5},
			adjusted: true,
		},
		{
			name:     "negative term is clamped",
			query:    url.Values{"term": {"-3"}},
			want:     domain.LoanParameters{Principal: 600_000, AnnualRatePercent: 6.2, TermYears: 5},
			adjusted: true,
		},
		{
			name:  "bounds are inclusive",
			query: url.Values{"principal": {"100000"}, "rate": {"12"}, "term": {"35"}},
			want:  domain.LoanParameters{Principal: 100_000, AnnualRatePercent: 12, TermYears: 35},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, adjusted := h.parseLoan(tt.query)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.adjusted, adjusted)
		})
	}
}

func TestCalculatorHandler_ClampedCardSaysSo(t *testing.T) {
	h := newTestCalculatorHandler(t)

	rec := getRepayment(t, h, "principal=99999999")

	assert.Equal(t, http.StatusOK, rec.Code)
	// 2,000,000 at the default 6.2% over 30 years
	assert.Contains(t, rec.Body.String(), "$12,249.38")
	assert.Contains(t, rec.Body.String(), "have been adjusted")
	assert.Contains(t, rec.Body.String(), `class="card card-adjusted"`)
}
