// Package calculator computes indicative repayments for a principal and
// interest loan with a fixed rate over the full term.
package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/DukeRupert/savant/internal/domain"
)

// MonthlyRepayment returns the fixed monthly payment that fully amortizes
// the principal over TermYears*12 periods at AnnualRatePercent/12 per period.
//
// The function does not validate its input. A zero term divides by zero;
// callers bound the parameters first (see domain.LoanParameters.Clamp).
func MonthlyRepayment(p domain.LoanParameters) float64 {
	r := p.AnnualRatePercent / 100 / 12
	n := float64(p.Months())

	if r == 0 {
		return p.Principal / n
	}
	return p.Principal * r / (1 - math.Pow(1+r, -n))
}

// Summary is the figure shown on the result card together with its totals.
type Summary struct {
	Parameters    domain.LoanParameters
	Monthly       float64
	Repayments    int
	TotalRepaid   decimal.Decimal
	TotalInterest decimal.Decimal
}

// Summarize computes the monthly repayment and the totals derived from it.
// Totals are based on the monthly figure rounded to cents, which is what a
// borrower would actually pay each month.
func Summarize(p domain.LoanParameters) Summary {
	monthly := MonthlyRepayment(p)
	n := p.Months()

	perPayment := decimal.NewFromFloat(monthly).Round(2)
	total := perPayment.Mul(decimal.NewFromInt(int64(n)))
	interest := total.Sub(decimal.NewFromFloat(p.Principal))
	if interest.IsNegative() {
		interest = decimal.Zero
	}

	return Summary{
		Parameters:    p,
		Monthly:       monthly,
		Repayments:    n,
		TotalRepaid:   total,
		TotalInterest: interest,
	}
}
