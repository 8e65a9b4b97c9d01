package domain

import "fmt"

// Calculator input bounds. These mirror the range sliders on the home page.
const (
	MinPrincipal  = 100_000.0
	MaxPrincipal  = 2_000_000.0
	PrincipalStep = 10_000.0

	MinAnnualRate  = 1.0
	MaxAnnualRate  = 12.0
	AnnualRateStep = 0.05

	MinTermYears  = 5
	MaxTermYears  = 35
	TermYearsStep = 1

	DefaultPrincipal  = 600_000.0
	DefaultAnnualRate = 6.2
	DefaultTermYears  = 30
)

// LoanParameters are the three inputs of the repayment calculator.
type LoanParameters struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         int     `json:"term_years"`
}

// DefaultLoanParameters returns the values the calculator starts with.
func DefaultLoanParameters() LoanParameters {
	return LoanParameters{
		Principal:         DefaultPrincipal,
		AnnualRatePercent: DefaultAnnualRate,
		TermYears:         DefaultTermYears,
	}
}

// Months is the number of monthly repayments over the term.
func (p LoanParameters) Months() int {
	return p.TermYears * 12
}

// Validate reports every field that lies outside its bounds.
func (p LoanParameters) Validate() error {
	ve := &ValidationError{Op: "loan.validate"}

	if p.Principal < MinPrincipal || p.Principal > MaxPrincipal {
		ve.Add("principal", fmt.Sprintf("must be between %.0f and %.0f", MinPrincipal, MaxPrincipal))
	}
	if p.AnnualRatePercent < MinAnnualRate || p.AnnualRatePercent > MaxAnnualRate {
		ve.Add("rate", fmt.Sprintf("must be between %.0f and %.0f", MinAnnualRate, MaxAnnualRate))
	}
	if p.TermYears < MinTermYears || p.TermYears > MaxTermYears {
		ve.Add("term", fmt.Sprintf("must be between %d and %d", MinTermYears, MaxTermYears))
	}

	if len(ve.Fields) == 0 {
		return nil
	}
	return ve
}

// Clamp pulls each field into its bounds, the way a range input does.
func (p LoanParameters) Clamp() LoanParameters {
	return LoanParameters{
		Principal:         clampFloat(p.Principal, MinPrincipal, MaxPrincipal),
		AnnualRatePercent: clampFloat(p.AnnualRatePercent, MinAnnualRate, MaxAnnualRate),
		TermYears:         clampInt(p.TermYears, MinTermYears, MaxTermYears),
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
