package partials

// RepaymentCardData contains data for the repayment result card partial.
// Every figure is already formatted for display.
type RepaymentCardData struct {
	TermYears     int    // Loan term in years
	Repayments    int    // Number of monthly repayments
	Monthly       string // Monthly repayment, cents ("3,674.81")
	TotalRepaid   string // Sum of all repayments, cents
	TotalInterest string // TotalRepaid minus principal, cents
	Adjusted      bool   // Whether any input was pulled into range
	Class         string // Extra classes merged onto the card root
}
