package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanParameters_Validate(t *testing.T) {
	tests := []struct {
		name       string
		params     LoanParameters
		wantFields []string
	}{
		{"defaults", DefaultLoanParameters(), nil},
		{"lower bounds", LoanParameters{MinPrincipal, MinAnnualRate, MinTermYears}, nil},
		{"upper bounds", LoanParameters{MaxPrincipal, MaxAnnualRate, MaxTermYears}, nil},
		{"principal too small", LoanParameters{99_999, 6.2, 30}, []string{"principal"}},
		{"rate too high", LoanParameters{600_000, 12.5, 30}, []string{"rate"}},
		{"zero term", LoanParameters{600_000, 6.2, 0}, []string{"term"}},
		{"everything wrong", LoanParameters{-1, 0, 40}, []string{"principal", "rate", "term"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Len(t, ve.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, ve.Fields, f)
			}
			assert.Equal(t, EINVALID, ErrorCode(err))
		})
	}
}

func TestLoanParameters_Clamp(t *testing.T) {
	got := LoanParameters{Principal: 5_000_000, AnnualRatePercent: 0.5, TermYears: 2}.Clamp()
	assert.Equal(t, LoanParameters{MaxPrincipal, MinAnnualRate, MinTermYears}, got)

	inRange := LoanParameters{Principal: 750_000, AnnualRatePercent: 5.55, TermYears: 25}
	assert.Equal(t, inRange, inRange.Clamp())
}

func TestLoanParameters_Months(t *testing.T) {
	assert.Equal(t, 360, DefaultLoanParameters().Months())
	assert.Equal(t, 60, LoanParameters{TermYears: 5}.Months())
}

func TestIsKnownService(t *testing.T) {
	assert.Len(t, Services, 10)
	assert.Equal(t, DefaultService, Services[0])
	assert.True(t, IsKnownService("Other"))
	assert.True(t, IsKnownService("SMSF Loans"))
	assert.False(t, IsKnownService("smsf loans"))
	assert.False(t, IsKnownService(""))
}

func TestErrorMessage_HidesUnavailableDetail(t *testing.T) {
	err := Unavailable(errors.New("535 auth failed for user secret"), "enquiry.dispatch", "mail relay rejected message")

	assert.Equal(t, EUNAVAILABLE, ErrorCode(err))
	assert.Equal(t, "enquiry.dispatch", ErrorOp(err))
	assert.NotContains(t, ErrorMessage(err), "secret")
	assert.Contains(t, err.Error(), "mail relay rejected message")
}

func TestValidationError_Add(t *testing.T) {
	ve := &ValidationError{Op: "contactform.validate"}
	ve.Add("name", "Please fill out this field.")
	ve.Add("email", "Please fill out this field.")

	assert.Equal(t, EINVALID, ErrorCode(ve))
	assert.Equal(t, "contactform.validate: validation failed: email, name", ve.Error())
}
