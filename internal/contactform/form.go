// Package contactform is the client side of the enquiry pipeline: it holds
// the form fields, blocks incomplete submissions, posts the enquiry and
// reports the outcome through a notify.Notifier.
package contactform

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/DukeRupert/savant/internal/domain"
)

var validate = validator.New()

// Form is the enquiry form as the visitor fills it in.
type Form struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// NewForm returns an empty form with the default service selected.
func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// Reset clears every field and reselects the default service.
func (f *Form) Reset() {
	*f = Form{Service: domain.DefaultService}
}

// Validate applies the same checks a browser does for the rendered form:
// name and email are required and email must look like an address. The
// returned error is a *domain.ValidationError keyed by the JSON field name.
func (f *Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	verr := &domain.ValidationError{Op: "contactform.validate"}
	for _, fe := range ves {
		verr.Add(strings.ToLower(fe.Field()), fieldMessage(fe))
	}
	return verr
}

// Enquiry converts the form into the wire payload.
func (f *Form) Enquiry() domain.Enquiry {
	return domain.Enquiry{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Service: f.Service,
		Message: f.Message,
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Please fill out this field."
	case "email":
		return "Please enter an email address."
	default:
		return "Invalid value."
	}
}
