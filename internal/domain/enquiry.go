package domain

// Enquiry is a contact-form submission. Every field is optional on the wire;
// absent fields decode to the empty string.
type Enquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// DefaultService is preselected in the contact form.
const DefaultService = "Residential Purchase Loans"

// Services lists the selectable services in display order.
var Services = []string{
	DefaultService,
	"Commercial Purchase Loans",
	"Refinance",
	"Bridging Finance",
	"Construction Loans",
	"NDIS Loans",
	"SMSF Loans",
	"Alt Doc or Low Doc Loans",
	"Financial Guidance and Support",
	"Other",
}

// IsKnownService reports whether s is one of Services.
func IsKnownService(s string) bool {
	for _, known := range Services {
		if s == known {
			return true
		}
	}
	return false
}
