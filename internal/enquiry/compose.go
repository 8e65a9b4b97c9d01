// Package enquiry turns contact-form submissions into operator email.
package enquiry

import (
	"fmt"
	"strings"

	"github.com/DukeRupert/savant/internal/domain"
	"github.com/DukeRupert/savant/internal/email"
)

// DefaultSubject is used when the enquiry names no service.
const DefaultSubject = "General enquiry"

// Addresses are the fixed envelope details of every enquiry email.
type Addresses struct {
	FromName        string // Sender display name
	From            string // Sender address
	To              string // Operator mailbox
	FallbackReplyTo string // Reply-To when the submitter gave no email
}

// DefaultAddresses returns the addresses the site ships with.
func DefaultAddresses() Addresses {
	return Addresses{
		FromName:        "SavantFS Website",
		From:            "info@savantfs.com.au",
		To:              "sakib@savantfs.com.au",
		FallbackReplyTo: "info@savantfs.com.au",
	}
}

// Subject returns the subject line for e.
func Subject(e domain.Enquiry) string {
	service := e.Service
	if service == "" {
		service = DefaultSubject
	}
	return "New enquiry: " + service
}

// Body renders the plain-text body. Missing fields render as empty strings.
func Body(e domain.Enquiry) string {
	body := fmt.Sprintf(`
New enquiry from the SavantFS website:

Name: %s
Email: %s
Phone: %s
Service: %s

Message:
%s
`, e.Name, e.Email, e.Phone, e.Service, e.Message)

	return strings.TrimSpace(body)
}

// Compose builds the email for e.
func Compose(e domain.Enquiry, a Addresses) email.Message {
	replyTo := e.Email
	if replyTo == "" {
		replyTo = a.FallbackReplyTo
	}

	return email.Message{
		FromName: a.FromName,
		From:     a.From,
		To:       a.To,
		ReplyTo:  replyTo,
		Subject:  Subject(e),
		TextBody: Body(e),
	}
}
