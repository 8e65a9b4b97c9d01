// Package email delivers plain-text transactional email for the website.
//
// This package defines a Sender interface with implementations for:
// - SMTP (any relay that speaks SMTP with STARTTLS, e.g. port 587 submission)
// - Log (development: messages are written to the logger instead of sent)
// - mock (tests: records calls and returns a configured error)
package email

import (
	"context"
	"errors"
	"strings"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Sender hands one message to a mail transport.
//
// A nil error means the transport accepted the message for delivery. It says
// nothing about whether the message reached an inbox.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// =============================================================================
// Email Data Types
// =============================================================================

// Message represents a single plain-text email.
type Message struct {
	ID       string // Correlation ID, used to build the Message-ID header
	FromName string // Sender display name
	From     string // Sender address (envelope and header)
	To       string // Recipient address
	ReplyTo  string // Reply-To address, omitted when empty
	Subject  string // Subject line
	TextBody string // Plain text content
}

// ErrNoRecipient is returned when a message has no To address.
var ErrNoRecipient = errors.New("email: message has no recipient")

// ErrNoSender is returned when a message has no From address.
var ErrNoSender = errors.New("email: message has no sender")

// validate checks the fields every transport needs.
func (m Message) validate() error {
	if strings.TrimSpace(m.From) == "" {
		return ErrNoSender
	}
	if strings.TrimSpace(m.To) == "" {
		return ErrNoRecipient
	}
	return nil
}

// =============================================================================
// Configuration Types
// =============================================================================

// SMTPConfig holds SMTP relay configuration.
type SMTPConfig struct {
	Host     string // Relay hostname
	Port     int    // Relay port (587 submission by default)
	Username string // AUTH PLAIN username, empty to skip AUTH
	Password string // AUTH PLAIN password
}

// =============================================================================
// Common Constants
// =============================================================================

const (
	// DefaultSMTPPort is the submission port; TLS is negotiated with STARTTLS.
	DefaultSMTPPort = 587

	// ProviderSMTP sends through the configured relay.
	ProviderSMTP = "smtp"

	// ProviderLog writes messages to the logger.
	ProviderLog = "log"
)
