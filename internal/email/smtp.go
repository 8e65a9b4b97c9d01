package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SMTP Sender Implementation
// =============================================================================

// SMTPSender sends email through an SMTP relay.
//
// The connection starts in plain text and is upgraded with STARTTLS when the
// relay offers it. AUTH PLAIN is used when credentials are configured; the
// standard library refuses to send PLAIN credentials over an unencrypted
// connection to anything but localhost.
//
// Configuration is not validated up front: a missing host or bad credentials
// surface as an error from Send.
type SMTPSender struct {
	config  SMTPConfig
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewSMTPSender creates a new SMTP-based sender.
//
// timeout bounds the whole conversation with the relay when ctx carries no
// earlier deadline. Zero disables the fallback timeout.
func NewSMTPSender(config SMTPConfig, timeout time.Duration, logger *slog.Logger) *SMTPSender {
	if config.Port == 0 {
		config.Port = DefaultSMTPPort
	}
	return &SMTPSender{
		config:  config,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// =============================================================================
// Sender Interface Implementation
// =============================================================================

// Send delivers msg to the relay and returns once the relay has accepted it.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	if s.config.Host == "" {
		return errors.New("smtp: relay host is not configured")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.buildMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	if err := s.deliver(ctx, msg, raw); err != nil {
		s.logger.Error("failed to send email",
			"id", msg.ID,
			"to", msg.To,
			"subject", msg.Subject,
			"relay", s.addr(),
			"error", err,
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent",
		"id", msg.ID,
		"to", msg.To,
		"subject", msg.Subject,
	)

	return nil
}

// =============================================================================
// Internal Methods
// =============================================================================

func (s *SMTPSender) addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// deliver runs one SMTP transaction.
func (s *SMTPSender) deliver(ctx context.Context, msg Message, raw []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", s.addr())
	if err != nil {
		return fmt.Errorf("dial relay: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("greet relay: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.config.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if s.config.Username != "" || s.config.Password != "" {
		if ok, _ := c.Extension("AUTH"); !ok {
			return errors.New("relay does not support AUTH")
		}
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(msg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(msg.To); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("relay rejected message: %w", err)
	}

	return c.Quit()
}

// buildMessage constructs the raw email message with headers.
func (s *SMTPSender) buildMessage(msg Message) ([]byte, error) {
	var buf bytes.Buffer

	from := (&mail.Address{Name: msg.FromName, Address: msg.From}).String()
	id := msg.ID
	if id == "" {
		id = uuid.NewString()
	}

	writeHeader(&buf, "From", from)
	writeHeader(&buf, "To", (&mail.Address{Address: msg.To}).String())
	if msg.ReplyTo != "" {
		writeHeader(&buf, "Reply-To", (&mail.Address{Address: msg.ReplyTo}).String())
	}
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&buf, "Date", s.now().Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", fmt.Sprintf("<%s@%s>", id, domainOf(msg.From)))
	writeHeader(&buf, "MIME-Version", "1.0")
	writeHeader(&buf, "Content-Type", "text/plain; charset=utf-8")
	writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(msg.TextBody)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("\r\n")

	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	// Header injection guard: values never span lines.
	value = strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

func domainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}

// =============================================================================
// Compile-time interface check
// =============================================================================

var _ Sender = (*SMTPSender)(nil)
