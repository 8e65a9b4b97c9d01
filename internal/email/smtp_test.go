package email

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Fake relay
// =============================================================================

// fakeRelay is a minimal SMTP server: no STARTTLS, no AUTH.
type fakeRelay struct {
	ln         net.Listener
	rejectData bool

	mu   sync.Mutex
	from string
	rcpt string
	data string
}

func startFakeRelay(t *testing.T, rejectData bool) *fakeRelay {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	r := &fakeRelay{ln: ln, rejectData: rejectData}
	t.Cleanup(func() { ln.Close() })
	go r.serve()
	return r
}

func (r *fakeRelay) port(t *testing.T) int {
	_, p, err := net.SplitHostPort(r.ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(p)
	require.NoError(t, err)
	return port
}

func (r *fakeRelay) serve() {
	for {
		conn, err := r.ln.Accept()
		if err != nil {
			return
		}
		go r.handle(conn)
	}
}

func (r *fakeRelay) handle(conn net.Conn) {
	defer conn.Close()
	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 fake.relay ESMTP")

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
			_ = tp.PrintfLine("250 fake.relay")
		case strings.HasPrefix(upper, "MAIL FROM:"):
			r.mu.Lock()
			r.from = line[len("MAIL FROM:"):]
			r.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case strings.HasPrefix(upper, "RCPT TO:"):
			r.mu.Lock()
			r.rcpt = line[len("RCPT TO:"):]
			r.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case upper == "DATA":
			_ = tp.PrintfLine("354 End data with <CR><LF>.<CR><LF>")
			body, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			r.mu.Lock()
			r.data = string(body)
			r.mu.Unlock()
			if r.rejectData {
				_ = tp.PrintfLine("554 5.7.1 Message rejected")
			} else {
				_ = tp.PrintfLine("250 2.0.0 queued")
			}
		case upper == "QUIT":
			_ = tp.PrintfLine("221 2.0.0 Bye")
			return
		default:
			_ = tp.PrintfLine("502 5.5.2 Command not recognized")
		}
	}
}

func (r *fakeRelay) snapshot() (from, rcpt, data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.from, r.rcpt, r.data
}

// =============================================================================
// Tests
// =============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleMessage() Message {
	return Message{
		ID:       "3b241101-e2bb-4255-8caf-4136c566a962",
		FromName: "SavantFS Website",
		From:     "info@savantfs.com.au",
		To:       "sakib@savantfs.com.au",
		ReplyTo:  "jane@example.com",
		Subject:  "New enquiry: Refinance",
		TextBody: "Name: Jane\nEmail: jane@example.com",
	}
}

func TestSMTPSender_BuildMessage(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "relay.example.com"}, 0, testLogger())
	s.now = func() time.Time { return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC) }

	raw, err := s.buildMessage(sampleMessage())
	require.NoError(t, err)
	msg := string(raw)

	assert.Contains(t, msg, "From: \"SavantFS Website\" <info@savantfs.com.au>\r\n")
	assert.Contains(t, msg, "To: <sakib@savantfs.com.au>\r\n")
	assert.Contains(t, msg, "Reply-To: <jane@example.com>\r\n")
	assert.Contains(t, msg, "Subject: New enquiry: Refinance\r\n")
	assert.Contains(t, msg, "Date: Sat, 01 Mar 2025 09:30:00 +0000\r\n")
	assert.Contains(t, msg, "Message-ID: <3b241101-e2bb-4255-8caf-4136c566a962@savantfs.com.au>\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8\r\n")
	assert.Contains(t, msg, "\r\n\r\nName: Jane\r\nEmail: jane@example.com")
}

func TestSMTPSender_BuildMessage_OmitsEmptyReplyTo(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "relay.example.com"}, 0, testLogger())
	m := sampleMessage()
	m.ReplyTo = ""

	raw, err := s.buildMessage(m)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Reply-To:")
}

func TestSMTPSender_BuildMessage_EncodesNonASCIISubject(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "relay.example.com"}, 0, testLogger())
	m := sampleMessage()
	m.Subject = "New enquiry: Résidential"

	raw, err := s.buildMessage(m)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Subject: =?utf-8?q?")
}

func TestSMTPSender_BuildMessage_StripsHeaderNewlines(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "relay.example.com"}, 0, testLogger())
	m := sampleMessage()
	m.Subject = "New enquiry: Other\r\nBcc: victim@example.com"

	raw, err := s.buildMessage(m)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "\r\nBcc:")
}

func TestNewSMTPSender_DefaultPort(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "relay.example.com"}, 0, testLogger())
	assert.Equal(t, DefaultSMTPPort, s.config.Port)
	assert.Equal(t, "relay.example.com:587", s.addr())
}

func TestSMTPSender_Send_DeliversToRelay(t *testing.T) {
	relay := startFakeRelay(t, false)
	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: relay.port(t)}, 5*time.Second, testLogger())

	err := s.Send(context.Background(), sampleMessage())
	require.NoError(t, err)

	from, rcpt, data := relay.snapshot()
	assert.Equal(t, "<info@savantfs.com.au>", from)
	assert.Equal(t, "<sakib@savantfs.com.au>", rcpt)
	assert.Contains(t, data, "Subject: New enquiry: Refinance")
	assert.Contains(t, data, "Name: Jane")
}

func TestSMTPSender_Send_RelayRejects(t *testing.T) {
	relay := startFakeRelay(t, true)
	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: relay.port(t)}, 5*time.Second, testLogger())

	err := s.Send(context.Background(), sampleMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relay rejected message")
}

func TestSMTPSender_Send_CredentialsWithoutAuthSupport(t *testing.T) {
	relay := startFakeRelay(t, false)
	s := NewSMTPSender(SMTPConfig{
		Host:     "127.0.0.1",
		Port:     relay.port(t),
		Username: "website",
		Password: "hunter2",
	}, 5*time.Second, testLogger())

	err := s.Send(context.Background(), sampleMessage())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")
}

func TestSMTPSender_Send_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: port}, 2*time.Second, testLogger())
	assert.Error(t, s.Send(context.Background(), sampleMessage()))
}

func TestSMTPSender_Send_MissingConfiguration(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{}, time.Second, testLogger())
	assert.Error(t, s.Send(context.Background(), sampleMessage()))

	m := sampleMessage()
	m.To = ""
	s = NewSMTPSender(SMTPConfig{Host: "127.0.0.1"}, time.Second, testLogger())
	assert.ErrorIs(t, s.Send(context.Background(), m), ErrNoRecipient)
}

func TestLogSender_Send(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := NewLogSender(logger).Send(context.Background(), sampleMessage())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "New enquiry: Refinance")

	m := sampleMessage()
	m.From = ""
	assert.ErrorIs(t, NewLogSender(logger).Send(context.Background(), m), ErrNoSender)
}
