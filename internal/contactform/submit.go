package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/DukeRupert/savant/internal/notify"
)

const (
	// DefaultEndpoint is the enquiry API path on the site.
	DefaultEndpoint = "/api/contact"

	// DefaultTimeout bounds a single submission.
	DefaultTimeout = 30 * time.Second

	SuccessMessage = "Thanks! Your enquiry has been sent to the SavantFS team."
	FailureMessage = "Something went wrong sending your enquiry. Please try again or email info@savantfs.com.au."
)

// ErrInFlight is returned when a submission is attempted while another one
// is still waiting for a response.
var ErrInFlight = errors.New("contactform: submission already in progress")

// Submitter posts enquiries to the site and reports outcomes.
type Submitter struct {
	endpoint string
	client   *http.Client
	notifier *notify.Notifier
	logger   *slog.Logger

	inFlight atomic.Bool
}

// NewSubmitter creates a submitter that posts to endpoint (an absolute URL).
// A nil client gets one with DefaultTimeout.
func NewSubmitter(endpoint string, client *http.Client, notifier *notify.Notifier, logger *slog.Logger) *Submitter {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Submitter{
		endpoint: endpoint,
		client:   client,
		notifier: notifier,
		logger:   logger,
	}
}

// Submitting reports whether a submission is in flight. The rendered form
// disables its submit button while this is true.
func (s *Submitter) Submitting() bool {
	return s.inFlight.Load()
}

// Submit validates f and posts it once. Validation errors are returned
// without touching the network or the notifier. Otherwise the notifier shows
// pending while the post is out, replacing any earlier outcome, then the
// outcome; on success the form is reset. The returned
// error describes a failed post; the visitor only ever sees FailureMessage.
func (s *Submitter) Submit(ctx context.Context, f *Form) error {
	if err := f.Validate(); err != nil {
		return err
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer s.inFlight.Store(false)

	s.notifier.Show(notify.Pending())
	if err := s.post(ctx, f); err != nil {
		s.logger.Error("enquiry submission failed", "error", err)
		s.notifier.Show(notify.Failure(FailureMessage))
		return err
	}

	s.notifier.Show(notify.Success(SuccessMessage))
	f.Reset()
	return nil
}

func (s *Submitter) post(ctx context.Context, f *Form) error {
	body, err := json.Marshal(f.Enquiry())
	if err != nil {
		return fmt.Errorf("encode enquiry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send enquiry: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("enquiry rejected: status %d", resp.StatusCode)
	}
	return nil
}
