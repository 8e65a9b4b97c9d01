package enquiry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/savant/internal/domain"
	"github.com/DukeRupert/savant/internal/email"
	"github.com/DukeRupert/savant/internal/metrics"
)

// Service dispatches enquiries to the operator mailbox.
type Service struct {
	sender    email.Sender
	addresses Addresses
	logger    *slog.Logger
}

// NewService creates an enquiry service that sends through sender.
func NewService(sender email.Sender, addresses Addresses, logger *slog.Logger) *Service {
	return &Service{
		sender:    sender,
		addresses: addresses,
		logger:    logger,
	}
}

// Dispatch composes and sends one enquiry. It returns once the relay has
// accepted the message. There is no retry; any failure is returned as a
// domain.EUNAVAILABLE error whose message carries no relay detail.
func (s *Service) Dispatch(ctx context.Context, e domain.Enquiry) error {
	const op = "enquiry.dispatch"

	id := uuid.NewString()
	label := metricsLabel(e.Service)
	if e.Service != "" && label == metrics.UnlistedService {
		s.logger.Warn("enquiry names an unlisted service",
			"id", id,
			"service", e.Service,
		)
	}

	msg := Compose(e, s.addresses)
	msg.ID = id

	start := time.Now()
	err := s.sender.Send(ctx, msg)
	elapsed := time.Since(start)

	if err != nil {
		metrics.EnquiryFailed(label, elapsed)
		s.logger.Error("enquiry dispatch failed",
			"id", id,
			"service", label,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return domain.Unavailable(err, op, "mail relay did not accept the enquiry")
	}

	metrics.EnquirySent(label, elapsed)
	s.logger.Info("enquiry dispatched",
		"id", id,
		"service", label,
		"has_email", e.Email != "",
		"duration_ms", elapsed.Milliseconds(),
	)
	return nil
}

// metricsLabel bounds the service label to the known set.
func metricsLabel(service string) string {
	switch {
	case service == "":
		return metrics.NoService
	case domain.IsKnownService(service):
		return service
	default:
		return metrics.UnlistedService
	}
}
