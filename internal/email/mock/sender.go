package mock

import (
	"context"
	"sync"

	"github.com/DukeRupert/savant/internal/email"
)

// Sender is a mock mail transport for testing
type Sender struct {
	mu sync.Mutex

	// Configurable error for testing
	SendError error

	// Call tracking for testing
	SendCalls int
	Messages  []email.Message
}

// New creates a new mock sender that accepts every message
func New() *Sender {
	return &Sender{}
}

// Send records the message and returns SendError
func (s *Sender) Send(ctx context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SendCalls++
	s.Messages = append(s.Messages, msg)
	return s.SendError
}

// SetError changes SendError while the sender may be in use
func (s *Sender) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SendError = err
}

// Last returns the most recently sent message
func (s *Sender) Last() (email.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.Messages) == 0 {
		return email.Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

var _ email.Sender = (*Sender)(nil)
