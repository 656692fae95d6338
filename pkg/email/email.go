// Package email delivers transactional mail such as password reset links.
package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDisabled       = errors.New("email: delivery disabled")
	ErrInvalidMessage = errors.New("email: invalid message")
)

// SendError is returned when the transport rejects a composed message.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("email: smtp delivery failed: %v", e.Err) }
func (e *SendError) Unwrap() error { return e.Err }

// Message is one outgoing mail. At least one of TextBody and HTMLBody must be set.
type Message struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

func (m Message) recipients() []string {
	out := make([]string, 0, len(m.To))
	for _, addr := range m.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidMessage, reason)
}
