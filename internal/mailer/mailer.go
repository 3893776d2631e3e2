// Package mailer builds outbound messages and submits them through a
// delivery provider with a bounded number of attempts.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/shineum/mail-relay-lite/internal/email"
	"github.com/shineum/mail-relay-lite/internal/metrics"
	"github.com/shineum/mail-relay-lite/internal/provider"
)

// MaxAttempts is the total number of submission attempts per message.
const MaxAttempts = 3

// DefaultAttemptTimeout bounds a single submission attempt.
const DefaultAttemptTimeout = 10 * time.Second

// Sender relays single-recipient emails from a fixed sender address.
// It holds no mutable state and is safe for concurrent use.
type Sender struct {
	provider       provider.Provider
	from           string
	attemptTimeout time.Duration
}

// Option configures a Sender.
type Option func(*Sender)

// WithAttemptTimeout overrides DefaultAttemptTimeout. Non-positive values are ignored.
func WithAttemptTimeout(d time.Duration) Option {
	return func(s *Sender) {
		if d > 0 {
			s.attemptTimeout = d
		}
	}
}

// New creates a Sender that delivers through p using from as the From address.
func New(p provider.Provider, from string, opts ...Option) *Sender {
	s := &Sender{
		provider:       p,
		from:           strings.TrimSpace(from),
		attemptTimeout: DefaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProviderName returns the name of the configured provider.
func (s *Sender) ProviderName() string {
	return s.provider.Name()
}

// Send validates its arguments, checks configuration and submits the message,
// retrying immediately on failure up to MaxAttempts in total. Each attempt
// runs under its own timeout. Every returned error is a *Error.
func (s *Sender) Send(ctx context.Context, subject, body, recipient string) error {
	req := email.Request{Subject: subject, Body: body, Recipient: recipient}.Normalize("")
	if err := req.Validate(); err != nil {
		return s.fail(req.Recipient, &Error{Kind: KindValidation, Err: err})
	}

	if err := s.checkConfig(); err != nil {
		return s.fail(req.Recipient, &Error{Kind: KindConfiguration, Err: err})
	}

	msg := &email.Email{
		From:      s.from,
		To:        req.Recipient,
		Subject:   req.Subject,
		TextBody:  req.Body,
		MessageID: newMessageID(s.from),
	}

	name := s.provider.Name()
	attempts := 0

	err := retry.Do(ctx, newBackoff(), func(ctx context.Context) error {
		attempts++
		slog.Info("connecting to mail provider",
			"provider", name,
			"attempt", attempts,
			"max_attempts", MaxAttempts,
		)
		metrics.SendAttempts.WithLabelValues(name).Inc()

		attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
		defer cancel()

		if err := s.provider.Send(attemptCtx, msg); err != nil {
			if attempts < MaxAttempts {
				slog.Warn("send attempt failed",
					"provider", name,
					"attempt", attempts,
					"error", err,
				)
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return s.fail(req.Recipient, &Error{Kind: KindDelivery, Attempts: attempts, Err: err})
	}

	slog.Info("email sent successfully",
		"provider", name,
		"recipient", msg.To,
		"message_id", msg.MessageID,
		"attempts", attempts,
	)
	metrics.SendSuccess.WithLabelValues(name).Inc()
	return nil
}

func (s *Sender) checkConfig() error {
	if s.from == "" {
		return ErrMissingSender
	}
	if c, ok := s.provider.(provider.ConfigChecker); ok {
		if err := c.CheckConfig(); err != nil {
			return fmt.Errorf("%s provider: %w", s.provider.Name(), err)
		}
	}
	return nil
}

func (s *Sender) fail(recipient string, e *Error) error {
	slog.Error("failed to send email",
		"provider", s.provider.Name(),
		"recipient", recipient,
		"kind", e.Kind.String(),
		"attempts", e.Attempts,
		"error", e.Err,
	)
	metrics.SendFailure.WithLabelValues(s.provider.Name(), e.Kind.String()).Inc()
	return e
}

// newBackoff allows MaxAttempts-1 retries with no delay between attempts.
func newBackoff() retry.Backoff {
	immediate := retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	})
	return retry.WithMaxRetries(MaxAttempts-1, immediate)
}

// newMessageID returns an RFC 5322 Message-ID in the sender's domain.
func newMessageID(from string) string {
	domain := "localhost"
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		domain = from[i+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
