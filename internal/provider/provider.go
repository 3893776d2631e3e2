// Package provider defines the interface for email delivery backends.
package provider

import (
	"context"

	"github.com/shineum/mail-relay-lite/internal/email"
)

// Provider is the interface that email delivery backends must implement.
// Each call to Send is exactly one submission attempt; retrying is the
// caller's job.
type Provider interface {
	// Send delivers an email message through this provider.
	// It returns an error if the delivery fails.
	Send(ctx context.Context, msg *email.Email) error

	// Name returns the human-readable name of this provider.
	Name() string
}

// ConfigChecker is implemented by providers that need credentials or other
// settings before they can attempt delivery.
type ConfigChecker interface {
	// CheckConfig returns an error if the provider is missing required
	// configuration. It must not perform network I/O.
	CheckConfig() error
}
