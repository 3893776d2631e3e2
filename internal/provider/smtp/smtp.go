// Package smtp implements a Provider that submits emails to an SMTP relay
// over an implicitly encrypted connection.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/shineum/mail-relay-lite/internal/email"
)

// Relay defaults. Port 465 means implicit TLS.
const (
	DefaultHost    = "smtp.gmail.com"
	DefaultPort    = 465
	DefaultTimeout = 10 * time.Second
)

// ErrMissingCredentials is returned by CheckConfig when the relay account
// username or password is not set.
var ErrMissingCredentials = errors.New("smtp username and password are required")

// SMTPProviderConfig holds the configuration for creating an SMTPProvider.
type SMTPProviderConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// Timeout bounds one whole attempt: dial, TLS handshake, greeting,
	// authentication and submission. Zero means DefaultTimeout.
	Timeout time.Duration

	// TLSConfig overrides the client TLS configuration. Nil verifies the
	// relay certificate against Host.
	TLSConfig *tls.Config
}

// Dialer opens a connection, authenticates, submits the message and closes
// the connection, giving up when ctx is done.
type Dialer interface {
	DialAndSend(ctx context.Context, m *gomail.Message) error
}

// SMTPProvider sends emails through an authenticated SMTP relay.
type SMTPProvider struct {
	host        string
	port        int
	credentials bool
	dialer      Dialer
}

// New creates a new SMTPProvider with the given configuration. Empty host,
// zero port and zero timeout fall back to the package defaults.
func New(cfg SMTPProviderConfig) *SMTPProvider {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	tlsConfig := cfg.TLSConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	}

	return &SMTPProvider{
		host:        cfg.Host,
		port:        cfg.Port,
		credentials: cfg.Username != "" && cfg.Password != "",
		dialer: &relayDialer{
			host:      cfg.Host,
			port:      cfg.Port,
			username:  cfg.Username,
			password:  cfg.Password,
			ssl:       cfg.Port == 465,
			timeout:   cfg.Timeout,
			tlsConfig: tlsConfig,
		},
	}
}

// NewWithDialer creates an SMTPProvider with a custom dialer, used for testing.
func NewWithDialer(cfg SMTPProviderConfig, dialer Dialer) *SMTPProvider {
	p := New(cfg)
	p.dialer = dialer
	return p
}

// Send performs one connect, authenticate, submit and disconnect cycle.
func (p *SMTPProvider) Send(ctx context.Context, msg *email.Email) error {
	slog.Debug("dialing SMTP relay",
		"host", p.host,
		"port", p.port,
	)

	if err := p.dialer.DialAndSend(ctx, buildMessage(msg)); err != nil {
		return fmt.Errorf("smtp relay %s: %w", p.Addr(), err)
	}
	return nil
}

// CheckConfig reports ErrMissingCredentials when the relay account is not set.
func (p *SMTPProvider) CheckConfig() error {
	if !p.credentials {
		return ErrMissingCredentials
	}
	return nil
}

// Name returns the provider name.
func (p *SMTPProvider) Name() string {
	return "smtp"
}

// Addr returns the relay address in host:port form.
func (p *SMTPProvider) Addr() string {
	return fmt.Sprintf("%s:%d", p.host, p.port)
}

// buildMessage converts an outbound email into a plain-text gomail message.
func buildMessage(msg *email.Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.MessageID != "" {
		m.SetHeader("Message-ID", msg.MessageID)
	}
	m.SetBody("text/plain", msg.TextBody)
	return m
}
