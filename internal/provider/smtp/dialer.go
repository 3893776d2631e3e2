package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// relayDialer runs one SMTP exchange over a connection it dials itself, so
// that a single deadline covers every read and write of the attempt.
// gomail's own Dialer only bounds the TCP connect.
type relayDialer struct {
	host      string
	port      int
	username  string
	password  string
	ssl       bool
	timeout   time.Duration
	tlsConfig *tls.Config
}

func (d *relayDialer) DialAndSend(ctx context.Context, m *gomail.Message) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	conn, err := d.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set deadline: %w", err)
	}

	// Unblock any pending read or write as soon as the caller gives up.
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer stop()

	c, err := smtp.NewClient(conn, d.host)
	if err != nil {
		return fmt.Errorf("greeting: %w", err)
	}
	defer c.Close()

	if !d.ssl {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(d.tlsConfig); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if d.username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", d.username, d.password, d.host)); err != nil {
				return fmt.Errorf("auth: %w", err)
			}
		}
	}

	if err := gomail.Send(submitFunc(c), m); err != nil {
		return err
	}

	return c.Quit()
}

func (d *relayDialer) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(d.host, strconv.Itoa(d.port))
	netDialer := &net.Dialer{}

	if d.ssl {
		tlsDialer := &tls.Dialer{NetDialer: netDialer, Config: d.tlsConfig}
		conn, err := tlsDialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("tls dial: %w", err)
		}
		return conn, nil
	}

	conn, err := netDialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	return conn, nil
}

// submitFunc sends one envelope over an established client.
func submitFunc(c *smtp.Client) gomail.SendFunc {
	return func(from string, to []string, msg io.WriterTo) error {
		if err := c.Mail(from); err != nil {
			return fmt.Errorf("mail from: %w", err)
		}
		for _, addr := range to {
			if err := c.Rcpt(addr); err != nil {
				return fmt.Errorf("rcpt to %s: %w", addr, err)
			}
		}

		w, err := c.Data()
		if err != nil {
			return fmt.Errorf("data: %w", err)
		}
		if _, err := msg.WriteTo(w); err != nil {
			w.Close()
			return fmt.Errorf("write message: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("data: %w", err)
		}
		return nil
	}
}
