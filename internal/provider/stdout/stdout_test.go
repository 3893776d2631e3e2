package stdout

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shineum/mail-relay-lite/internal/email"
	"github.com/shineum/mail-relay-lite/internal/provider"
)

func TestSend_BasicEmail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &email.Email{
		From:      "sender@example.com",
		To:        "alice@example.com",
		Subject:   "Monthly Report",
		TextBody:  "Please find the report below.",
		MessageID: "<id-1@example.com>",
	}

	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"From: sender@example.com",
		"To: alice@example.com",
		"Subject: Monthly Report",
		"Message-ID: <id-1@example.com>",
		"Please find the report below.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.HasPrefix(output, separator) {
		t.Error("output should start with separator line")
	}
	if !strings.HasSuffix(output, separator) {
		t.Error("output should end with separator line")
	}
}

func TestSend_NoMessageID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &email.Email{From: "a@example.com", To: "b@example.com", Subject: "s", TextBody: "b"}
	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "Message-ID:") {
		t.Error("output should not contain Message-ID line when unset")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSend_WriteError(t *testing.T) {
	t.Parallel()

	p := NewWithWriter(failingWriter{})
	err := p.Send(context.Background(), &email.Email{To: "b@example.com"})
	if err == nil {
		t.Fatal("expected error from failing writer")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("error should carry the cause: %v", err)
	}
}

func TestName(t *testing.T) {
	t.Parallel()
	if got := New().Name(); got != "stdout" {
		t.Errorf("Name(): got %q, want %q", got, "stdout")
	}
}

func TestProvider_NeedsNoCredentials(t *testing.T) {
	t.Parallel()

	var p provider.Provider = New()
	if _, ok := p.(provider.ConfigChecker); ok {
		t.Error("stdout provider should not require relay credentials")
	}
}
