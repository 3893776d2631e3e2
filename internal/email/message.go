// Package email defines the core email data model used throughout the mail relay.
package email

import (
	"errors"
	"strings"
)

// Validation failures reported by Request.Validate, in check order.
var (
	ErrEmptySubject   = errors.New("Subject cannot be empty")
	ErrEmptyBody      = errors.New("Body cannot be empty")
	ErrEmptyRecipient = errors.New("Recipient email is required")
)

// Request is an inbound request to send a single email.
type Request struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Recipient string `json:"recipient_email"`
}

// Normalize trims every field and falls back to defaultRecipient when the
// recipient is omitted or blank.
func (r Request) Normalize(defaultRecipient string) Request {
	r.Subject = strings.TrimSpace(r.Subject)
	r.Body = strings.TrimSpace(r.Body)
	r.Recipient = strings.TrimSpace(r.Recipient)
	if r.Recipient == "" {
		r.Recipient = strings.TrimSpace(defaultRecipient)
	}
	return r
}

// Validate reports the first empty field. Callers are expected to Normalize first.
func (r Request) Validate() error {
	switch {
	case r.Subject == "":
		return ErrEmptySubject
	case r.Body == "":
		return ErrEmptyBody
	case r.Recipient == "":
		return ErrEmptyRecipient
	}
	return nil
}

// Email is an outbound message handed to a provider for one submission.
type Email struct {
	From      string
	To        string
	Subject   string
	TextBody  string
	MessageID string
}
