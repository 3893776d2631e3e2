package mailer

import (
	"errors"
	"fmt"
)

// Kind classifies why a send failed so callers can branch without string matching.
type Kind int

const (
	// KindValidation means a required field was empty. Never retried.
	KindValidation Kind = iota + 1
	// KindConfiguration means sender credentials or settings are missing.
	KindConfiguration
	// KindDelivery means every submission attempt failed.
	KindDelivery
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// ErrMissingSender is the configuration failure for an unset sender address.
var ErrMissingSender = errors.New("sender address is not configured")

// Error is returned by Sender.Send for every failure.
type Error struct {
	Kind Kind
	// Attempts is the number of submission attempts made. Zero unless Kind is KindDelivery.
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return e.Err.Error()
	case KindConfiguration:
		return fmt.Sprintf("mail configuration error: %v", e.Err)
	default:
		return fmt.Sprintf("mail delivery failed after %d attempts: %v", e.Attempts, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or zero if err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
