package email

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		req              Request
		defaultRecipient string
		want             Request
	}{
		{
			name: "trims all fields",
			req:  Request{Subject: "  Hi ", Body: "\tbody\n", Recipient: " to@example.com "},
			want: Request{Subject: "Hi", Body: "body", Recipient: "to@example.com"},
		},
		{
			name:             "omitted recipient uses default",
			req:              Request{Subject: "Hi", Body: "body"},
			defaultRecipient: "default@example.com",
			want:             Request{Subject: "Hi", Body: "body", Recipient: "default@example.com"},
		},
		{
			name:             "blank recipient uses default",
			req:              Request{Subject: "Hi", Body: "body", Recipient: "   "},
			defaultRecipient: " default@example.com",
			want:             Request{Subject: "Hi", Body: "body", Recipient: "default@example.com"},
		},
		{
			name:             "explicit recipient wins over default",
			req:              Request{Subject: "Hi", Body: "body", Recipient: "to@example.com"},
			defaultRecipient: "default@example.com",
			want:             Request{Subject: "Hi", Body: "body", Recipient: "to@example.com"},
		},
		{
			name: "no recipient and no default stays empty",
			req:  Request{Subject: "Hi", Body: "body"},
			want: Request{Subject: "Hi", Body: "body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.req.Normalize(tt.defaultRecipient); got != tt.want {
				t.Errorf("Normalize(): got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "valid", req: Request{Subject: "s", Body: "b", Recipient: "r@example.com"}},
		{name: "all empty reports subject first", req: Request{}, want: ErrEmptySubject},
		{name: "empty body", req: Request{Subject: "s", Recipient: "r@example.com"}, want: ErrEmptyBody},
		{name: "body and recipient empty reports body", req: Request{Subject: "s"}, want: ErrEmptyBody},
		{name: "empty recipient", req: Request{Subject: "s", Body: "b"}, want: ErrEmptyRecipient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate(): got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	t.Parallel()

	if got := ErrEmptySubject.Error(); got != "Subject cannot be empty" {
		t.Errorf("subject message: got %q", got)
	}
	if got := ErrEmptyBody.Error(); got != "Body cannot be empty" {
		t.Errorf("body message: got %q", got)
	}
	if got := ErrEmptyRecipient.Error(); got != "Recipient email is required" {
		t.Errorf("recipient message: got %q", got)
	}
}
