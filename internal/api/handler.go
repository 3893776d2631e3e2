// Package api exposes the mail relay over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/shineum/mail-relay-lite/internal/email"
	"github.com/shineum/mail-relay-lite/internal/mailer"
)

// Response messages returned to callers.
const (
	msgInvalidJSON = "Invalid JSON payload."
	msgInternal    = "Internal server error"
	msgSent        = "Email sent successfully"
)

var (
	errNullPayload  = errors.New("payload is null")
	errTrailingData = errors.New("unexpected data after JSON payload")
)

// MailSender delivers a single email. *mailer.Sender satisfies it.
type MailSender interface {
	Send(ctx context.Context, subject, body, recipient string) error
}

// Handler serves the health and send-email endpoints.
type Handler struct {
	sender           MailSender
	defaultRecipient string
}

// NewHandler creates a Handler. defaultRecipient is used when a request omits
// recipient_email or leaves it blank.
func NewHandler(sender MailSender, defaultRecipient string) *Handler {
	return &Handler{
		sender:           sender,
		defaultRecipient: defaultRecipient,
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

type sendResponse struct {
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health always reports the process as healthy.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}

// SendEmail decodes, normalizes and validates the request, then sends it
// synchronously. Delivery and configuration failures are logged and reported
// to the caller without their cause.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	payload, err := decodeRequest(r.Body)
	if err != nil {
		slog.Warn("invalid JSON payload", "request_id", reqID, "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	req := payload.Normalize(h.defaultRecipient)
	if err := req.Validate(); err != nil {
		slog.Warn("validation error", "request_id", reqID, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A client disconnect must not abort a delivery already in progress.
	ctx := context.WithoutCancel(r.Context())
	if err := h.sender.Send(ctx, req.Subject, req.Body, req.Recipient); err != nil {
		if mailer.KindOf(err) == mailer.KindValidation {
			slog.Warn("validation error", "request_id", reqID, "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("error in /send-email endpoint",
			"request_id", reqID,
			"kind", mailer.KindOf(err).String(),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, sendResponse{
		Message:   msgSent,
		Recipient: req.Recipient,
	})
}

// decodeRequest parses exactly one JSON object from body. Trailing content
// after the object is rejected.
func decodeRequest(body io.Reader) (*email.Request, error) {
	dec := json.NewDecoder(body)

	var payload *email.Request
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errNullPayload
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return payload, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
