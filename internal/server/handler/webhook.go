package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/momentalabs/momenta/internal/domain"
)

// maxBodySize caps webhook bodies at 1 MiB; the signal source is untrusted.
const maxBodySize = 1 << 20

// DecisionProcessor runs one webhook body through the decision pipeline.
type DecisionProcessor interface {
	Process(ctx context.Context, body []byte) domain.Decision
}

// WebhookHandler receives trading-signal events.
type WebhookHandler struct {
	processor DecisionProcessor
	logger    *slog.Logger
}

// NewWebhookHandler creates a WebhookHandler backed by the given processor.
func NewWebhookHandler(processor DecisionProcessor, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		processor: processor,
		logger:    logger.With(slog.String("handler", "webhook")),
	}
}

// HandleWebhook accepts a signal event and acknowledges it. Every body —
// valid signal, garbage, or empty — is answered with 200 {"status":"ok"}:
// the caller cannot distinguish outcomes from the HTTP response, only from
// the decision side channels, and must never be provoked into retrying.
// POST /webhook
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to read webhook body",
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	h.logger.InfoContext(r.Context(), "received alert",
		slog.String("body", string(body)),
	)

	// The outcome is reported via logs and decision streams only.
	h.processor.Process(r.Context(), body)

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
