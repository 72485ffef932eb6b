package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/momentalabs/momenta/internal/domain"
)

type stubProcessor struct {
	bodies   [][]byte
	decision domain.Decision
}

func (s *stubProcessor) Process(ctx context.Context, body []byte) domain.Decision {
	s.bodies = append(s.bodies, body)
	return s.decision
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postWebhook(t *testing.T, h *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)
	return rec
}

func TestWebhookAcknowledgesValidSignal(t *testing.T) {
	proc := &stubProcessor{decision: domain.Decision{Outcome: domain.OutcomeDecided}}
	h := NewWebhookHandler(proc, discard())

	rec := postWebhook(t, h, `{"signal":"LONG"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Fatalf("unexpected body: %s", got)
	}
	if len(proc.bodies) != 1 || string(proc.bodies[0]) != `{"signal":"LONG"}` {
		t.Fatalf("processor did not receive the body: %v", proc.bodies)
	}
}

func TestWebhookAcknowledgesMalformedBody(t *testing.T) {
	proc := &stubProcessor{decision: domain.Decision{Outcome: domain.OutcomeInvalidSignal}}
	h := NewWebhookHandler(proc, discard())

	for _, body := range []string{"", "not json", `{"signal":"HOLD"}`, "\x00\x01"} {
		rec := postWebhook(t, h, body)
		if rec.Code != http.StatusOK {
			t.Fatalf("body %q: expected 200, got %d", body, rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
			t.Fatalf("body %q: unexpected response %s", body, got)
		}
	}
}

func TestLivenessEndpoint(t *testing.T) {
	h := NewHealthHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.Liveness(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "Momenta webhook bot is running" {
		t.Fatalf("unexpected liveness body: %q", rec.Body.String())
	}
}

func TestHealthCheckEndpoint(t *testing.T) {
	h := NewHealthHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}
