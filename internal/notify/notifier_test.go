package notify

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/momentalabs/momenta/internal/domain"
)

type recordingSender struct {
	titles []string
}

func (r *recordingSender) Send(ctx context.Context, title, message string) error {
	r.titles = append(r.titles, title)
	return nil
}

func (r *recordingSender) Name() string { return "recording" }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decided() domain.Decision {
	premium := decimal.NewFromFloat(42.5)
	return domain.Decision{
		ID:      "d-1",
		Signal:  domain.SideLong,
		Outcome: domain.OutcomeDecided,
		Option: &domain.OptionContract{
			Symbol:          "C-ETH-2990-010725",
			Type:            domain.CallOption,
			UnderlyingAsset: "ETH",
			Strike:          decimal.NewFromInt(2990),
		},
		Spot:         decimal.NewFromInt(3000),
		DaysToExpiry: 9.2,
		Premium:      &premium,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestNotifierForwardsAllowedOutcome(t *testing.T) {
	rec := &recordingSender{}
	n := NewNotifier([]Sender{rec}, []string{"decided"}, discard())

	if err := n.Decision(context.Background(), decided()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.titles) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rec.titles))
	}
}

func TestNotifierFiltersOutcome(t *testing.T) {
	rec := &recordingSender{}
	n := NewNotifier([]Sender{rec}, []string{"provider_error"}, discard())

	if err := n.Decision(context.Background(), decided()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.titles) != 0 {
		t.Fatalf("expected decision to be filtered, got %v", rec.titles)
	}
}

func TestFormatDecisionDecided(t *testing.T) {
	title, message := formatDecision(decided())
	if !strings.Contains(title, "C-ETH-2990-010725") {
		t.Fatalf("title should name the contract, got %q", title)
	}
	if !strings.Contains(message, "premium 42.5") {
		t.Fatalf("message should carry the premium, got %q", message)
	}
}

func TestFormatDecisionWithoutPremium(t *testing.T) {
	d := decided()
	d.Premium = nil
	_, message := formatDecision(d)
	if !strings.Contains(message, "premium unavailable") {
		t.Fatalf("expected premium unavailable note, got %q", message)
	}
}
