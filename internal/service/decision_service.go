// Package service orchestrates the per-request decision flow: parse the
// inbound signal, fetch market data, run the selector, price the chosen
// contract, and fan the resulting decision record out to the configured
// side channels.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/momentalabs/momenta/internal/domain"
	"github.com/momentalabs/momenta/internal/notify"
	"github.com/momentalabs/momenta/internal/selector"
)

// DecisionService handles one webhook body at a time. It is stateless;
// every invocation performs fresh fetches and reaches exactly one terminal
// outcome.
type DecisionService struct {
	md         domain.MarketData
	sel        *selector.Selector
	spotSymbol string
	streams    []domain.DecisionStream
	notifier   *notify.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewDecisionService creates a DecisionService. streams and notifier may be
// empty/nil; the decision is then only logged.
func NewDecisionService(
	md domain.MarketData,
	sel *selector.Selector,
	spotSymbol string,
	streams []domain.DecisionStream,
	notifier *notify.Notifier,
	logger *slog.Logger,
) *DecisionService {
	return &DecisionService{
		md:         md,
		sel:        sel,
		spotSymbol: spotSymbol,
		streams:    streams,
		notifier:   notifier,
		logger:     logger.With(slog.String("component", "decision_service")),
		now:        time.Now,
	}
}

// Process runs one webhook body through the decision state machine and
// returns the terminal decision record. It never returns an error: provider
// failures become provider_error decisions so the transport layer can still
// acknowledge the caller and avoid upstream retry storms.
func (s *DecisionService) Process(ctx context.Context, body []byte) domain.Decision {
	d := domain.Decision{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
	}

	side, ok := domain.ParseSignal(body)
	if !ok {
		d.Outcome = domain.OutcomeInvalidSignal
		d.Reason = "body is not a valid LONG/SHORT signal"
		return s.finish(ctx, d)
	}
	d.Signal = side

	spot, err := s.md.SpotPrice(ctx, s.spotSymbol)
	if err != nil {
		d.Outcome = domain.OutcomeProviderError
		d.Reason = "fetch spot price: " + err.Error()
		return s.finish(ctx, d)
	}
	d.Spot = spot

	universe, err := s.md.OptionUniverse(ctx, s.sel.Asset())
	if err != nil {
		d.Outcome = domain.OutcomeProviderError
		d.Reason = "fetch option universe: " + err.Error()
		return s.finish(ctx, d)
	}

	now := s.now()
	option, found := s.sel.Select(universe, spot, side, now)
	if !found {
		d.Outcome = domain.OutcomeNoOption
		d.Reason = "no eligible contract in the current universe"
		return s.finish(ctx, d)
	}
	d.Option = &option
	d.DaysToExpiry = option.DaysToExpiry(now)
	d.Outcome = domain.OutcomeDecided

	premium, err := s.md.LastPrice(ctx, option.Symbol)
	if err != nil {
		// The selected contract is still the answer; only its price is
		// missing.
		s.logger.WarnContext(ctx, "premium fetch failed",
			slog.String("symbol", option.Symbol),
			slog.String("error", err.Error()),
		)
	} else {
		d.Premium = &premium
	}

	return s.finish(ctx, d)
}

// finish logs the decision, pushes it to all side channels, and returns it.
func (s *DecisionService) finish(ctx context.Context, d domain.Decision) domain.Decision {
	attrs := []any{
		slog.String("decision_id", d.ID),
		slog.String("outcome", string(d.Outcome)),
	}
	if d.Signal != "" {
		attrs = append(attrs, slog.String("signal", string(d.Signal)))
	}
	if d.Option != nil {
		attrs = append(attrs,
			slog.String("symbol", d.Option.Symbol),
			slog.String("strike", d.Option.Strike.String()),
			slog.String("spot", d.Spot.String()),
			slog.Float64("days_to_expiry", d.DaysToExpiry),
		)
		if d.Premium != nil {
			attrs = append(attrs, slog.String("premium", d.Premium.String()))
		}
	}
	if d.Reason != "" {
		attrs = append(attrs, slog.String("reason", d.Reason))
	}

	switch d.Outcome {
	case domain.OutcomeProviderError:
		s.logger.ErrorContext(ctx, "decision", attrs...)
	default:
		s.logger.InfoContext(ctx, "decision", attrs...)
	}

	for _, stream := range s.streams {
		if err := stream.Publish(ctx, d); err != nil {
			s.logger.WarnContext(ctx, "decision stream publish failed",
				slog.String("decision_id", d.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.Decision(ctx, d); err != nil {
			s.logger.WarnContext(ctx, "decision notification failed",
				slog.String("decision_id", d.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return d
}
