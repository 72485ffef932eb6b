// Package notify delivers dry-run decision records to operators over
// Telegram and Discord. Delivery is best-effort and filtered by outcome, so
// operators can subscribe to completed decisions only, or to every terminal
// state including malformed signals.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/momentalabs/momenta/internal/domain"
)

// Sender is the interface each notification channel implements.
type Sender interface {
	// Send delivers a notification with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name returns a human-readable identifier for the sender.
	Name() string
}

// Notifier formats decision records and dispatches them to all configured
// senders. Only decisions whose outcome is in the allowed set are forwarded;
// an empty set allows everything.
type Notifier struct {
	senders  []Sender
	outcomes map[domain.Outcome]bool
	logger   *slog.Logger
}

// NewNotifier creates a Notifier delivering to the given senders. outcomes
// lists the decision outcomes to forward; empty means all.
func NewNotifier(senders []Sender, outcomes []string, logger *slog.Logger) *Notifier {
	allowed := make(map[domain.Outcome]bool, len(outcomes))
	for _, o := range outcomes {
		allowed[domain.Outcome(strings.TrimSpace(o))] = true
	}
	return &Notifier{
		senders:  senders,
		outcomes: allowed,
		logger:   logger.With(slog.String("component", "notifier")),
	}
}

// Decision formats and dispatches one decision record. Individual sender
// failures are logged and collected; they never fail the webhook request
// that produced the decision.
func (n *Notifier) Decision(ctx context.Context, d domain.Decision) error {
	if len(n.senders) == 0 {
		return nil
	}
	if len(n.outcomes) > 0 && !n.outcomes[d.Outcome] {
		return nil
	}

	title, message := formatDecision(d)

	var errs []string
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("%s: %v", s.Name(), err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}

// formatDecision renders a decision as a short operator-readable message.
func formatDecision(d domain.Decision) (title, message string) {
	switch d.Outcome {
	case domain.OutcomeDecided:
		title = fmt.Sprintf("Dry run: %s via %s", d.Signal, d.Option.Symbol)
		lines := []string{
			fmt.Sprintf("strike %s, spot %s", d.Option.Strike, d.Spot),
			fmt.Sprintf("expires in %.1f days", d.DaysToExpiry),
		}
		if d.Premium != nil {
			lines = append(lines, fmt.Sprintf("premium %s", d.Premium))
		} else {
			lines = append(lines, "premium unavailable")
		}
		message = strings.Join(lines, "\n")
	case domain.OutcomeNoOption:
		title = fmt.Sprintf("Dry run: %s, no eligible contract", d.Signal)
		message = d.Reason
	case domain.OutcomeInvalidSignal:
		title = "Webhook: invalid signal"
		message = d.Reason
	case domain.OutcomeProviderError:
		title = "Market data provider failure"
		message = d.Reason
	default:
		title = string(d.Outcome)
		message = d.Reason
	}
	return title, message
}
