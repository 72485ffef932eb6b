package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome is the terminal state a webhook request ends in. Only
// OutcomeProviderError represents an infrastructure failure; the others are
// valid business results.
type Outcome string

const (
	OutcomeDecided       Outcome = "decided"
	OutcomeNoOption      Outcome = "no_option"
	OutcomeInvalidSignal Outcome = "invalid_signal"
	OutcomeProviderError Outcome = "provider_error"
)

// Decision is the dry-run record produced for every webhook request. It
// names the contract that would have been traded and what it currently
// costs; no order is ever placed. Decisions are request-scoped: they are
// logged and published, never stored.
type Decision struct {
	ID           string           `json:"id"`
	Signal       Side             `json:"signal,omitempty"`
	Outcome      Outcome          `json:"outcome"`
	Option       *OptionContract  `json:"option,omitempty"`
	Spot         decimal.Decimal  `json:"spot_price"`
	DaysToExpiry float64          `json:"days_to_expiry,omitempty"`
	Premium      *decimal.Decimal `json:"premium,omitempty"`
	Reason       string           `json:"reason,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}
