package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// MarketData is the read-only boundary to the external quote provider. All
// three operations are single fresh fetches: no caching, no retries.
type MarketData interface {
	// SpotPrice scans the provider's ticker list for an exact symbol match
	// and returns its spot price. The error wraps ErrNotFound when the
	// symbol is absent.
	SpotPrice(ctx context.Context, symbol string) (decimal.Decimal, error)

	// OptionUniverse lists every call and put option on the given
	// underlying asset. An empty catalog yields an empty slice, not an
	// error.
	OptionUniverse(ctx context.Context, asset string) ([]OptionContract, error)

	// LastPrice returns the last traded price for one contract symbol.
	LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// DecisionStream publishes decision records to a side channel (Redis
// pub/sub, WebSocket clients). Publishing is best-effort: a stream failure
// never fails the request that produced the decision.
type DecisionStream interface {
	Publish(ctx context.Context, d Decision) error
}
