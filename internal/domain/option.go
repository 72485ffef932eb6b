// Package domain defines the core types shared across the momenta service:
// trading sides, option contracts, decision records, and the interfaces that
// platform and messaging adapters implement.
package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of an incoming trading signal.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// ContractType identifies an option product kind using the provider's
// contract_type values.
type ContractType string

const (
	CallOption ContractType = "call_options"
	PutOption  ContractType = "put_options"
)

// ContractType maps a signal side to the option type that expresses it: a
// long bias is taken via a call purchase, a short bias via a put. The
// mapping is fixed trading semantics, not configuration.
func (s Side) ContractType() ContractType {
	if s == SideShort {
		return PutOption
	}
	return CallOption
}

// OptionContract is one tradable option as listed by the market-data
// provider.
type OptionContract struct {
	Symbol          string          `json:"symbol"`
	Type            ContractType    `json:"contract_type"`
	UnderlyingAsset string          `json:"underlying_asset"`
	Strike          decimal.Decimal `json:"strike_price"`
	SettlementTime  time.Time       `json:"settlement_time"`
}

const secondsPerDay = 86400

// DaysToExpiry returns the contract's tenor in days relative to now. It is
// derived on demand rather than stored on the contract, so the same snapshot
// can be re-evaluated at a different instant.
func (o OptionContract) DaysToExpiry(now time.Time) float64 {
	return math.Abs(o.SettlementTime.Sub(now).Seconds()) / secondsPerDay
}
