package delta

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/momentalabs/momenta/internal/domain"
)

// --------------------------------------------------------------------------
// Delta Exchange API DTOs
// --------------------------------------------------------------------------

// Ticker represents one entry of the provider's ticker list. Price fields
// arrive as strings.
type Ticker struct {
	Symbol    string `json:"symbol"`
	SpotPrice string `json:"spot_price"`
	Close     string `json:"close"`
	MarkPrice string `json:"mark_price"`
}

// UnderlyingAsset is the nested asset descriptor on a product.
type UnderlyingAsset struct {
	Symbol string `json:"symbol"`
}

// Product represents one listed product. Only option products carry a
// strike and a settlement time; SettlementTime is an epoch-millisecond
// timestamp.
type Product struct {
	Symbol          string          `json:"symbol"`
	ContractType    string          `json:"contract_type"`
	StrikePrice     string          `json:"strike_price"`
	SettlementTime  int64           `json:"settlement_time"`
	UnderlyingAsset UnderlyingAsset `json:"underlying_asset"`
}

// APIError is the provider's error envelope on non-2xx responses.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IsOption reports whether the product is a call or put option.
func (p Product) IsOption() bool {
	return p.ContractType == string(domain.CallOption) || p.ContractType == string(domain.PutOption)
}

// ToDomainOption converts the product into a domain contract. The boolean is
// false when the product is not an option or its strike does not parse.
func (p Product) ToDomainOption() (domain.OptionContract, bool) {
	if !p.IsOption() {
		return domain.OptionContract{}, false
	}
	strike, err := decimal.NewFromString(p.StrikePrice)
	if err != nil {
		return domain.OptionContract{}, false
	}
	return domain.OptionContract{
		Symbol:          p.Symbol,
		Type:            domain.ContractType(p.ContractType),
		UnderlyingAsset: p.UnderlyingAsset.Symbol,
		Strike:          strike,
		SettlementTime:  time.UnixMilli(p.SettlementTime).UTC(),
	}, true
}

// lastPrice picks the best available traded-price field from a ticker.
func (t Ticker) lastPrice() (decimal.Decimal, error) {
	for _, raw := range []string{t.Close, t.MarkPrice} {
		if raw == "" {
			continue
		}
		if d, err := decimal.NewFromString(raw); err == nil {
			return d, nil
		}
	}
	return decimal.Decimal{}, domain.ErrNoQuote
}
