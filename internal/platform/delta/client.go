// Package delta implements the domain.MarketData interface against a
// Delta-Exchange-style REST API. All operations are unauthenticated,
// read-only GETs with no caching or retry policy; each webhook request
// refetches what it needs.
package delta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/momentalabs/momenta/internal/domain"
)

// Client is the REST client for the Delta Exchange public API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Delta REST client.
//
// baseURL is the API root, e.g. "https://api.delta.exchange".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetTickers returns the full ticker list.
func (c *Client) GetTickers(ctx context.Context) ([]Ticker, error) {
	body, err := c.doGet(ctx, "/v2/tickers")
	if err != nil {
		return nil, fmt.Errorf("delta: get tickers: %w", err)
	}

	var resp struct {
		Result []Ticker `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("delta: decode tickers: %w", err)
	}

	return resp.Result, nil
}

// GetTicker returns the ticker for one specific symbol.
func (c *Client) GetTicker(ctx context.Context, symbol string) (Ticker, error) {
	path := fmt.Sprintf("/v2/tickers/%s", url.PathEscape(symbol))

	body, err := c.doGet(ctx, path)
	if err != nil {
		return Ticker{}, fmt.Errorf("delta: get ticker %s: %w", symbol, err)
	}

	var resp struct {
		Result Ticker `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return Ticker{}, fmt.Errorf("delta: decode ticker: %w", err)
	}

	return resp.Result, nil
}

// GetProducts returns the full product catalog.
func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	body, err := c.doGet(ctx, "/v2/products")
	if err != nil {
		return nil, fmt.Errorf("delta: get products: %w", err)
	}

	var resp struct {
		Result []Product `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("delta: decode products: %w", err)
	}

	return resp.Result, nil
}

// --------------------------------------------------------------------------
// domain.MarketData implementation
// --------------------------------------------------------------------------

// SpotPrice scans the ticker list for an exact symbol match and returns its
// spot price. The error wraps domain.ErrNotFound when the symbol is absent.
func (c *Client) SpotPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	tickers, err := c.GetTickers(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	for _, t := range tickers {
		if t.Symbol != symbol {
			continue
		}
		raw := t.SpotPrice
		if raw == "" {
			raw = t.Close
		}
		spot, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("delta: spot price for %s: %w", symbol, err)
		}
		return spot, nil
	}

	return decimal.Decimal{}, fmt.Errorf("delta: spot symbol %s: %w", symbol, domain.ErrNotFound)
}

// OptionUniverse lists every call and put option on the given underlying
// asset. Products that are not options, belong to other assets, or carry an
// unparseable strike are skipped. An empty result is a valid outcome.
func (c *Client) OptionUniverse(ctx context.Context, asset string) ([]domain.OptionContract, error) {
	products, err := c.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]domain.OptionContract, 0, len(products))
	for _, p := range products {
		if p.UnderlyingAsset.Symbol != asset {
			continue
		}
		if o, ok := p.ToDomainOption(); ok {
			options = append(options, o)
		}
	}

	return options, nil
}

// LastPrice returns the last traded price for one contract symbol.
func (c *Client) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	ticker, err := c.GetTicker(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, err
	}

	price, err := ticker.lastPrice()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("delta: last price for %s: %w", symbol, err)
	}
	return price, nil
}

// Compile-time interface check.
var _ domain.MarketData = (*Client)(nil)

// --------------------------------------------------------------------------
// Internal helpers
// --------------------------------------------------------------------------

// doGet sends an unauthenticated GET request to the Delta API.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if err := checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}

	return body, nil
}

// checkStatus maps non-2xx HTTP status codes to errors.
func checkStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	var apiErr struct {
		Error APIError `json:"error"`
	}
	_ = json.Unmarshal(body, &apiErr)

	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, apiErr.Error.Code)
	case http.StatusTooManyRequests:
		return fmt.Errorf("rate limited: %s", apiErr.Error.Code)
	default:
		return fmt.Errorf("HTTP %d: %s %s", statusCode, apiErr.Error.Code, apiErr.Error.Message)
	}
}
