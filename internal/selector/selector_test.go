package selector

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/momentalabs/momenta/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func ethCall(symbol string, strike float64, dte float64) domain.OptionContract {
	return ethOption(symbol, domain.CallOption, strike, dte)
}

func ethPut(symbol string, strike float64, dte float64) domain.OptionContract {
	return ethOption(symbol, domain.PutOption, strike, dte)
}

func ethOption(symbol string, typ domain.ContractType, strike float64, dte float64) domain.OptionContract {
	return domain.OptionContract{
		Symbol:          symbol,
		Type:            typ,
		UnderlyingAsset: "ETH",
		Strike:          decimal.NewFromFloat(strike),
		SettlementTime:  testNow.Add(time.Duration(dte * 24 * float64(time.Hour))),
	}
}

func TestSelectEmptyUniverse(t *testing.T) {
	s := New("ETH", 10, 20)
	if _, ok := s.Select(nil, decimal.NewFromInt(3000), domain.SideLong, testNow); ok {
		t.Fatal("expected no selection from an empty universe")
	}
}

func TestSelectLongPicksCall(t *testing.T) {
	s := New("ETH", 10, 20)
	options := []domain.OptionContract{
		ethPut("P-ETH-3000", 3000, 10),
		ethCall("C-ETH-3000", 3000, 10),
	}
	got, ok := s.Select(options, decimal.NewFromInt(3000), domain.SideLong, testNow)
	if !ok {
		t.Fatal("expected a selection")
	}
	if got.Type != domain.CallOption {
		t.Fatalf("LONG must select a call, got %s (%s)", got.Type, got.Symbol)
	}
}

func TestSelectShortPicksPut(t *testing.T) {
	s := New("ETH", 10, 20)
	options := []domain.OptionContract{
		ethCall("C-ETH-3000", 3000, 10),
		ethPut("P-ETH-3000", 3000, 10),
	}
	got, ok := s.Select(options, decimal.NewFromInt(3000), domain.SideShort, testNow)
	if !ok {
		t.Fatal("expected a selection")
	}
	if got.Type != domain.PutOption {
		t.Fatalf("SHORT must select a put, got %s (%s)", got.Type, got.Symbol)
	}
}

func TestSelectFiltersForeignAssets(t *testing.T) {
	s := New("ETH", 10, 20)
	btc := domain.OptionContract{
		Symbol:          "C-BTC-60000",
		Type:            domain.CallOption,
		UnderlyingAsset: "BTC",
		Strike:          decimal.NewFromInt(60000),
		SettlementTime:  testNow.Add(10 * 24 * time.Hour),
	}
	if _, ok := s.Select([]domain.OptionContract{btc}, decimal.NewFromInt(3000), domain.SideLong, testNow); ok {
		t.Fatal("a BTC contract must never be eligible for an ETH selector")
	}
}

func TestSelectPrefersTargetTenorOverPerfectStrike(t *testing.T) {
	// A (5 days out, strike far from spot) vs B (10 days out, strike at
	// spot) with target tenor 10: B wins on both stages. The point is that
	// A's closer expiry does not help it.
	s := New("ETH", 10, 20)
	a := ethCall("C-ETH-A", 3400, 5)
	b := ethCall("C-ETH-B", 3000, 10)
	got, ok := s.Select([]domain.OptionContract{a, b}, decimal.NewFromInt(3000), domain.SideLong, testNow)
	if !ok || got.Symbol != "C-ETH-B" {
		t.Fatalf("expected C-ETH-B, got %+v ok=%v", got, ok)
	}
}

func TestSelectPoolCutoffExcludesFarTenor(t *testing.T) {
	// Two near-tenor contracts fill a pool of size 2; a perfectly ATM
	// contract sitting far outside the target tenor must not be selected
	// because it never enters the pool.
	s := New("ETH", 10, 2)
	options := []domain.OptionContract{
		ethCall("C-NEAR-1", 3050, 9),
		ethCall("C-NEAR-2", 3080, 11),
		ethCall("C-FAR-ATM", 3000, 60),
	}
	got, ok := s.Select(options, decimal.NewFromInt(3000), domain.SideLong, testNow)
	if !ok {
		t.Fatal("expected a selection")
	}
	if got.Symbol == "C-FAR-ATM" {
		t.Fatal("far-tenor contract leaked into the candidate pool")
	}
	if got.Symbol != "C-NEAR-1" {
		t.Fatalf("expected C-NEAR-1 (closest strike in pool), got %s", got.Symbol)
	}
}

func TestSelectDeterministic(t *testing.T) {
	s := New("ETH", 10, 20)
	var options []domain.OptionContract
	// Several contracts with identical tenor and strike distances so only
	// stable ordering disambiguates.
	for i := 0; i < 6; i++ {
		options = append(options, ethCall(fmt.Sprintf("C-ETH-%d", i), 3010, 10))
	}
	spot := decimal.NewFromInt(3000)

	first, ok := s.Select(options, spot, domain.SideLong, testNow)
	if !ok {
		t.Fatal("expected a selection")
	}
	for i := 0; i < 10; i++ {
		got, _ := s.Select(options, spot, domain.SideLong, testNow)
		if got.Symbol != first.Symbol {
			t.Fatalf("selection is not deterministic: %s vs %s", got.Symbol, first.Symbol)
		}
	}
	if first.Symbol != "C-ETH-0" {
		t.Fatalf("ties must resolve to input order, got %s", first.Symbol)
	}
}

func TestSelectEndToEndExample(t *testing.T) {
	// spot = 3000; CALL@2990 dte≈9, CALL@3100 dte≈2, PUT@3000 dte≈10;
	// side = LONG. The put is filtered out, the 9-day call beats the 2-day
	// call on tenor, and wins the pool on strike: CALL strike 2990.
	s := New("ETH", 10, 20)
	options := []domain.OptionContract{
		ethCall("C-ETH-2990", 2990, 9),
		ethCall("C-ETH-3100", 3100, 2),
		ethPut("P-ETH-3000", 3000, 10),
	}
	got, ok := s.Select(options, decimal.NewFromInt(3000), domain.SideLong, testNow)
	if !ok || got.Symbol != "C-ETH-2990" {
		t.Fatalf("expected C-ETH-2990, got %+v ok=%v", got, ok)
	}
}

func TestSelectDefaults(t *testing.T) {
	s := New("ETH", 0, -1)
	if s.TargetDTE() != DefaultTargetDTE {
		t.Fatalf("expected default target DTE %v, got %v", DefaultTargetDTE, s.TargetDTE())
	}
}
