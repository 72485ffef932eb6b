package domain

import (
	"testing"
	"time"
)

func TestParseSignalLong(t *testing.T) {
	side, ok := ParseSignal([]byte(`{"signal":"LONG"}`))
	if !ok || side != SideLong {
		t.Fatalf("expected LONG, got %q ok=%v", side, ok)
	}
}

func TestParseSignalShortLowercase(t *testing.T) {
	side, ok := ParseSignal([]byte(`{"signal":" short "}`))
	if !ok || side != SideShort {
		t.Fatalf("expected SHORT, got %q ok=%v", side, ok)
	}
}

func TestParseSignalIgnoresExtraFields(t *testing.T) {
	side, ok := ParseSignal([]byte(`{"signal":"LONG","ticker":"ETHUSD","price":3000}`))
	if !ok || side != SideLong {
		t.Fatalf("expected LONG, got %q ok=%v", side, ok)
	}
}

func TestParseSignalRejectsUnknownValue(t *testing.T) {
	if _, ok := ParseSignal([]byte(`{"signal":"HOLD"}`)); ok {
		t.Fatal("expected HOLD to be rejected")
	}
}

func TestParseSignalRejectsMissingField(t *testing.T) {
	if _, ok := ParseSignal([]byte(`{"ticker":"ETHUSD"}`)); ok {
		t.Fatal("expected body without signal field to be rejected")
	}
}

func TestParseSignalRejectsMalformedBody(t *testing.T) {
	for _, body := range []string{"", "not json", `"LONG"`, `{"signal":42}`} {
		if _, ok := ParseSignal([]byte(body)); ok {
			t.Fatalf("expected %q to be rejected", body)
		}
	}
}

func TestSideContractType(t *testing.T) {
	if got := SideLong.ContractType(); got != CallOption {
		t.Fatalf("LONG should map to calls, got %s", got)
	}
	if got := SideShort.ContractType(); got != PutOption {
		t.Fatalf("SHORT should map to puts, got %s", got)
	}
}

func TestDaysToExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	o := OptionContract{SettlementTime: now.Add(10 * 24 * time.Hour)}
	if got := o.DaysToExpiry(now); got != 10 {
		t.Fatalf("expected 10 days, got %v", got)
	}

	// Expired contracts report a positive tenor as well.
	past := OptionContract{SettlementTime: now.Add(-36 * time.Hour)}
	if got := past.DaysToExpiry(now); got != 1.5 {
		t.Fatalf("expected 1.5 days, got %v", got)
	}
}
