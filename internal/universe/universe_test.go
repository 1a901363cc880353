package universe

import (
	"testing"

	"stock-spike-analyzer/internal/store"
)

func TestNIFTY100(t *testing.T) {
	u := NIFTY100()
	if u.Len() != 100 {
		t.Errorf("expected 100 tickers, got %d", u.Len())
	}

	seen := map[string]bool{}
	for _, tk := range u.Tickers() {
		if seen[tk] {
			t.Errorf("duplicate ticker %s", tk)
		}
		seen[tk] = true
	}

	if got := u.CompanyName("TCS.NS"); got != "Tata Consultancy Services" {
		t.Errorf("unexpected name %q", got)
	}
	if got := u.CompanyName("UNKNOWN.NS"); got != "UNKNOWN" {
		t.Errorf("expected fallback to symbol, got %q", got)
	}
	if got := u.Symbol("RELIANCE.NS"); got != "RELIANCE" {
		t.Errorf("unexpected symbol %q", got)
	}
}

func TestContainsNormalizes(t *testing.T) {
	u := NIFTY100()
	if !u.Contains("infy") {
		t.Error("expected infy to resolve to INFY.NS")
	}
	if u.Contains("AAPL") {
		t.Error("AAPL is not an NSE ticker")
	}
}

func TestStaticFromConfig(t *testing.T) {
	cfg := store.Default()
	cfg.Universe.Preset = "STATIC"
	cfg.Universe.Static = []string{"tcs", "TCS.NS", " SBIN ", "", "NEWCO"}

	u := FromConfig(cfg)
	want := []string{"TCS.NS", "SBIN.NS", "NEWCO.NS"}
	got := u.Tickers()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ticker %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if u.CompanyName("SBIN.NS") != "State Bank of India" {
		t.Errorf("expected known name reuse, got %q", u.CompanyName("SBIN.NS"))
	}
	if u.CompanyName("NEWCO.NS") != "NEWCO" {
		t.Errorf("unexpected name %q", u.CompanyName("NEWCO.NS"))
	}
}
