package universe

import (
	"strings"

	"stock-spike-analyzer/internal/store"
)

// DefaultSuffix is the Yahoo Finance suffix for NSE listings.
const DefaultSuffix = ".NS"

// Universe is an ordered set of tickers with display names.
type Universe struct {
	suffix  string
	tickers []string
	names   map[string]string
}

// NIFTY100 returns the built-in NIFTY100 universe.
func NIFTY100() *Universe {
	u := &Universe{suffix: DefaultSuffix, names: make(map[string]string, len(nifty100))}
	for _, e := range nifty100 {
		t := e.symbol + DefaultSuffix
		u.tickers = append(u.tickers, t)
		u.names[t] = e.name
	}
	return u
}

// FromConfig builds the universe selected by universe.preset.
func FromConfig(cfg *store.Config) *Universe {
	if cfg.Universe.Preset != "STATIC" {
		return NIFTY100()
	}
	return Static(cfg.Universe.Static, cfg.Universe.Suffix)
}

// Static builds a universe from plain symbols; the suffix is appended when missing.
// Known NIFTY100 names are reused.
func Static(symbols []string, suffix string) *Universe {
	known := NIFTY100()
	u := &Universe{suffix: suffix, names: make(map[string]string)}
	seen := make(map[string]bool)
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if suffix != "" && !strings.HasSuffix(s, suffix) {
			s += suffix
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		u.tickers = append(u.tickers, s)
		if name, ok := known.names[s]; ok {
			u.names[s] = name
		}
	}
	return u
}

// Tickers returns a copy of the ticker list.
func (u *Universe) Tickers() []string {
	return append([]string(nil), u.tickers...)
}

// Len is the number of tickers.
func (u *Universe) Len() int {
	return len(u.tickers)
}

// Contains reports whether the ticker, with or without suffix, is in the universe.
func (u *Universe) Contains(ticker string) bool {
	t := u.Normalize(ticker)
	for _, x := range u.tickers {
		if x == t {
			return true
		}
	}
	return false
}

// Normalize upper-cases a ticker and appends the exchange suffix.
func (u *Universe) Normalize(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if u.suffix != "" && !strings.HasSuffix(t, u.suffix) {
		t += u.suffix
	}
	return t
}

// Symbol strips the exchange suffix.
func (u *Universe) Symbol(ticker string) string {
	return strings.TrimSuffix(ticker, u.suffix)
}

// CompanyName returns the display name, falling back to the bare symbol.
func (u *Universe) CompanyName(ticker string) string {
	if name, ok := u.names[ticker]; ok {
		return name
	}
	return u.Symbol(ticker)
}
