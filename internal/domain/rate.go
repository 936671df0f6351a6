package domain

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// BaseCurrency is the currency every rate in a snapshot is expressed in.
const BaseCurrency = "RON"

// IsCurrencyCode reports whether code is three uppercase ASCII letters.
func IsCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	return strings.IndexFunc(code, func(r rune) bool { return r < 'A' || r > 'Z' }) == -1
}

// RateSnapshot is an immutable set of rates taken at a single point in time.
// Each rate is the amount of BaseCurrency per 1 unit of the currency.
type RateSnapshot struct {
	timestamp time.Time
	rates     map[string]float64
}

// NewRateSnapshot copies rates and pins the base currency to 1.
func NewRateSnapshot(timestamp time.Time, rates map[string]float64) RateSnapshot {
	cloned := make(map[string]float64, len(rates)+1)
	maps.Copy(cloned, rates)
	cloned[BaseCurrency] = 1.0
	return RateSnapshot{timestamp: timestamp, rates: cloned}
}

func (s RateSnapshot) Timestamp() time.Time { return s.timestamp }

// Rates returns a copy of the rate table.
func (s RateSnapshot) Rates() map[string]float64 { return maps.Clone(s.rates) }

func (s RateSnapshot) Rate(code string) (float64, bool) {
	v, ok := s.rates[code]
	return v, ok
}

// Codes returns the sorted currency codes present in the snapshot.
func (s RateSnapshot) Codes() []string {
	codes := slices.Collect(maps.Keys(s.rates))
	slices.Sort(codes)
	return codes
}

func (s RateSnapshot) IsZero() bool { return s.rates == nil }

// Age reports how long ago the snapshot was taken. ok is false when the
// timestamp is missing or lies in the future.
func (s RateSnapshot) Age(now time.Time) (age time.Duration, ok bool) {
	if s.timestamp.IsZero() {
		return 0, false
	}
	age = now.Sub(s.timestamp)
	if age < 0 {
		return 0, false
	}
	return age, true
}

type Provenance string

const (
	ProvenanceFreshCache    Provenance = "fresh-cache"
	ProvenanceLive          Provenance = "live"
	ProvenanceStaleFallback Provenance = "stale-fallback"
)

// Acquisition is a snapshot together with how it was obtained.
type Acquisition struct {
	Snapshot   RateSnapshot
	Provenance Provenance
}

// Offline is true when the feed could not be reached and an old cache was served.
func (a Acquisition) Offline() bool { return a.Provenance == ProvenanceStaleFallback }
