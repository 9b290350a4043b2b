// Package venue defines the closed set of trading venues the service compares.
package venue

import (
	"fmt"
	"strings"
)

// Key identifies one of the supported perpetual-futures venues.
type Key string

const (
	Hyperliquid Key = "hyperliquid"
	Dydx        Key = "dydx"
	Lighter     Key = "lighter"
	Asterdex    Key = "asterdex"
	Binance     Key = "binance"
	Bybit       Key = "bybit"
)

var all = []Key{Hyperliquid, Dydx, Lighter, Asterdex, Binance, Bybit}

var labels = map[Key]string{
	Hyperliquid: "Hyperliquid",
	Dydx:        "dYdX",
	Lighter:     "Lighter",
	Asterdex:    "AsterDEX",
	Binance:     "Binance",
	Bybit:       "Bybit",
}

// All returns every supported venue in display order.
func All() []Key {
	out := make([]Key, len(all))
	copy(out, all)
	return out
}

// Parse converts a raw string into a venue Key.
func Parse(raw string) (Key, error) {
	key := Key(strings.ToLower(strings.TrimSpace(raw)))
	if !key.Valid() {
		return "", fmt.Errorf("venue: unknown venue %q", raw)
	}
	return key, nil
}

// Valid reports whether the key names a supported venue.
func (k Key) Valid() bool {
	_, ok := labels[k]
	return ok
}

// Label returns the human-readable venue name.
func (k Key) Label() string {
	if label, ok := labels[k]; ok {
		return label
	}
	return string(k)
}

func (k Key) String() string {
	return string(k)
}
