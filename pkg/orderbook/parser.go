// Package orderbook normalizes each venue's raw order-book payload into the
// shared liquidity.Book representation.
package orderbook

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"liqdepth-api/pkg/liquidity"
	"liqdepth-api/pkg/venue"
)

// ParseFunc converts one raw venue response into a normalized book.
type ParseFunc func(raw []byte) (*liquidity.Book, error)

// The venue set is closed and compiled in, so the dispatch table is fixed.
var parsers = map[venue.Key]ParseFunc{
	venue.Hyperliquid: ParseHyperliquid,
	venue.Dydx:        ParseDydx,
	venue.Lighter:     ParseLighter,
	venue.Asterdex:    ParseAsterdex,
	venue.Binance:     ParseBinance,
	venue.Bybit:       ParseBybit,
}

// ParserFor returns the parser registered for the venue.
func ParserFor(key venue.Key) (ParseFunc, error) {
	parse, ok := parsers[key]
	if !ok {
		return nil, fmt.Errorf("orderbook: no parser for venue %q", key)
	}
	return parse, nil
}

// Parse dispatches raw to the venue's parser.
func Parse(key venue.Key, raw []byte) (*liquidity.Book, error) {
	parse, err := ParserFor(key)
	if err != nil {
		return nil, err
	}
	return parse(raw)
}

// levelFromStrings coerces one (price, size) string pair, rejecting
// non-finite and non-positive values.
func levelFromStrings(px, sz string) (liquidity.BookLevel, bool) {
	price, err := strconv.ParseFloat(px, 64)
	if err != nil {
		return liquidity.BookLevel{}, false
	}
	size, err := strconv.ParseFloat(sz, 64)
	if err != nil {
		return liquidity.BookLevel{}, false
	}
	if !validLevel(price, size) {
		return liquidity.BookLevel{}, false
	}
	return liquidity.BookLevel{Px: price, Sz: size}, true
}

func validLevel(price, size float64) bool {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return false
	}
	if math.IsNaN(size) || math.IsInf(size, 0) || size <= 0 {
		return false
	}
	return true
}

func sortBids(levels []liquidity.BookLevel) {
	sort.Slice(levels, func(i, j int) bool { return levels[i].Px > levels[j].Px })
}

func sortAsks(levels []liquidity.BookLevel) {
	sort.Slice(levels, func(i, j int) bool { return levels[i].Px < levels[j].Px })
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
