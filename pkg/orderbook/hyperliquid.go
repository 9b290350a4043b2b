package orderbook

import (
	"encoding/json"
	"fmt"

	"liqdepth-api/pkg/liquidity"
)

type hyperliquidLevel struct {
	Px string `json:"px"`
	Sz string `json:"sz"`
}

// hyperliquidBookResponse mirrors the l2Book payload: levels[0] is bids,
// levels[1] is asks.
type hyperliquidBookResponse struct {
	Time   int64                `json:"time"`
	Levels [][]hyperliquidLevel `json:"levels"`
}

func parseHyperliquidLevels(levels []hyperliquidLevel) []liquidity.BookLevel {
	out := make([]liquidity.BookLevel, 0, len(levels))
	for _, l := range levels {
		if level, ok := levelFromStrings(l.Px, l.Sz); ok {
			out = append(out, level)
		}
	}
	return out
}

// ParseHyperliquid normalizes a Hyperliquid l2Book response.
func ParseHyperliquid(raw []byte) (*liquidity.Book, error) {
	var data hyperliquidBookResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("hyperliquid: invalid order book response: %w", err)
	}
	if len(data.Levels) < 2 {
		return nil, fmt.Errorf("hyperliquid: invalid order book response")
	}

	bids := parseHyperliquidLevels(data.Levels[0])
	asks := parseHyperliquidLevels(data.Levels[1])
	sortBids(bids)
	sortAsks(asks)

	if len(bids) == 0 || len(asks) == 0 {
		return nil, fmt.Errorf("hyperliquid: order book is empty")
	}

	timestamp := data.Time
	if timestamp <= 0 {
		timestamp = nowMillis()
	}
	return &liquidity.Book{Bids: bids, Asks: asks, Timestamp: timestamp}, nil
}
