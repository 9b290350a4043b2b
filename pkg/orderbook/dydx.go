package orderbook

import (
	"encoding/json"
	"fmt"

	"liqdepth-api/pkg/liquidity"
)

type dydxLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

type dydxBookResponse struct {
	Bids []dydxLevel `json:"bids"`
	Asks []dydxLevel `json:"asks"`
}

func parseDydxLevels(levels []dydxLevel) []liquidity.BookLevel {
	out := make([]liquidity.BookLevel, 0, len(levels))
	for _, l := range levels {
		if level, ok := levelFromStrings(l.Price, l.Size); ok {
			out = append(out, level)
		}
	}
	return out
}

// ParseDydx normalizes a dYdX indexer order-book response. The indexer does
// not report a capture time, so the book is stamped at parse completion.
func ParseDydx(raw []byte) (*liquidity.Book, error) {
	var data dydxBookResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("dydx: invalid order book response: %w", err)
	}
	if data.Bids == nil || data.Asks == nil {
		return nil, fmt.Errorf("dydx: invalid order book response")
	}

	bids := parseDydxLevels(data.Bids)
	asks := parseDydxLevels(data.Asks)
	sortBids(bids)
	sortAsks(asks)

	if len(bids) == 0 || len(asks) == 0 {
		return nil, fmt.Errorf("dydx: order book is empty")
	}
	return &liquidity.Book{Bids: bids, Asks: asks, Timestamp: nowMillis()}, nil
}
