package orderbook

import (
	"encoding/json"
	"fmt"

	"liqdepth-api/pkg/liquidity"
)

// asterdexBookResponse matches the futures depth endpoint: levels arrive as
// ["price", "qty"] tuples, T is the transaction time in milliseconds.
type asterdexBookResponse struct {
	EventTime int64      `json:"E"`
	TxTime    int64      `json:"T"`
	Bids      [][]string `json:"bids"`
	Asks      [][]string `json:"asks"`
}

func parseTupleLevels(levels [][]string) []liquidity.BookLevel {
	out := make([]liquidity.BookLevel, 0, len(levels))
	for _, pair := range levels {
		if len(pair) < 2 {
			continue
		}
		if level, ok := levelFromStrings(pair[0], pair[1]); ok {
			out = append(out, level)
		}
	}
	return out
}

// ParseAsterdex normalizes an AsterDEX futures depth response.
func ParseAsterdex(raw []byte) (*liquidity.Book, error) {
	var data asterdexBookResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("asterdex: invalid order book response: %w", err)
	}
	if data.Bids == nil || data.Asks == nil {
		return nil, fmt.Errorf("asterdex: invalid order book response")
	}

	bids := parseTupleLevels(data.Bids)
	asks := parseTupleLevels(data.Asks)
	sortBids(bids)
	sortAsks(asks)

	if len(bids) == 0 || len(asks) == 0 {
		return nil, fmt.Errorf("asterdex: order book is empty")
	}

	timestamp := data.TxTime
	if timestamp <= 0 {
		timestamp = nowMillis()
	}
	return &liquidity.Book{Bids: bids, Asks: asks, Timestamp: timestamp}, nil
}
