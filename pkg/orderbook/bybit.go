package orderbook

import (
	"encoding/json"
	"fmt"

	"liqdepth-api/pkg/liquidity"
)

// bybitBookResponse is the v5 status envelope; RetCode is a pointer so a
// missing code can be told apart from the success value 0.
type bybitBookResponse struct {
	RetCode *int            `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  *bybitOrderbook `json:"result"`
}

type bybitOrderbook struct {
	Ts   int64      `json:"ts"`
	Bids [][]string `json:"b"`
	Asks [][]string `json:"a"`
}

// ParseBybit normalizes a Bybit v5 order-book response. A non-zero retCode
// fails with the venue's own message before any shape or emptiness check.
func ParseBybit(raw []byte) (*liquidity.Book, error) {
	var data bybitBookResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("bybit: invalid order book response: %w", err)
	}
	if data.RetCode == nil || data.Result == nil {
		return nil, fmt.Errorf("bybit: invalid order book response")
	}
	if *data.RetCode != 0 {
		msg := data.RetMsg
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("bybit: %s", msg)
	}
	if data.Result.Bids == nil || data.Result.Asks == nil {
		return nil, fmt.Errorf("bybit: invalid order book levels")
	}

	bids := parseTupleLevels(data.Result.Bids)
	asks := parseTupleLevels(data.Result.Asks)
	sortBids(bids)
	sortAsks(asks)

	if len(bids) == 0 || len(asks) == 0 {
		return nil, fmt.Errorf("bybit: order book is empty")
	}

	timestamp := data.Result.Ts
	if timestamp <= 0 {
		timestamp = nowMillis()
	}
	return &liquidity.Book{Bids: bids, Asks: asks, Timestamp: timestamp}, nil
}
