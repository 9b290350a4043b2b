package orderbook

import (
	"encoding/json"
	"fmt"

	"liqdepth-api/pkg/liquidity"
)

// binanceBookResponse matches fapi/v1/depth; AsterDEX runs the same API
// surface but the two are parsed independently so one venue's format drift
// cannot break the other.
type binanceBookResponse struct {
	EventTime int64      `json:"E"`
	TxTime    int64      `json:"T"`
	Bids      [][]string `json:"bids"`
	Asks      [][]string `json:"asks"`
}

// ParseBinance normalizes a Binance futures depth response.
func ParseBinance(raw []byte) (*liquidity.Book, error) {
	var data binanceBookResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("binance: invalid order book response: %w", err)
	}
	if data.Bids == nil || data.Asks == nil {
		return nil, fmt.Errorf("binance: invalid order book response")
	}

	bids := parseTupleLevels(data.Bids)
	asks := parseTupleLevels(data.Asks)
	sortBids(bids)
	sortAsks(asks)

	if len(bids) == 0 || len(asks) == 0 {
		return nil, fmt.Errorf("binance: order book is empty")
	}

	timestamp := data.TxTime
	if timestamp <= 0 {
		timestamp = nowMillis()
	}
	return &liquidity.Book{Bids: bids, Asks: asks, Timestamp: timestamp}, nil
}
