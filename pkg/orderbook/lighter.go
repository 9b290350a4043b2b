package orderbook

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"liqdepth-api/pkg/liquidity"
)

// Lighter returns individual resting orders, so a price can repeat across
// entries and must be aggregated into one level per price.
type lighterOrder struct {
	Price               string `json:"price"`
	RemainingBaseAmount string `json:"remaining_base_amount"`
}

type lighterBookResponse struct {
	Bids []lighterOrder `json:"bids"`
	Asks []lighterOrder `json:"asks"`
}

func aggregateLighterOrders(orders []lighterOrder) []liquidity.BookLevel {
	sizeByPrice := make(map[float64]float64, len(orders))
	for _, order := range orders {
		px, err := strconv.ParseFloat(order.Price, 64)
		if err != nil {
			continue
		}
		sz, err := strconv.ParseFloat(order.RemainingBaseAmount, 64)
		if err != nil {
			continue
		}
		if math.IsNaN(px) || math.IsInf(px, 0) || px <= 0 ||
			math.IsNaN(sz) || math.IsInf(sz, 0) || sz <= 0 {
			continue
		}
		sizeByPrice[px] += sz
	}

	levels := make([]liquidity.BookLevel, 0, len(sizeByPrice))
	for px, sz := range sizeByPrice {
		levels = append(levels, liquidity.BookLevel{Px: px, Sz: sz})
	}
	return levels
}

// ParseLighter normalizes a Lighter orderBookOrders response, summing
// same-price orders into single levels before sorting.
func ParseLighter(raw []byte) (*liquidity.Book, error) {
	var data lighterBookResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("lighter: invalid order book response: %w", err)
	}
	if data.Bids == nil || data.Asks == nil {
		return nil, fmt.Errorf("lighter: invalid order book response")
	}

	bids := aggregateLighterOrders(data.Bids)
	asks := aggregateLighterOrders(data.Asks)
	sortBids(bids)
	sortAsks(asks)

	if len(bids) == 0 || len(asks) == 0 {
		return nil, fmt.Errorf("lighter: order book is empty")
	}
	return &liquidity.Book{Bids: bids, Asks: asks, Timestamp: nowMillis()}, nil
}
