// Package liquidity holds the normalized order-book model and the
// slippage/VWAP engine shared by every venue pipeline.
package liquidity

import "liqdepth-api/pkg/venue"

// Side distinguishes the two halves of an order book.
type Side string

const (
	SideBid Side = "bid"
	SideAsk Side = "ask"
)

// NotionalTiers are the fixed USD trade sizes slippage is evaluated at,
// ascending.
var NotionalTiers = []float64{1_000, 10_000, 100_000, 1_000_000}

// BookLevel is one price level and the quantity resting at it.
type BookLevel struct {
	Px float64 `json:"px"`
	Sz float64 `json:"sz"`
}

// Book is the venue-agnostic order-book representation: bids sorted
// descending by price, asks ascending, plus the capture time in epoch
// milliseconds.
type Book struct {
	Bids      []BookLevel `json:"bids"`
	Asks      []BookLevel `json:"asks"`
	Timestamp int64       `json:"timestamp"`
}

// SlippageResult reports execution quality for one notional tier.
type SlippageResult struct {
	Notional       float64 `json:"notional"`
	VWAP           float64 `json:"vwap"`
	SlippageBps    float64 `json:"slippageBps"`
	Filled         bool    `json:"filled"`
	FilledNotional float64 `json:"filledNotional"`
}

// Meta carries venue-specific annotations attached to an analysis.
type Meta struct {
	// IsAggregatedEstimate marks Hyperliquid results where a coarser
	// price-aggregation granularity than the finest was needed somewhere.
	IsAggregatedEstimate bool `json:"isAggregatedEstimate,omitempty"`
	// HyperliquidNSigFigs is the coarsest granularity actually adopted.
	HyperliquidNSigFigs int `json:"hyperliquidNSigFigs,omitempty"`
	// HyperliquidNSigFigsPerTier records the granularity per tier index,
	// e.g. [5, 5, 4, 3].
	HyperliquidNSigFigsPerTier []int `json:"hyperliquidNSigFigsPerTier,omitempty"`
	// LighterWsFallback marks a Lighter result built from the streaming
	// snapshot instead of the depth-truncated REST payload.
	LighterWsFallback bool `json:"lighterWsFallback,omitempty"`
}

// Analysis is the per-venue-per-ticker liquidity snapshot produced once per
// poll cycle. It is immutable; the next cycle supersedes it wholesale.
type Analysis struct {
	Ticker      string           `json:"ticker"`
	Exchange    venue.Key        `json:"exchange"`
	Timestamp   int64            `json:"timestamp"`
	CollectedAt string           `json:"collectedAt"`
	BestBid     float64          `json:"bestBid"`
	BestAsk     float64          `json:"bestAsk"`
	MidPrice    float64          `json:"midPrice"`
	Spread      float64          `json:"spread"`
	SpreadBps   float64          `json:"spreadBps"`
	Bids        []SlippageResult `json:"bids"`
	Asks        []SlippageResult `json:"asks"`
	Meta        *Meta            `json:"meta,omitempty"`
}
