package liquidity

import (
	"fmt"
	"math"
	"time"

	"liqdepth-api/pkg/venue"
)

func round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

// ComputeSlippage walks levels (already sorted best price first) and reports
// the VWAP realized by consuming targetNotional USD against them. Adverse
// execution yields positive bps on both sides: buying into asks above mid and
// selling into bids below mid are both positive.
func ComputeSlippage(levels []BookLevel, targetNotional, midPrice float64, side Side) SlippageResult {
	remaining := targetNotional
	var totalQty, totalCost float64

	for _, level := range levels {
		if remaining <= 0 {
			break
		}
		levelNotional := level.Px * level.Sz
		fillNotional := math.Min(remaining, levelNotional)
		totalCost += fillNotional
		totalQty += fillNotional / level.Px
		remaining -= fillNotional
	}

	vwap := 0.0
	if totalQty > 0 {
		vwap = totalCost / totalQty
	}

	slippageBps := 0.0
	if vwap > 0 {
		if side == SideAsk {
			slippageBps = (vwap - midPrice) / midPrice * 10_000
		} else {
			slippageBps = (midPrice - vwap) / midPrice * 10_000
		}
	}

	return SlippageResult{
		Notional:       targetNotional,
		VWAP:           round(vwap, 6),
		SlippageBps:    round(slippageBps, 2),
		Filled:         remaining <= 0,
		FilledNotional: round(totalCost, 2),
	}
}

// AnalyzeParams bundles the inputs for AnalyzeBook.
type AnalyzeParams struct {
	Ticker      string
	Exchange    venue.Key
	Book        *Book
	CollectedAt time.Time // zero value means "now"
	Meta        *Meta
}

// AnalyzeBook turns a normalized book into a per-venue liquidity analysis:
// spread and mid from the top of book, plus one SlippageResult per notional
// tier and side. Parsers guarantee non-empty sides, but the check here is
// deliberately independent of them.
func AnalyzeBook(params AnalyzeParams) (*Analysis, error) {
	book := params.Book
	if book == nil || len(book.Bids) == 0 || len(book.Asks) == 0 {
		return nil, fmt.Errorf("%s: empty order book", params.Exchange)
	}

	collectedAt := params.CollectedAt
	if collectedAt.IsZero() {
		collectedAt = time.Now()
	}

	bestBid := book.Bids[0].Px
	bestAsk := book.Asks[0].Px
	midPrice := (bestBid + bestAsk) / 2
	spread := bestAsk - bestBid
	spreadBps := spread / midPrice * 10_000

	bids := make([]SlippageResult, len(NotionalTiers))
	asks := make([]SlippageResult, len(NotionalTiers))
	for i, tier := range NotionalTiers {
		bids[i] = ComputeSlippage(book.Bids, tier, midPrice, SideBid)
		asks[i] = ComputeSlippage(book.Asks, tier, midPrice, SideAsk)
	}

	return &Analysis{
		Ticker:      params.Ticker,
		Exchange:    params.Exchange,
		Timestamp:   book.Timestamp,
		CollectedAt: collectedAt.UTC().Format(time.RFC3339Nano),
		BestBid:     bestBid,
		BestAsk:     bestAsk,
		MidPrice:    round(midPrice, 6),
		Spread:      round(spread, 6),
		SpreadBps:   round(spreadBps, 2),
		Bids:        bids,
		Asks:        asks,
		Meta:        params.Meta,
	}, nil
}
