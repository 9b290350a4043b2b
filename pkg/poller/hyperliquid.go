package poller

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"liqdepth-api/pkg/feed"
	"liqdepth-api/pkg/liquidity"
	"liqdepth-api/pkg/orderbook"
	"liqdepth-api/pkg/venue"
)

// hyperliquidSigFigs is the granularity ladder, finest first. Finer buckets
// give more accurate prices but may not expose enough cumulative depth to
// fill the larger notional tiers.
var hyperliquidSigFigs = []int{5, 4, 3, 2}

// pollHyperliquid stitches together l2Book responses at progressively
// coarser granularities. Tiers are finalized in ascending notional order the
// first time a granularity fills them (finest wins), independently for bids
// and asks; escalation stops as soon as every tier is filled. The finest
// snapshot supplies spread and mid; only per-tier slippage is merged.
func (p *Poller) pollHyperliquid(ctx context.Context, ticker string) (*liquidity.Analysis, *liquidity.Book, error) {
	exchange := venue.Hyperliquid
	tierCount := len(liquidity.NotionalTiers)
	finest := hyperliquidSigFigs[0]
	coarsest := hyperliquidSigFigs[len(hyperliquidSigFigs)-1]

	finalBids := make([]liquidity.SlippageResult, tierCount)
	finalAsks := make([]liquidity.SlippageResult, tierCount)
	perTierSigFigs := make([]int, tierCount)
	for i := range perTierSigFigs {
		perTierSigFigs[i] = finest
	}

	var (
		bidCursor, askCursor int
		baseAnalysis         *liquidity.Analysis
		lastAnalysis         *liquidity.Analysis
		baseBook, lastBook   *liquidity.Book
	)
	coarsestUsed := finest

	for _, nSigFigs := range hyperliquidSigFigs {
		if bidCursor >= tierCount && askCursor >= tierCount {
			break
		}

		raw, err := p.feed.FetchOrderbook(ctx, exchange, ticker, &feed.Options{HyperliquidNSigFigs: nSigFigs})
		if err != nil {
			logx.WithContext(ctx).Infof("poller: hyperliquid nSigFigs=%d fetch failed, falling back: %v", nSigFigs, err)
			break
		}
		book, err := orderbook.ParseHyperliquid(raw)
		if err != nil {
			logx.WithContext(ctx).Infof("poller: hyperliquid nSigFigs=%d parse failed, falling back: %v", nSigFigs, err)
			break
		}
		analysis, err := liquidity.AnalyzeBook(liquidity.AnalyzeParams{Ticker: ticker, Exchange: exchange, Book: book})
		if err != nil {
			break
		}

		if baseAnalysis == nil {
			baseAnalysis = analysis
		}
		if baseBook == nil {
			baseBook = book
		}
		lastAnalysis = analysis
		lastBook = book

		for bidCursor < tierCount && analysis.Bids[bidCursor].Filled {
			finalBids[bidCursor] = analysis.Bids[bidCursor]
			perTierSigFigs[bidCursor] = min(perTierSigFigs[bidCursor], nSigFigs)
			bidCursor++
			if nSigFigs < coarsestUsed {
				coarsestUsed = nSigFigs
			}
		}
		for askCursor < tierCount && analysis.Asks[askCursor].Filled {
			finalAsks[askCursor] = analysis.Asks[askCursor]
			perTierSigFigs[askCursor] = min(perTierSigFigs[askCursor], nSigFigs)
			askCursor++
			if nSigFigs < coarsestUsed {
				coarsestUsed = nSigFigs
			}
		}
	}

	fallback := lastAnalysis
	if fallback == nil {
		fallback = baseAnalysis
	}
	if fallback == nil {
		return nil, nil, fmt.Errorf("hyperliquid: order book fetch failed")
	}
	finalBook := lastBook
	if finalBook == nil {
		finalBook = baseBook
	}

	// Remaining unfilled tiers take the coarsest data fetched, still
	// reported as partial.
	for i := bidCursor; i < tierCount; i++ {
		finalBids[i] = fallback.Bids[i]
		perTierSigFigs[i] = min(perTierSigFigs[i], coarsest)
	}
	for i := askCursor; i < tierCount; i++ {
		finalAsks[i] = fallback.Asks[i]
		perTierSigFigs[i] = min(perTierSigFigs[i], coarsest)
	}
	if bidCursor < tierCount || askCursor < tierCount {
		coarsestUsed = coarsest
	}

	base := baseAnalysis
	if base == nil {
		base = fallback
	}
	merged := *base
	merged.Bids = finalBids
	merged.Asks = finalAsks
	merged.Meta = &liquidity.Meta{
		IsAggregatedEstimate:       coarsestUsed < finest,
		HyperliquidNSigFigs:        coarsestUsed,
		HyperliquidNSigFigsPerTier: perTierSigFigs,
	}
	return &merged, finalBook, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
