package poller

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"liqdepth-api/pkg/liquidity"
	"liqdepth-api/pkg/orderbook"
	"liqdepth-api/pkg/venue"
)

func hasPartialFill(analysis *liquidity.Analysis) bool {
	for _, point := range analysis.Bids {
		if !point.Filled {
			return true
		}
	}
	for _, point := range analysis.Asks {
		if !point.Filled {
			return true
		}
	}
	return false
}

// pollLighter fetches the REST book first. The REST endpoint truncates depth
// at a fixed order count per side, so when any tier stays unfilled a one-shot
// streaming snapshot is attempted; failure there is absorbed and the REST
// result stands.
func (p *Poller) pollLighter(ctx context.Context, ticker string) (*liquidity.Analysis, *liquidity.Book, error) {
	exchange := venue.Lighter

	raw, err := p.feed.FetchOrderbook(ctx, exchange, ticker, nil)
	if err != nil {
		return nil, nil, err
	}
	restBook, err := orderbook.ParseLighter(raw)
	if err != nil {
		return nil, nil, err
	}
	restAnalysis, err := liquidity.AnalyzeBook(liquidity.AnalyzeParams{Ticker: ticker, Exchange: exchange, Book: restBook})
	if err != nil {
		return nil, nil, err
	}

	if !hasPartialFill(restAnalysis) {
		return restAnalysis, restBook, nil
	}

	wsBook, err := p.feed.FetchLighterSnapshot(ctx, ticker)
	if err != nil {
		logx.WithContext(ctx).Infof("poller: lighter stream fallback unavailable, keeping REST result: %v", err)
		return restAnalysis, restBook, nil
	}
	wsAnalysis, err := liquidity.AnalyzeBook(liquidity.AnalyzeParams{
		Ticker:   ticker,
		Exchange: exchange,
		Book:     wsBook,
		Meta:     &liquidity.Meta{LighterWsFallback: true},
	})
	if err != nil {
		return restAnalysis, restBook, nil
	}
	return wsAnalysis, wsBook, nil
}
