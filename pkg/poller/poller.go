// Package poller drives the periodic fetch→parse→analyze cycle across all
// venues for one active ticker and holds the latest per-venue outcome.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"liqdepth-api/pkg/feed"
	"liqdepth-api/pkg/liquidity"
	"liqdepth-api/pkg/orderbook"
	"liqdepth-api/pkg/symbols"
	"liqdepth-api/pkg/venue"
)

// DefaultInterval is the target cadence between poll cycles.
const DefaultInterval = 1500 * time.Millisecond

// Feed is the raw-fetch collaborator the poller consumes. *feed.Client
// satisfies it; tests substitute scripted fetchers.
type Feed interface {
	FetchOrderbook(ctx context.Context, exchange venue.Key, ticker string, opts *feed.Options) ([]byte, error)
	FetchLighterSnapshot(ctx context.Context, ticker string) (*liquidity.Book, error)
}

// Status is the latest known state for one venue under the active ticker.
type Status struct {
	Exchange    venue.Key           `json:"exchange"`
	Loading     bool                `json:"loading"`
	Error       string              `json:"error,omitempty"`
	LastUpdated int64               `json:"lastUpdated,omitempty"`
	Analysis    *liquidity.Analysis `json:"analysis,omitempty"`
	Book        *liquidity.Book     `json:"book,omitempty"`
}

// Snapshot is the orchestrator's externally visible state.
type Snapshot struct {
	Ticker        string               `json:"ticker"`
	LastRefreshAt int64                `json:"lastRefreshAt,omitempty"`
	HasData       bool                 `json:"hasData"`
	IsLoading     bool                 `json:"isLoading"`
	Statuses      map[venue.Key]Status `json:"statuses"`
}

// Poller owns the per-venue statuses for the active ticker and refreshes
// them on a fixed interval.
type Poller struct {
	feed     Feed
	interval time.Duration

	mu            sync.RWMutex
	ticker        string
	generation    uint64
	statuses      map[venue.Key]*Status
	lastRefreshAt int64

	inFlight atomic.Bool
}

// PollerOption customises a Poller.
type PollerOption func(*Poller)

// WithInterval overrides the polling cadence.
func WithInterval(interval time.Duration) PollerOption {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// New constructs a poller for the given ticker.
func New(f Feed, ticker string, opts ...PollerOption) *Poller {
	p := &Poller{
		feed:     f,
		interval: DefaultInterval,
		ticker:   ticker,
		statuses: initialStatuses(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func initialStatuses() map[venue.Key]*Status {
	statuses := make(map[venue.Key]*Status, 6)
	for _, key := range venue.All() {
		statuses[key] = &Status{Exchange: key, Loading: true}
	}
	return statuses
}

// SetTicker switches the active ticker. All venue statuses reset to their
// initial loading state and any still-in-flight cycle for the previous
// ticker is discarded when it settles.
func (p *Poller) SetTicker(ticker string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ticker == p.ticker {
		return
	}
	p.ticker = ticker
	p.generation++
	p.statuses = initialStatuses()
	p.lastRefreshAt = 0
}

// ActiveTicker returns the ticker currently polled.
func (p *Poller) ActiveTicker() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ticker
}

// Run polls immediately and then on every interval tick until ctx is
// cancelled. Ticks that fire while a cycle is still settling are dropped,
// not queued.
func (p *Poller) Run(ctx context.Context) {
	p.Poll(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

type outcome struct {
	exchange venue.Key
	analysis *liquidity.Analysis
	book     *liquidity.Book
	err      error
}

// Poll executes one cycle: mark supported venues loading, run every venue
// pipeline concurrently, and apply all outcomes together once everything has
// settled. Returns false when the cycle was dropped because a previous one
// is still in flight.
func (p *Poller) Poll(ctx context.Context) bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer p.inFlight.Store(false)

	p.mu.Lock()
	ticker := p.ticker
	generation := p.generation
	supported := symbols.SupportedVenues(ticker)
	supportedSet := make(map[venue.Key]bool, len(supported))
	for _, key := range supported {
		supportedSet[key] = true
	}
	for key, status := range p.statuses {
		if supportedSet[key] {
			status.Loading = true
			status.Error = ""
		} else {
			// Keep nothing for venues that do not list the ticker.
			p.statuses[key] = &Status{Exchange: key}
		}
	}
	p.mu.Unlock()

	outcomes := make([]outcome, len(supported))
	var wg sync.WaitGroup
	for i, key := range supported {
		wg.Add(1)
		go func(i int, key venue.Key) {
			defer wg.Done()
			analysis, book, err := p.pollVenue(ctx, key, ticker)
			outcomes[i] = outcome{exchange: key, analysis: analysis, book: book, err: err}
		}(i, key)
	}
	wg.Wait()

	now := time.Now().UnixMilli()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != generation {
		// The ticker changed while this cycle was in flight; drop it.
		return true
	}
	for _, result := range outcomes {
		status := p.statuses[result.exchange]
		if status == nil {
			continue
		}
		if result.err != nil {
			logx.WithContext(ctx).Errorf("poller: %s cycle failed ticker=%s err=%v", result.exchange, ticker, result.err)
			status.Loading = false
			status.Error = result.err.Error()
			continue
		}
		lastUpdated := result.analysis.Timestamp
		if lastUpdated <= 0 {
			lastUpdated = now
		}
		*status = Status{
			Exchange:    result.exchange,
			Loading:     false,
			LastUpdated: lastUpdated,
			Analysis:    result.analysis,
			Book:        result.book,
		}
	}
	p.lastRefreshAt = now
	return true
}

func (p *Poller) pollVenue(ctx context.Context, exchange venue.Key, ticker string) (*liquidity.Analysis, *liquidity.Book, error) {
	switch exchange {
	case venue.Hyperliquid:
		return p.pollHyperliquid(ctx, ticker)
	case venue.Lighter:
		return p.pollLighter(ctx, ticker)
	default:
		raw, err := p.feed.FetchOrderbook(ctx, exchange, ticker, nil)
		if err != nil {
			return nil, nil, err
		}
		book, err := orderbook.Parse(exchange, raw)
		if err != nil {
			return nil, nil, err
		}
		analysis, err := liquidity.AnalyzeBook(liquidity.AnalyzeParams{
			Ticker:   ticker,
			Exchange: exchange,
			Book:     book,
		})
		if err != nil {
			return nil, nil, err
		}
		return analysis, book, nil
	}
}

// Snapshot returns a copy of the current orchestrator state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	statuses := make(map[venue.Key]Status, len(p.statuses))
	for key, status := range p.statuses {
		statuses[key] = *status
	}
	return Snapshot{
		Ticker:        p.ticker,
		LastRefreshAt: p.lastRefreshAt,
		HasData:       p.hasDataLocked(),
		IsLoading:     p.isLoadingLocked(),
		Statuses:      statuses,
	}
}

// HasData reports whether any venue has produced an analysis for the active
// ticker.
func (p *Poller) HasData() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.hasDataLocked()
}

// IsLoading reports whether every supported venue is still in its initial
// loading state with no analysis yet.
func (p *Poller) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isLoadingLocked()
}

// LastRefreshAt returns the wall-clock millisecond stamp of the last applied
// cycle, or zero before the first one.
func (p *Poller) LastRefreshAt() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastRefreshAt
}

func (p *Poller) hasDataLocked() bool {
	for _, status := range p.statuses {
		if status.Analysis != nil {
			return true
		}
	}
	return false
}

func (p *Poller) isLoadingLocked() bool {
	supported := symbols.SupportedVenues(p.ticker)
	if len(supported) == 0 {
		return false
	}
	for _, key := range supported {
		status := p.statuses[key]
		if status == nil || !status.Loading || status.Analysis != nil {
			return false
		}
	}
	return true
}
