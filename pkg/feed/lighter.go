package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrLighterMarketNotFound indicates the symbol is not listed on Lighter.
var ErrLighterMarketNotFound = fmt.Errorf("lighter: market not found")

// lighterMarketCache is the shared symbol-to-market-id table. It expires on a
// TTL and is refreshed lazily by whichever caller first notices.
type lighterMarketCache struct {
	mu        sync.RWMutex
	expiresAt time.Time
	bySymbol  map[string]int64
}

type lighterMarketsResponse struct {
	OrderBooks []struct {
		Symbol   string `json:"symbol"`
		MarketID *int64 `json:"market_id"`
	} `json:"order_books"`
}

func (c *lighterMarketCache) lookup(symbol string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.bySymbol == nil || time.Now().After(c.expiresAt) {
		return 0, false
	}
	id, ok := c.bySymbol[strings.ToUpper(symbol)]
	return id, ok
}

func (c *lighterMarketCache) expired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bySymbol == nil || time.Now().After(c.expiresAt)
}

func (c *lighterMarketCache) store(bySymbol map[string]int64, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bySymbol = bySymbol
	c.expiresAt = time.Now().Add(ttl)
}

// ResolveLighterMarketID maps a Lighter symbol to its numeric market id,
// refreshing the cached market list when it is absent or expired. Concurrent
// refreshes collapse into one upstream request.
func (c *Client) ResolveLighterMarketID(ctx context.Context, symbol string) (int64, error) {
	if id, ok := c.markets.lookup(symbol); ok {
		return id, nil
	}

	if _, err, _ := c.refresh.Do("lighter-markets", func() (interface{}, error) {
		if !c.markets.expired() {
			return nil, nil
		}
		return nil, c.refreshLighterMarkets(ctx)
	}); err != nil {
		return 0, err
	}

	id, ok := c.markets.lookup(symbol)
	if !ok {
		return 0, fmt.Errorf("%w: unknown symbol %s", ErrLighterMarketNotFound, symbol)
	}
	return id, nil
}

func (c *Client) refreshLighterMarkets(ctx context.Context) error {
	body, err := c.getJSON(ctx, c.cfg.LighterBaseURL+"/orderBooks")
	if err != nil {
		return err
	}

	var payload lighterMarketsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("lighter: market list is malformed: %w", err)
	}
	if payload.OrderBooks == nil {
		return fmt.Errorf("lighter: market list is malformed")
	}

	bySymbol := make(map[string]int64, len(payload.OrderBooks))
	for _, market := range payload.OrderBooks {
		symbol := strings.ToUpper(strings.TrimSpace(market.Symbol))
		if symbol == "" || market.MarketID == nil {
			continue
		}
		bySymbol[symbol] = *market.MarketID
	}
	c.markets.store(bySymbol, c.cfg.MarketCacheTTL)
	return nil
}
