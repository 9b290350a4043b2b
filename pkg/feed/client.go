// Package feed fetches raw order-book payloads from each venue's public
// REST endpoint, plus Lighter's streaming snapshot channel. Parsing lives in
// pkg/orderbook; this package only performs the venue-specific I/O.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"liqdepth-api/pkg/symbols"
	"liqdepth-api/pkg/venue"
)

const retryBackoffBase = 250 * time.Millisecond

// HyperliquidFinestSigFigs is the finest price-aggregation granularity the
// l2Book endpoint supports.
const HyperliquidFinestSigFigs = 5

// Options carries per-request knobs for venues that support them.
type Options struct {
	// HyperliquidNSigFigs selects the price-aggregation granularity of the
	// l2Book request. Zero means the finest supported (5).
	HyperliquidNSigFigs int
}

// Client performs raw order-book fetches against the six venues.
type Client struct {
	cfg        *Config
	httpClient *http.Client
	maxRetries int
	logger     *log.Logger

	markets lighterMarketCache
	refresh singleflight.Group
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithConfig overrides the default endpoint configuration.
func WithConfig(cfg *Config) Option {
	return func(c *Client) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithMaxRetries adjusts the retry budget for transient upstream failures.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
	}
}

// WithLogger injects a custom logger (defaults to log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient constructs a venue fetch client. Defaults not overridden by
// options are filled in from the effective Config.
func NewClient(opts ...Option) *Client {
	client := &Client{maxRetries: -1}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg == nil {
		client.cfg = DefaultConfig()
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.cfg.HTTPTimeout}
	}
	if client.maxRetries < 0 {
		client.maxRetries = client.cfg.MaxRetries
	}
	if client.logger == nil {
		client.logger = log.Default()
	}
	return client
}

// FetchOrderbook resolves the venue-native symbol for ticker and returns the
// venue's raw order-book response body. Unknown tickers and excluded
// ticker-venue pairs fail before any network call.
func (c *Client) FetchOrderbook(ctx context.Context, exchange venue.Key, ticker string, opts *Options) ([]byte, error) {
	if !symbols.IsTickerSupported(ticker, exchange) {
		return nil, fmt.Errorf("feed: ticker %s is not listed on %s", ticker, exchange)
	}
	symbol, err := symbols.ResolveExchangeSymbol(exchange, ticker)
	if err != nil {
		return nil, err
	}

	switch exchange {
	case venue.Hyperliquid:
		return c.fetchHyperliquidBook(ctx, symbol, opts)
	case venue.Dydx:
		return c.getJSON(ctx, fmt.Sprintf("%s/orderbooks/perpetualMarket/%s", c.cfg.DydxBaseURL, url.PathEscape(symbol)))
	case venue.Lighter:
		marketID, err := c.ResolveLighterMarketID(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return c.getJSON(ctx, fmt.Sprintf("%s/orderBookOrders?market_id=%d&limit=%d", c.cfg.LighterBaseURL, marketID, lighterRestOrderLimit))
	case venue.Asterdex:
		return c.getJSON(ctx, fmt.Sprintf("%s/fapi/v1/depth?symbol=%s&limit=%d", c.cfg.AsterdexBaseURL, url.QueryEscape(symbol), depthLevelLimit))
	case venue.Binance:
		return c.getJSON(ctx, fmt.Sprintf("%s/fapi/v1/depth?symbol=%s&limit=%d", c.cfg.BinanceBaseURL, url.QueryEscape(symbol), depthLevelLimit))
	case venue.Bybit:
		return c.getJSON(ctx, fmt.Sprintf("%s/v5/market/orderbook?category=linear&symbol=%s&limit=%d", c.cfg.BybitBaseURL, url.QueryEscape(symbol), bybitDepthLimit))
	default:
		return nil, fmt.Errorf("feed: unsupported venue %q", exchange)
	}
}

// l2BookRequest is the Hyperliquid info envelope for order-book snapshots.
// Mantissa is only accepted at the finest granularity.
type l2BookRequest struct {
	Type     string `json:"type"`
	Coin     string `json:"coin"`
	NSigFigs int    `json:"nSigFigs,omitempty"`
	Mantissa int    `json:"mantissa,omitempty"`
}

func (c *Client) fetchHyperliquidBook(ctx context.Context, symbol string, opts *Options) ([]byte, error) {
	nSigFigs := HyperliquidFinestSigFigs
	if opts != nil && opts.HyperliquidNSigFigs > 0 {
		nSigFigs = opts.HyperliquidNSigFigs
	}
	req := l2BookRequest{Type: "l2Book", Coin: symbol, NSigFigs: nSigFigs}
	if nSigFigs == HyperliquidFinestSigFigs {
		req.Mantissa = 1
	}
	return c.postJSON(ctx, c.cfg.HyperliquidURL, req)
}

func (c *Client) getJSON(ctx context.Context, rawURL string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil)
}

func (c *Client) postJSON(ctx context.Context, rawURL string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("feed: encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, rawURL, payload)
}

// do issues the request with a small retry budget: transport errors, 429 and
// 5xx responses are retried with doubling backoff, other statuses fail fast.
func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte) ([]byte, error) {
	var lastErr error
	backoff := retryBackoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return nil, fmt.Errorf("feed: build request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("feed: read response: %w", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return body, nil
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				lastErr = fmt.Errorf("feed: http status %d from %s", resp.StatusCode, rawURL)
			default:
				return nil, fmt.Errorf("feed: http status %d from %s", resp.StatusCode, rawURL)
			}
		}

		if attempt < c.maxRetries {
			c.logf("feed: retrying %s after error: %v", rawURL, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("feed: request failed without error detail")
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
