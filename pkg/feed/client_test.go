package feed

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liqdepth-api/pkg/venue"
)

// testConfig points every venue at the given test server.
func testConfig(serverURL string) *Config {
	cfg := DefaultConfig()
	cfg.HyperliquidURL = serverURL + "/info"
	cfg.DydxBaseURL = serverURL + "/v4"
	cfg.LighterBaseURL = serverURL + "/lighter"
	cfg.AsterdexBaseURL = serverURL + "/aster"
	cfg.BinanceBaseURL = serverURL + "/binance"
	cfg.BybitBaseURL = serverURL + "/bybit"
	return cfg
}

func TestFetchOrderbookBinance(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"bids": [["1", "1"]], "asks": [["2", "1"]]}`))
	}))
	defer server.Close()

	client := NewClient(WithConfig(testConfig(server.URL)), WithHTTPClient(server.Client()))

	body, err := client.FetchOrderbook(context.Background(), venue.Binance, "BTC", nil)
	require.NoError(t, err)
	require.Contains(t, string(body), "bids")
	require.Equal(t, "/binance/fapi/v1/depth", gotPath)
	require.Equal(t, "symbol=BTCUSDT&limit=1000", gotQuery)
}

func TestFetchOrderbookBybit(t *testing.T) {
	var gotPath string
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"retCode": 0, "result": {}}`))
	}))
	defer server.Close()

	client := NewClient(WithConfig(testConfig(server.URL)), WithHTTPClient(server.Client()))

	_, err := client.FetchOrderbook(context.Background(), venue.Bybit, "SOL", nil)
	require.NoError(t, err)
	require.Equal(t, "/bybit/v5/market/orderbook", gotPath)
	require.Equal(t, "category=linear&symbol=SOLUSDT&limit=500", gotQuery)
}

func TestFetchOrderbookDydx(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"bids": [], "asks": []}`))
	}))
	defer server.Close()

	client := NewClient(WithConfig(testConfig(server.URL)), WithHTTPClient(server.Client()))

	_, err := client.FetchOrderbook(context.Background(), venue.Dydx, "BTC", nil)
	require.NoError(t, err)
	require.Equal(t, "/v4/orderbooks/perpetualMarket/BTC-USD", gotPath)
}

func TestFetchOrderbookHyperliquidRequest(t *testing.T) {
	var got l2BookRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		got = l2BookRequest{}
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"levels": [[], []]}`))
	}))
	defer server.Close()

	client := NewClient(WithConfig(testConfig(server.URL)), WithHTTPClient(server.Client()))

	// Default request uses the finest granularity with mantissa pinned.
	_, err := client.FetchOrderbook(context.Background(), venue.Hyperliquid, "BTC", nil)
	require.NoError(t, err)
	assert.Equal(t, "l2Book", got.Type)
	assert.Equal(t, "BTC", got.Coin)
	assert.Equal(t, 5, got.NSigFigs)
	assert.Equal(t, 1, got.Mantissa)

	// Coarser granularities must not carry a mantissa.
	_, err = client.FetchOrderbook(context.Background(), venue.Hyperliquid, "BTC", &Options{HyperliquidNSigFigs: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, got.NSigFigs)
	assert.Zero(t, got.Mantissa)
}

func TestFetchOrderbookRejectsBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(WithConfig(testConfig(server.URL)), WithHTTPClient(server.Client()))

	// PAXG is not listed on AsterDEX.
	_, err := client.FetchOrderbook(context.Background(), venue.Asterdex, "PAXG", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not listed on asterdex")

	_, err = client.FetchOrderbook(context.Background(), venue.Binance, "NOPE", nil)
	require.Error(t, err)

	require.Zero(t, calls.Load())
}

func TestFetchOrderbookRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(
		WithConfig(testConfig(server.URL)),
		WithHTTPClient(server.Client()),
		WithMaxRetries(1),
		WithLogger(log.New(io.Discard, "", 0)),
	)

	_, err := client.FetchOrderbook(context.Background(), venue.Binance, "BTC", nil)
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
}

func TestFetchOrderbookFailsFastOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(
		WithConfig(testConfig(server.URL)),
		WithHTTPClient(server.Client()),
		WithMaxRetries(3),
	)

	_, err := client.FetchOrderbook(context.Background(), venue.Binance, "BTC", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "http status 404")
	require.Equal(t, int32(1), calls.Load())
}

func TestFetchOrderbookRetryBudgetExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(
		WithConfig(testConfig(server.URL)),
		WithHTTPClient(server.Client()),
		WithMaxRetries(2),
		WithLogger(log.New(io.Discard, "", 0)),
	)

	start := time.Now()
	_, err := client.FetchOrderbook(context.Background(), venue.Binance, "BTC", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "http status 429")
	require.Equal(t, int32(3), calls.Load())
	// Two backoff waits: 250ms then 500ms.
	require.GreaterOrEqual(t, time.Since(start), 750*time.Millisecond)
}
