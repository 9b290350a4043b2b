package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liqdepth-api/pkg/venue"
)

func TestResolveExchangeSymbol(t *testing.T) {
	tests := []struct {
		name     string
		exchange venue.Key
		ticker   string
		want     string
	}{
		{name: "hyperliquid base only", exchange: venue.Hyperliquid, ticker: "BTC", want: "BTC"},
		{name: "lighter base only", exchange: venue.Lighter, ticker: "ETH", want: "ETH"},
		{name: "dydx dash quote", exchange: venue.Dydx, ticker: "BTC", want: "BTC-USD"},
		{name: "binance concatenated quote", exchange: venue.Binance, ticker: "BTC", want: "BTCUSDT"},
		{name: "bybit concatenated quote", exchange: venue.Bybit, ticker: "SOL", want: "SOLUSDT"},
		{name: "asterdex concatenated quote", exchange: venue.Asterdex, ticker: "DOGE", want: "DOGEUSDT"},
		{name: "manual override hyperliquid bonk", exchange: venue.Hyperliquid, ticker: "BONK", want: "kBONK"},
		{name: "manual override binance bonk", exchange: venue.Binance, ticker: "BONK", want: "1000BONKUSDT"},
		{name: "manual override lighter bonk", exchange: venue.Lighter, ticker: "BONK", want: "1000BONK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveExchangeSymbol(tt.exchange, tt.ticker)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolveExchangeSymbolUnknownTicker(t *testing.T) {
	_, err := ResolveExchangeSymbol(venue.Binance, "NOPE")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown ticker")
}

func TestIsTickerSupported(t *testing.T) {
	require.True(t, IsTickerSupported("BTC", venue.Binance))
	require.True(t, IsTickerSupported("PAXG", venue.Bybit))

	// PAXG is not listed on AsterDEX.
	require.False(t, IsTickerSupported("PAXG", venue.Asterdex))
	require.False(t, IsTickerSupported("NOPE", venue.Binance))
}

func TestSupportedVenues(t *testing.T) {
	all := SupportedVenues("BTC")
	require.Len(t, all, 6)

	withoutAsterdex := SupportedVenues("PAXG")
	require.Len(t, withoutAsterdex, 5)
	require.NotContains(t, withoutAsterdex, venue.Asterdex)
}

func TestResolveTickerFromExchangeSymbol(t *testing.T) {
	tests := []struct {
		exchange venue.Key
		symbol   string
		want     string
	}{
		{exchange: venue.Binance, symbol: "BTCUSDT", want: "BTC"},
		{exchange: venue.Dydx, symbol: "BTC-USD", want: "BTC"},
		{exchange: venue.Hyperliquid, symbol: "kBONK", want: "BONK"},
		{exchange: venue.Binance, symbol: "1000BONKUSDT", want: "BONK"},
		{exchange: venue.Lighter, symbol: "1000BONK", want: "BONK"},
	}

	for _, tt := range tests {
		t.Run(string(tt.exchange)+"/"+tt.symbol, func(t *testing.T) {
			got, ok := ResolveTickerFromExchangeSymbol(tt.exchange, tt.symbol)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}

	_, ok := ResolveTickerFromExchangeSymbol(venue.Binance, "WHATEVERUSDT")
	require.False(t, ok)
}

func TestBuildTickerMap(t *testing.T) {
	m := BuildTickerMap([]string{"BTC", "BONK"})
	require.Len(t, m, 2)
	assert.Equal(t, "BTCUSDT", m["BTC"][venue.Binance])
	assert.Equal(t, "BTC-USD", m["BTC"][venue.Dydx])
	assert.Equal(t, "kBONK", m["BONK"][venue.Hyperliquid])
}

func TestListPairMappingsMarksExclusions(t *testing.T) {
	rows := ListPairMappings([]string{"PAXG"})
	require.Len(t, rows, 1)
	require.Equal(t, "PAXG", rows[0].Ticker)
	require.Equal(t, "N/A", rows[0].Symbols[venue.Asterdex])
	require.Equal(t, "PAXGUSDT", rows[0].Symbols[venue.Binance])
}

func TestListTrackedSortedAndComplete(t *testing.T) {
	tickers := ListTracked()
	require.NotEmpty(t, tickers)
	require.True(t, sortedStrings(tickers))
	require.Contains(t, tickers, "BTC")
	require.True(t, IsTracked("BTC"))
	require.False(t, IsTracked("btc"))
}

func sortedStrings(values []string) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}
