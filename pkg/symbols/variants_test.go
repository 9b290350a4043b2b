package symbols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"liqdepth-api/pkg/venue"
)

func TestParseVenueSymbol(t *testing.T) {
	tests := []struct {
		name      string
		exchange  venue.Key
		symbol    string
		wantBase  string
		wantQuote QuoteCurrency
		wantMult  int
	}{
		{name: "plain binance pair", exchange: venue.Binance, symbol: "BTCUSDT", wantBase: "BTC", wantQuote: QuoteUSDT, wantMult: 1},
		{name: "dydx dash pair", exchange: venue.Dydx, symbol: "BTC-USD", wantBase: "BTC", wantQuote: QuoteUSD, wantMult: 1},
		{name: "hyperliquid bare base", exchange: venue.Hyperliquid, symbol: "BTC", wantBase: "BTC", wantQuote: "", wantMult: 1},
		{name: "k-prefixed variant", exchange: venue.Hyperliquid, symbol: "kBONK", wantBase: "BONK", wantQuote: "", wantMult: 1_000},
		{name: "thousand-prefixed variant", exchange: venue.Binance, symbol: "1000BONKUSDT", wantBase: "BONK", wantQuote: QuoteUSDT, wantMult: 1_000},
		{name: "thousand-suffixed variant", exchange: venue.Bybit, symbol: "BONK1000USDT", wantBase: "BONK", wantQuote: QuoteUSDT, wantMult: 1_000},
		{name: "usdc quote", exchange: venue.Binance, symbol: "ETHUSDC", wantBase: "ETH", wantQuote: QuoteUSDC, wantMult: 1},
		{name: "lowercase and whitespace", exchange: venue.Binance, symbol: "  btcusdt ", wantBase: "BTC", wantQuote: QuoteUSDT, wantMult: 1},
		{name: "1inch is not a variant", exchange: venue.Binance, symbol: "1INCHUSDT", wantBase: "1INCH", wantQuote: QuoteUSDT, wantMult: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseVenueSymbol(tt.exchange, tt.symbol)
			require.Equal(t, tt.wantBase, parsed.CanonicalBaseAsset)
			require.Equal(t, tt.wantQuote, parsed.QuoteAsset)
			require.Equal(t, tt.wantMult, parsed.ContractMultiplier)
		})
	}
}

// USDT must win over USD when both would match as a suffix.
func TestSplitQuoteSuffixPrecedence(t *testing.T) {
	base, quote := splitQuoteSuffix("BTCUSDT")
	require.Equal(t, "BTC", base)
	require.Equal(t, QuoteUSDT, quote)

	base, quote = splitQuoteSuffix("BTCUSD")
	require.Equal(t, "BTC", base)
	require.Equal(t, QuoteUSD, quote)

	// A bare quote token is not split into an empty base.
	base, quote = splitQuoteSuffix("USDT")
	require.Equal(t, "USDT", base)
	require.Equal(t, QuoteCurrency(""), quote)
}

func TestBuildCanonicalMarketID(t *testing.T) {
	withQuote := ParseVenueSymbol(venue.Binance, "1000BONKUSDT")
	require.Equal(t, "BONK-USDT-x1000", BuildCanonicalMarketID(withQuote))

	noQuote := ParseVenueSymbol(venue.Hyperliquid, "kBONK")
	require.Equal(t, "BONK-NA-x1000", BuildCanonicalMarketID(noQuote))
}

// Venue symbols for the same ticker on different venues collapse to the same
// canonical base and multiplier.
func TestVariantRoundTripAcrossVenues(t *testing.T) {
	hl := ParseVenueSymbol(venue.Hyperliquid, "kBONK")
	bn := ParseVenueSymbol(venue.Binance, "1000BONKUSDT")
	lt := ParseVenueSymbol(venue.Lighter, "1000BONK")

	require.Equal(t, hl.CanonicalBaseAsset, bn.CanonicalBaseAsset)
	require.Equal(t, bn.CanonicalBaseAsset, lt.CanonicalBaseAsset)
	require.Equal(t, hl.ContractMultiplier, bn.ContractMultiplier)
	require.Equal(t, bn.ContractMultiplier, lt.ContractMultiplier)
}
