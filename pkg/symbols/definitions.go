// Package symbols maps canonical tickers to each venue's native instrument
// identifier and back, including contract-multiplier variants such as
// "1000BONK".
package symbols

import (
	"sort"

	"liqdepth-api/pkg/venue"
)

// QuoteCurrency enumerates the quote assets the tracked venues settle in.
type QuoteCurrency string

const (
	QuoteUSD  QuoteCurrency = "USD"
	QuoteUSDT QuoteCurrency = "USDT"
	QuoteUSDC QuoteCurrency = "USDC"
)

// Definition declares one tracked ticker and its venue-specific overrides.
type Definition struct {
	Base              string
	CanonicalQuote    QuoteCurrency
	QuoteByExchange   map[venue.Key]QuoteCurrency
	SymbolByExchange  map[venue.Key]string
	ExcludedExchanges []venue.Key
}

// Tracked is the compiled-in ticker universe. Symbols were verified across
// Hyperliquid, dYdX, Lighter, AsterDEX, Binance and Bybit on 2026-02-11.
var Tracked = map[string]Definition{
	"2Z":     {Base: "2Z", CanonicalQuote: QuoteUSD},
	"AAVE":   {Base: "AAVE", CanonicalQuote: QuoteUSD},
	"ADA":    {Base: "ADA", CanonicalQuote: QuoteUSD},
	"APT":    {Base: "APT", CanonicalQuote: QuoteUSD},
	"ARB":    {Base: "ARB", CanonicalQuote: QuoteUSD},
	"ASTER":  {Base: "ASTER", CanonicalQuote: QuoteUSD},
	"AVAX":   {Base: "AVAX", CanonicalQuote: QuoteUSD},
	"AVNT":   {Base: "AVNT", CanonicalQuote: QuoteUSD},
	"AXS":    {Base: "AXS", CanonicalQuote: QuoteUSD},
	"BCH":    {Base: "BCH", CanonicalQuote: QuoteUSD},
	"BERA":   {Base: "BERA", CanonicalQuote: QuoteUSD},
	"BNB":    {Base: "BNB", CanonicalQuote: QuoteUSD},
	"BONK": {
		Base:           "BONK",
		CanonicalQuote: QuoteUSD,
		SymbolByExchange: map[venue.Key]string{
			venue.Hyperliquid: "kBONK",
			venue.Dydx:        "BONK-USD",
			venue.Lighter:     "1000BONK",
			venue.Asterdex:    "1000BONKUSDT",
			venue.Binance:     "1000BONKUSDT",
			venue.Bybit:       "1000BONKUSDT",
		},
	},
	"BTC":    {Base: "BTC", CanonicalQuote: QuoteUSD},
	"CRV":    {Base: "CRV", CanonicalQuote: QuoteUSD},
	"DASH":   {Base: "DASH", CanonicalQuote: QuoteUSD},
	"DOGE":   {Base: "DOGE", CanonicalQuote: QuoteUSD},
	"DOT":    {Base: "DOT", CanonicalQuote: QuoteUSD},
	"DYDX":   {Base: "DYDX", CanonicalQuote: QuoteUSD},
	"EIGEN":  {Base: "EIGEN", CanonicalQuote: QuoteUSD},
	"ENA":    {Base: "ENA", CanonicalQuote: QuoteUSD},
	"ETH":    {Base: "ETH", CanonicalQuote: QuoteUSD},
	"ETHFI":  {Base: "ETHFI", CanonicalQuote: QuoteUSD},
	"FIL":    {Base: "FIL", CanonicalQuote: QuoteUSD},
	"GRASS":  {Base: "GRASS", CanonicalQuote: QuoteUSD},
	"HBAR":   {Base: "HBAR", CanonicalQuote: QuoteUSD},
	"HYPE":   {Base: "HYPE", CanonicalQuote: QuoteUSD},
	"ICP":    {Base: "ICP", CanonicalQuote: QuoteUSD},
	"IP":     {Base: "IP", CanonicalQuote: QuoteUSD},
	"JUP":    {Base: "JUP", CanonicalQuote: QuoteUSD},
	"LDO":    {Base: "LDO", CanonicalQuote: QuoteUSD},
	"LINEA":  {Base: "LINEA", CanonicalQuote: QuoteUSD},
	"LINK":   {Base: "LINK", CanonicalQuote: QuoteUSD},
	"LIT":    {Base: "LIT", CanonicalQuote: QuoteUSD},
	"LTC":    {Base: "LTC", CanonicalQuote: QuoteUSD},
	"MET":    {Base: "MET", CanonicalQuote: QuoteUSD},
	"MON":    {Base: "MON", CanonicalQuote: QuoteUSD},
	"NEAR":   {Base: "NEAR", CanonicalQuote: QuoteUSD},
	"ONDO":   {Base: "ONDO", CanonicalQuote: QuoteUSD},
	"OP":     {Base: "OP", CanonicalQuote: QuoteUSD},
	"PAXG": {
		Base:           "PAXG",
		CanonicalQuote: QuoteUSD,
		SymbolByExchange: map[venue.Key]string{
			venue.Hyperliquid: "PAXG",
			venue.Dydx:        "PAXG-USD",
			venue.Lighter:     "PAXG",
			venue.Binance:     "PAXGUSDT",
			venue.Bybit:       "PAXGUSDT",
		},
		ExcludedExchanges: []venue.Key{venue.Asterdex},
	},
	"PENDLE":  {Base: "PENDLE", CanonicalQuote: QuoteUSD},
	"PENGU":   {Base: "PENGU", CanonicalQuote: QuoteUSD},
	"POL":     {Base: "POL", CanonicalQuote: QuoteUSD},
	"PROVE":   {Base: "PROVE", CanonicalQuote: QuoteUSD},
	"PYTH":    {Base: "PYTH", CanonicalQuote: QuoteUSD},
	"SEI":     {Base: "SEI", CanonicalQuote: QuoteUSD},
	"SKY":     {Base: "SKY", CanonicalQuote: QuoteUSD},
	"SOL":     {Base: "SOL", CanonicalQuote: QuoteUSD},
	"SPX":     {Base: "SPX", CanonicalQuote: QuoteUSD},
	"STRK":    {Base: "STRK", CanonicalQuote: QuoteUSD},
	"SUI":     {Base: "SUI", CanonicalQuote: QuoteUSD},
	"TAO":     {Base: "TAO", CanonicalQuote: QuoteUSD},
	"TIA":     {Base: "TIA", CanonicalQuote: QuoteUSD},
	"TON":     {Base: "TON", CanonicalQuote: QuoteUSD},
	"TRUMP":   {Base: "TRUMP", CanonicalQuote: QuoteUSD},
	"TRX":     {Base: "TRX", CanonicalQuote: QuoteUSD},
	"UNI":     {Base: "UNI", CanonicalQuote: QuoteUSD},
	"VIRTUAL": {Base: "VIRTUAL", CanonicalQuote: QuoteUSD},
	"VVV":     {Base: "VVV", CanonicalQuote: QuoteUSD},
	"WLD":     {Base: "WLD", CanonicalQuote: QuoteUSD},
	"WLFI":    {Base: "WLFI", CanonicalQuote: QuoteUSD},
	"XLM":     {Base: "XLM", CanonicalQuote: QuoteUSD},
	"XMR":     {Base: "XMR", CanonicalQuote: QuoteUSD},
	"XPL":     {Base: "XPL", CanonicalQuote: QuoteUSD},
	"XRP":     {Base: "XRP", CanonicalQuote: QuoteUSD},
	"ZEC":     {Base: "ZEC", CanonicalQuote: QuoteUSD},
	"ZK":      {Base: "ZK", CanonicalQuote: QuoteUSD},
	"ZORA":    {Base: "ZORA", CanonicalQuote: QuoteUSD},
	"ZRO":     {Base: "ZRO", CanonicalQuote: QuoteUSD},
}

// IsTracked reports whether the ticker has a definition.
func IsTracked(ticker string) bool {
	_, ok := Tracked[ticker]
	return ok
}

// ListTracked returns every tracked ticker in alphabetical order.
func ListTracked() []string {
	tickers := make([]string, 0, len(Tracked))
	for ticker := range Tracked {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}
