package symbols

import (
	"fmt"

	"liqdepth-api/pkg/venue"
)

type symbolStyle int

const (
	styleBaseOnly symbolStyle = iota
	styleBaseDashQuote
	styleBaseQuote
)

type exchangeSymbolConfig struct {
	style        symbolStyle
	defaultQuote QuoteCurrency
}

var exchangeSymbolConfigs = map[venue.Key]exchangeSymbolConfig{
	venue.Hyperliquid: {style: styleBaseOnly},
	venue.Dydx:        {style: styleBaseDashQuote, defaultQuote: QuoteUSD},
	venue.Lighter:     {style: styleBaseOnly},
	venue.Asterdex:    {style: styleBaseQuote, defaultQuote: QuoteUSDT},
	venue.Binance:     {style: styleBaseQuote, defaultQuote: QuoteUSDT},
	venue.Bybit:       {style: styleBaseQuote, defaultQuote: QuoteUSDT},
}

func formatSymbol(base string, quote QuoteCurrency, style symbolStyle) (string, error) {
	switch style {
	case styleBaseOnly:
		return base, nil
	case styleBaseDashQuote:
		if quote == "" {
			return "", fmt.Errorf("symbols: quote currency is required for base-dash-quote style")
		}
		return base + "-" + string(quote), nil
	case styleBaseQuote:
		if quote == "" {
			return "", fmt.Errorf("symbols: quote currency is required for base-quote style")
		}
		return base + string(quote), nil
	default:
		return "", fmt.Errorf("symbols: unsupported symbol style %d", style)
	}
}

// ResolveExchangeSymbol returns the venue-native market symbol for a tracked
// ticker. A manual per-venue override wins outright; otherwise the base and
// resolved quote are formatted per the venue's convention. Quote precedence:
// per-ticker per-venue override, then the venue default, then the ticker's
// canonical quote.
func ResolveExchangeSymbol(exchange venue.Key, ticker string) (string, error) {
	def, ok := Tracked[ticker]
	if !ok {
		return "", fmt.Errorf("symbols: unknown ticker %q", ticker)
	}
	if manual, ok := def.SymbolByExchange[exchange]; ok && manual != "" {
		return manual, nil
	}

	cfg, ok := exchangeSymbolConfigs[exchange]
	if !ok {
		return "", fmt.Errorf("symbols: unknown venue %q", exchange)
	}

	quote := def.CanonicalQuote
	if cfg.defaultQuote != "" {
		quote = cfg.defaultQuote
	}
	if override, ok := def.QuoteByExchange[exchange]; ok && override != "" {
		quote = override
	}
	return formatSymbol(def.Base, quote, cfg.style)
}

// IsTickerSupported reports whether a tracked ticker is listed on the venue.
// Unknown tickers are never supported.
func IsTickerSupported(ticker string, exchange venue.Key) bool {
	def, ok := Tracked[ticker]
	if !ok {
		return false
	}
	for _, excluded := range def.ExcludedExchanges {
		if excluded == exchange {
			return false
		}
	}
	return true
}

// SupportedVenues filters the full venue set down to those listing ticker.
func SupportedVenues(ticker string) []venue.Key {
	supported := make([]venue.Key, 0, 6)
	for _, key := range venue.All() {
		if IsTickerSupported(ticker, key) {
			supported = append(supported, key)
		}
	}
	return supported
}

// ResolveTickerFromExchangeSymbol is the inverse lookup: it parses the native
// symbol and scans the tracked tickers for the one whose resolved venue
// symbol matches on canonical base asset, quote and contract multiplier.
func ResolveTickerFromExchangeSymbol(exchange venue.Key, symbol string) (string, bool) {
	parsedInput := ParseVenueSymbol(exchange, symbol)

	for _, ticker := range ListTracked() {
		mapped, err := ResolveExchangeSymbol(exchange, ticker)
		if err != nil {
			continue
		}
		parsedMapped := ParseVenueSymbol(exchange, mapped)
		if parsedMapped.CanonicalBaseAsset == parsedInput.CanonicalBaseAsset &&
			parsedMapped.QuoteAsset == parsedInput.QuoteAsset &&
			parsedMapped.ContractMultiplier == parsedInput.ContractMultiplier {
			return ticker, true
		}
	}
	return "", false
}

// BuildTickerMap resolves every venue symbol for the given tickers.
func BuildTickerMap(tickers []string) map[string]map[venue.Key]string {
	tickerMap := make(map[string]map[venue.Key]string, len(tickers))
	for _, ticker := range tickers {
		symbols := make(map[venue.Key]string, 6)
		for _, key := range venue.All() {
			resolved, err := ResolveExchangeSymbol(key, ticker)
			if err != nil {
				continue
			}
			symbols[key] = resolved
		}
		tickerMap[ticker] = symbols
	}
	return tickerMap
}

// PairMappingRow is one row of the ticker-to-venue-symbol table shown by the
// pairs endpoint.
type PairMappingRow struct {
	Ticker  string               `json:"ticker"`
	Symbols map[venue.Key]string `json:"symbols"`
}

// ListPairMappings builds the mapping table for the given tickers, with
// excluded venues rendered as "N/A".
func ListPairMappings(tickers []string) []PairMappingRow {
	rows := make([]PairMappingRow, 0, len(tickers))
	for _, ticker := range tickers {
		symbols := make(map[venue.Key]string, 6)
		for _, key := range venue.All() {
			resolved, err := ResolveExchangeSymbol(key, ticker)
			if err != nil {
				continue
			}
			symbols[key] = resolved
		}
		if def, ok := Tracked[ticker]; ok {
			for _, excluded := range def.ExcludedExchanges {
				symbols[excluded] = "N/A"
			}
		}
		rows = append(rows, PairMappingRow{Ticker: ticker, Symbols: symbols})
	}
	return rows
}
