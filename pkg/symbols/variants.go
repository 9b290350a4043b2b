package symbols

import (
	"fmt"
	"strings"

	"liqdepth-api/pkg/venue"
)

// AssetVariant resolves a venue's lot-scaled listing (such as "1000BONK") to
// one canonical base asset plus a contract multiplier, so cross-venue
// comparison stays apples-to-apples.
type AssetVariant struct {
	BaseAsset          string
	ContractMultiplier int
}

// Quote suffixes are stripped in this priority order; USDT must be tried
// before USD or "BTCUSDT" would split as base "BTCUSDT"-less-"USD".
var quoteSuffixes = []QuoteCurrency{QuoteUSDT, QuoteUSDC, QuoteUSD}

// Keep the alias table explicit to avoid over-normalizing unrelated assets
// (for example 1INCH).
var globalAssetVariantAliases = map[string]AssetVariant{
	"KBONK":    {BaseAsset: "BONK", ContractMultiplier: 1_000},
	"BONK1000": {BaseAsset: "BONK", ContractMultiplier: 1_000},
	"1000BONK": {BaseAsset: "BONK", ContractMultiplier: 1_000},
}

var exchangeAssetVariantAliases = map[venue.Key]map[string]AssetVariant{}

// ParsedVenueSymbol is the decomposition of a raw venue symbol used for
// round-trip symbol reasoning. It is derived on demand and never persisted.
type ParsedVenueSymbol struct {
	Exchange           venue.Key
	OriginalSymbol     string
	NormalizedSymbol   string
	OriginalBaseToken  string
	CanonicalBaseAsset string
	QuoteAsset         QuoteCurrency // empty when the symbol carries no quote suffix
	ContractMultiplier int
}

func normalizeSymbolToken(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(raw)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitQuoteSuffix(symbol string) (baseToken string, quote QuoteCurrency) {
	for _, q := range quoteSuffixes {
		suffix := string(q)
		if strings.HasSuffix(symbol, suffix) && len(symbol) > len(suffix) {
			return symbol[:len(symbol)-len(suffix)], q
		}
	}
	return symbol, ""
}

func resolveAssetVariant(exchange venue.Key, baseToken string) AssetVariant {
	normalized := normalizeSymbolToken(baseToken)
	if alias, ok := exchangeAssetVariantAliases[exchange][normalized]; ok {
		return alias
	}
	if alias, ok := globalAssetVariantAliases[normalized]; ok {
		return alias
	}
	return AssetVariant{BaseAsset: normalized, ContractMultiplier: 1}
}

// ParseVenueSymbol normalizes a raw venue symbol, strips a known quote
// suffix, and resolves the remaining base token through the venue-specific
// then global alias tables. Unaliased tokens pass through with multiplier 1.
func ParseVenueSymbol(exchange venue.Key, symbol string) ParsedVenueSymbol {
	normalized := normalizeSymbolToken(symbol)
	baseToken, quote := splitQuoteSuffix(normalized)
	variant := resolveAssetVariant(exchange, baseToken)

	return ParsedVenueSymbol{
		Exchange:           exchange,
		OriginalSymbol:     symbol,
		NormalizedSymbol:   normalized,
		OriginalBaseToken:  baseToken,
		CanonicalBaseAsset: variant.BaseAsset,
		QuoteAsset:         quote,
		ContractMultiplier: variant.ContractMultiplier,
	}
}

// BuildCanonicalMarketID renders a parsed symbol as a stable comparison key,
// e.g. "BONK-USDT-x1000".
func BuildCanonicalMarketID(parsed ParsedVenueSymbol) string {
	quote := string(parsed.QuoteAsset)
	if quote == "" {
		quote = "NA"
	}
	return fmt.Sprintf("%s-%s-x%d", parsed.CanonicalBaseAsset, quote, parsed.ContractMultiplier)
}
