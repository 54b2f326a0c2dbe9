package model

import "strings"

// KnownQuoteAssets is checked in order: USDT must be tested before BTC,
// otherwise BTCUSDT-style pairs would match BTC as a suffix.
var KnownQuoteAssets = []string{"USDT", "BTC", "ETH"}

// QuoteAsset resolves the pricing currency of a pair. Pairs with an
// unknown quote default to USDT.
func QuoteAsset(symbol string) string {
	if strings.HasSuffix(symbol, "USDT") {
		return "USDT"
	}

	if strings.HasSuffix(symbol, "BTC") {
		return "BTC"
	}

	return "USDT"
}

// BaseAsset strips the first matching known quote suffix. Unknown pairs
// are returned whole.
func BaseAsset(symbol string) string {
	for _, quote := range KnownQuoteAssets {
		if strings.HasSuffix(symbol, quote) && len(symbol) > len(quote) {
			return strings.TrimSuffix(symbol, quote)
		}
	}

	return symbol
}
