package pricecache

// manualTickers have no provider feed at all. They are priced at cost basis
// with zero change and are never sent to the provider.
var manualTickers = map[string]bool{
	"VTSAX": true,
}

// override remaps a display ticker to the provider's symbol and/or scales the
// quoted price. Divisors correct for corporate actions the provider has not
// processed; Symbol covers proxy-instrument substitution.
type override struct {
	Symbol  string
	Divisor float64
}

var quoteOverrides = map[string]override{
	// Finnhub still quotes the pre-split ADR.
	"KXIAY": {Divisor: 10},
}

func providerSymbol(ticker string) string {
	if o, ok := quoteOverrides[ticker]; ok && o.Symbol != "" {
		return o.Symbol
	}
	return ticker
}

func priceDivisor(ticker string) float64 {
	if o, ok := quoteOverrides[ticker]; ok && o.Divisor > 0 {
		return o.Divisor
	}
	return 1
}

// basePrices seed the cache before the first live quote lands.
var basePrices = map[string]float64{
	"AAPL": 192.5, "MSFT": 415.8, "GOOGL": 155.2, "AMZN": 190.4,
	"NVDA": 520.3, "TSLA": 260.1, "META": 510.2, "SPY": 525.6,
	"QQQ": 460.3, "AMD": 165.8, "NFLX": 630.5, "DIS": 112.4,
	"V": 280.3, "JPM": 198.5, "BA": 210.7,
}

// Manual reports whether a ticker is priced at cost basis only.
func Manual(ticker string) bool {
	return manualTickers[ticker]
}
