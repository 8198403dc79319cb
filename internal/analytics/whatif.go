package analytics

import (
	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/storage"
)

// WhatIf computes hypothetical post-trade totals for buying shares of ticker
// at the given price. The trade's cost enters at the input price; its market
// value enters at the current cached price, falling back to the input price
// for tickers the cache has never seen. Nothing is mutated.
func WhatIf(positions []storage.Position, prices map[string]pricecache.Quote, ticker string, shares, price float64) Valuation {
	current := prices[ticker].Current
	if current == 0 {
		current = price
	}

	v := Value(positions, prices)
	v.TotalCost += shares * price
	v.TotalValue += shares * current
	v.TotalPL = v.TotalValue - v.TotalCost
	v.TotalPLPct = 0
	if v.TotalCost > 0 {
		v.TotalPLPct = v.TotalPL / v.TotalCost * 100
	}
	return v
}
