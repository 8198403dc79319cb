package analytics

import (
	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/storage"
)

// Valuation is the aggregate view of a position set under a price map.
type Valuation struct {
	TotalValue float64 `json:"total_value"`
	TotalCost  float64 `json:"total_cost"`
	TotalPL    float64 `json:"total_pl"`
	TotalPLPct float64 `json:"total_pl_pct"`
}

// Value computes totals. A zero cost basis yields 0%, never NaN.
func Value(positions []storage.Position, prices map[string]pricecache.Quote) Valuation {
	var v Valuation
	for _, p := range positions {
		v.TotalValue += prices[p.Ticker].Current * p.Shares
		v.TotalCost += p.AvgCost * p.Shares
	}
	v.TotalPL = v.TotalValue - v.TotalCost
	if v.TotalCost > 0 {
		v.TotalPLPct = v.TotalPL / v.TotalCost * 100
	}
	return v
}

// FilterAccount returns the positions in one account, or all of them for
// the empty filter / "All".
func FilterAccount(positions []storage.Position, account string) []storage.Position {
	if account == "" || account == "All" {
		return positions
	}
	out := make([]storage.Position, 0, len(positions))
	for _, p := range positions {
		if p.Account == account {
			out = append(out, p)
		}
	}
	return out
}

type AccountSlice struct {
	Account string  `json:"account"`
	Value   float64 `json:"value"`
}

// AccountBreakdown reports value per account in the fixed account order,
// dropping empty accounts.
func AccountBreakdown(positions []storage.Position, prices map[string]pricecache.Quote) []AccountSlice {
	out := make([]AccountSlice, 0, len(storage.Accounts))
	for _, acc := range storage.Accounts {
		var value float64
		for _, p := range positions {
			if p.Account == acc {
				value += prices[p.Ticker].Current * p.Shares
			}
		}
		if value > 0 {
			out = append(out, AccountSlice{Account: acc, Value: value})
		}
	}
	return out
}

// DistinctTickers preserves first-seen order.
func DistinctTickers(positions []storage.Position) []string {
	seen := make(map[string]bool, len(positions))
	out := make([]string, 0, len(positions))
	for _, p := range positions {
		if !seen[p.Ticker] {
			seen[p.Ticker] = true
			out = append(out, p.Ticker)
		}
	}
	return out
}
