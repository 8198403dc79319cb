package analytics

import (
	"sort"

	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/storage"
)

// Mover is one ticker's blended performance across all of its lots,
// regardless of account.
type Mover struct {
	Ticker string  `json:"ticker"`
	Value  float64 `json:"value"`
	PLPct  float64 `json:"pl_pct"`
}

// blend aggregates every lot of each ticker. Tickers with no price are
// excluded; first-seen order is preserved in the returned ticker list.
func blend(positions []storage.Position, prices map[string]pricecache.Quote) []Mover {
	type agg struct {
		shares float64
		cost   float64
	}
	byTicker := make(map[string]*agg)
	order := make([]string, 0)
	for _, p := range positions {
		a := byTicker[p.Ticker]
		if a == nil {
			a = &agg{}
			byTicker[p.Ticker] = a
			order = append(order, p.Ticker)
		}
		a.shares += p.Shares
		a.cost += p.AvgCost * p.Shares
	}

	movers := make([]Mover, 0, len(order))
	for _, t := range order {
		price := prices[t].Current
		if price == 0 {
			continue
		}
		a := byTicker[t]
		value := a.shares * price
		pct := 0.0
		if a.cost > 0 {
			pct = (value - a.cost) / a.cost * 100
		}
		movers = append(movers, Mover{Ticker: t, Value: value, PLPct: pct})
	}
	return movers
}

// BlendedPLPct maps each priced ticker to its blended P&L% across all lots.
func BlendedPLPct(positions []storage.Position, prices map[string]pricecache.Quote) map[string]float64 {
	movers := blend(positions, prices)
	out := make(map[string]float64, len(movers))
	for _, m := range movers {
		out[m.Ticker] = m.PLPct
	}
	return out
}

// Movers ranks tickers by blended P&L%: top 3 positive performers and top 3
// negative ones (losers ordered worst last). Tickers with no price are left
// out of both lists.
func Movers(positions []storage.Position, prices map[string]pricecache.Quote) (gainers, losers []Mover) {
	movers := blend(positions, prices)
	sort.Slice(movers, func(i, j int) bool { return movers[i].PLPct > movers[j].PLPct })

	for _, m := range movers {
		if m.PLPct > 0 && len(gainers) < 3 {
			gainers = append(gainers, m)
		}
	}
	for i := len(movers) - 1; i >= 0; i-- {
		if movers[i].PLPct < 0 && len(losers) < 3 {
			losers = append(losers, movers[i])
		}
	}
	// Most-negative last.
	for i, j := 0, len(losers)-1; i < j; i, j = i+1, j-1 {
		losers[i], losers[j] = losers[j], losers[i]
	}
	return gainers, losers
}

// TopByValue returns up to n tickers ranked by aggregate market value.
func TopByValue(positions []storage.Position, prices map[string]pricecache.Quote, n int) []string {
	totals := make(map[string]float64)
	order := make([]string, 0)
	for _, p := range positions {
		if _, ok := totals[p.Ticker]; !ok {
			order = append(order, p.Ticker)
		}
		totals[p.Ticker] += prices[p.Ticker].Current * p.Shares
	}
	sort.SliceStable(order, func(i, j int) bool { return totals[order[i]] > totals[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	return order
}
