package analytics

import (
	"time"

	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/storage"
)

// PositionView is a position enriched with live pricing.
type PositionView struct {
	storage.Position
	Price  float64 `json:"price"`
	Value  float64 `json:"value"`
	Cost   float64 `json:"cost"`
	PL     float64 `json:"pl"`
	PLPct  float64 `json:"pl_pct"`
	Manual bool    `json:"manual"`
}

// PortfolioView is the snapshot pushed to clients and served over the API.
type PortfolioView struct {
	Valuation
	Status    string         `json:"status"`
	Account   string         `json:"account"`
	Positions []PositionView `json:"positions"`
	Accounts  []AccountSlice `json:"accounts"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func BuildView(positions []storage.Position, prices map[string]pricecache.Quote, status pricecache.Status, account string) PortfolioView {
	filtered := FilterAccount(positions, account)

	view := PortfolioView{
		Valuation: Value(filtered, prices),
		Status:    string(status),
		Account:   account,
		Positions: make([]PositionView, 0, len(filtered)),
		Accounts:  AccountBreakdown(positions, prices),
		UpdatedAt: time.Now().UTC(),
	}
	if view.Account == "" {
		view.Account = "All"
	}

	for _, p := range filtered {
		price := prices[p.Ticker].Current
		value := price * p.Shares
		cost := p.AvgCost * p.Shares
		pl := value - cost
		pct := 0.0
		if cost > 0 {
			pct = pl / cost * 100
		}
		view.Positions = append(view.Positions, PositionView{
			Position: p,
			Price:    price,
			Value:    value,
			Cost:     cost,
			PL:       pl,
			PLPct:    pct,
			Manual:   pricecache.Manual(p.Ticker),
		})
	}
	return view
}
