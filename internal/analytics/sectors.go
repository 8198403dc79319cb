package analytics

import (
	"sort"

	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/storage"
)

// tickerSectors is a static lookup; anything unmapped lands in "Other".
var tickerSectors = map[string]string{
	"AAPL": "Technology", "MSFT": "Technology", "GOOGL": "Technology",
	"META": "Technology", "NVDA": "Technology", "AMD": "Technology",
	"INTC": "Technology", "MU": "Technology", "ASML": "Technology",
	"SNDK": "Technology", "TER": "Technology", "COHU": "Technology",
	"KXIAY": "Technology", "KRKNF": "Technology",

	"AMZN": "Consumer", "TSLA": "Consumer", "DIS": "Consumer", "NFLX": "Consumer",

	"V": "Financials", "JPM": "Financials", "BRK.B": "Financials",

	"BA": "Aerospace & Defense", "RKLB": "Aerospace & Defense",
	"SAABY": "Aerospace & Defense", "RNMBY": "Aerospace & Defense",

	"QS": "Materials", "ABAT": "Materials", "UAMY": "Materials",
	"LYSDY": "Materials", "FCX": "Materials",

	"SMERY": "Industrials", "SHWDY": "Industrials",

	"SPY": "Funds", "QQQ": "Funds", "VTSAX": "Funds",
}

const sectorOther = "Other"

func Sector(ticker string) string {
	if s, ok := tickerSectors[ticker]; ok {
		return s
	}
	return sectorOther
}

type SectorSlice struct {
	Sector string  `json:"sector"`
	Value  float64 `json:"value"`
}

// SectorBreakdown aggregates market value per sector, descending by value,
// dropping empty sectors.
func SectorBreakdown(positions []storage.Position, prices map[string]pricecache.Quote) []SectorSlice {
	totals := make(map[string]float64)
	for _, p := range positions {
		totals[Sector(p.Ticker)] += prices[p.Ticker].Current * p.Shares
	}

	out := make([]SectorSlice, 0, len(totals))
	for sector, value := range totals {
		if value > 0 {
			out = append(out, SectorSlice{Sector: sector, Value: value})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Sector < out[j].Sector
	})
	return out
}
