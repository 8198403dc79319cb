package analytics

import "github.com/camuig/foliowatch/internal/storage"

// PLBar is one day-over-day portfolio value delta.
type PLBar struct {
	Date  string  `json:"date"`
	Delta float64 `json:"delta"`
}

// DailyDeltas derives P&L bars from raw daily value records. At least two
// recorded days are needed before any bar exists.
func DailyDeltas(entries []storage.DailyPL) []PLBar {
	if len(entries) < 2 {
		return nil
	}
	bars := make([]PLBar, 0, len(entries)-1)
	for i := 1; i < len(entries); i++ {
		bars = append(bars, PLBar{
			Date:  entries[i].Date,
			Delta: entries[i].Value - entries[i-1].Value,
		})
	}
	return bars
}
