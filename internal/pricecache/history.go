package pricecache

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"
)

const historyDays = 30

type HistoryPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}

// generateHistory builds a deterministic 30-day random walk toward the base
// price. The PRNG is seeded by the ticker string so the same ticker always
// gets the same series within and across sessions.
func generateHistory(ticker string, basePrice float64, days int) []HistoryPoint {
	h := fnv.New64a()
	h.Write([]byte(ticker))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	price := basePrice * (0.85 + rng.Float64()*0.15)
	now := time.Now()

	points := make([]HistoryPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		price = price * (1 + (rng.Float64()-0.48)*0.04)
		points = append(points, HistoryPoint{
			Date:  date.Format("2006-01-02"),
			Price: math.Round(price*100) / 100,
		})
	}
	return points
}
