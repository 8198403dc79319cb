package lifecycle

import (
	"github.com/camuig/foliowatch/internal/analytics"
	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/storage"
)

// rule is a pure predicate over the current portfolio state. Rules are only
// evaluated while the price feed is live, and a key that has unlocked once is
// never evaluated again.
type rule struct {
	Key  string
	Name string
	Met  func(v analytics.Valuation, positions []storage.Position, prices map[string]pricecache.Quote) bool
}

var achievementRules = []rule{
	{
		Key:  "first_profit",
		Name: "In The Green",
		Met: func(v analytics.Valuation, _ []storage.Position, _ map[string]pricecache.Quote) bool {
			return v.TotalPL > 0
		},
	},
	{
		Key:  "moonshot",
		Name: "Moonshot",
		Met: func(_ analytics.Valuation, positions []storage.Position, prices map[string]pricecache.Quote) bool {
			for _, pct := range analytics.BlendedPLPct(positions, prices) {
				if pct >= 400 {
					return true
				}
			}
			return false
		},
	},
	{
		Key:  "diamond_hands",
		Name: "Diamond Hands",
		Met: func(_ analytics.Valuation, positions []storage.Position, prices map[string]pricecache.Quote) bool {
			for _, pct := range analytics.BlendedPLPct(positions, prices) {
				if pct <= -20 {
					return true
				}
			}
			return false
		},
	},
	{
		Key:  "quarter_mil",
		Name: "Quarter Mil Club",
		Met: func(v analytics.Valuation, _ []storage.Position, _ map[string]pricecache.Quote) bool {
			return v.TotalValue >= 250000
		},
	},
	{
		Key:  "diversified",
		Name: "Diversified",
		Met: func(_ analytics.Valuation, positions []storage.Position, _ map[string]pricecache.Quote) bool {
			return len(analytics.DistinctTickers(positions)) >= 10
		},
	},
}
