package pricecache

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/camuig/foliowatch/internal/finnhub"
	"github.com/camuig/foliowatch/internal/logger"
	"github.com/camuig/foliowatch/internal/storage"
)

// Quote is the session view of one symbol. Change accumulates across the
// session under simulation; under live data it is the provider's day change.
type Quote struct {
	Current   float64 `json:"current"`
	Prev      float64 `json:"prev"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
}

type Status string

const (
	StatusConnecting Status = "connecting"
	StatusLive       Status = "live"
	StatusSimulated  Status = "simulated"
)

// Provider is the live quote source. The cache only needs this one call, so
// tests substitute a fake.
type Provider interface {
	GetQuote(ctx context.Context, symbol string) (finnhub.Quote, error)
}

// Cache holds current quotes for every ticker in the portfolio. It is never
// persisted; every process start begins a fresh pricing session.
type Cache struct {
	mu        sync.RWMutex
	quotes    map[string]Quote
	histories map[string][]HistoryPoint
	status    Status

	provider Provider
	delay    time.Duration
	rng      *rand.Rand
	sleep    func(ctx context.Context, d time.Duration) bool
	logger   *logger.Logger
}

func New(p Provider, delay time.Duration, rng *rand.Rand, log *logger.Logger) *Cache {
	return &Cache{
		quotes:    make(map[string]Quote),
		histories: make(map[string][]HistoryPoint),
		status:    StatusConnecting,
		provider:  p,
		delay:     delay,
		rng:       rng,
		sleep:     sleepCtx,
		logger:    log,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// Prime seeds quotes for every distinct ticker that has none yet: manual
// tickers at their cost basis, known tickers at the static base price, the
// rest at a randomized default. Newly added positions go through here so
// they are priced before the next refresh tick.
func (c *Cache) Prime(positions []storage.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range positions {
		if _, ok := c.quotes[p.Ticker]; ok {
			continue
		}
		base := c.basePrice(p)
		c.quotes[p.Ticker] = Quote{Current: base, Prev: base}
		c.histories[p.Ticker] = generateHistory(p.Ticker, base, historyDays)
	}
}

func (c *Cache) basePrice(p storage.Position) float64 {
	if manualTickers[p.Ticker] {
		return p.AvgCost
	}
	if base, ok := basePrices[p.Ticker]; ok {
		return base
	}
	return 100 + c.rng.Float64()*400
}

// RefreshCycle fetches a quote for every ticker, sequentially with a bounded
// inter-request delay, then applies all results in one atomic update. Tickers
// the provider fails on keep a continuous price via simulated drift. The
// returned status is live when at least one ticker got real data.
func (c *Cache) RefreshCycle(ctx context.Context, tickers []string) Status {
	fetchable := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if !manualTickers[t] {
			fetchable = append(fetchable, t)
		}
	}

	live := make(map[string]finnhub.Quote, len(fetchable))
	anyLive := false
	for i, t := range fetchable {
		if i > 0 && !c.sleep(ctx, c.delay) {
			break
		}
		q, err := c.provider.GetQuote(ctx, providerSymbol(t))
		if err != nil {
			c.logger.Debug("quote fetch failed, will simulate", "ticker", t, "error", err)
			continue
		}
		live[t] = q
		anyLive = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range fetchable {
		old, exists := c.quotes[t]
		if q, ok := live[t]; ok {
			div := priceDivisor(t)
			prev := q.Current / div
			if exists {
				prev = old.Current
			}
			c.quotes[t] = Quote{
				Current:   q.Current / div,
				Prev:      prev,
				Change:    q.Change / div,
				ChangePct: q.ChangePct,
			}
			continue
		}
		if exists {
			c.quotes[t] = c.simulate(old)
		}
	}

	if len(fetchable) > 0 {
		if anyLive {
			c.status = StatusLive
		} else {
			c.status = StatusSimulated
		}
	}
	return c.status
}

// simulate perturbs a price by a bounded multiplicative step with a slight
// downward bias, keeping Change cumulative and ChangePct relative to the
// session reference price (current minus accumulated change).
func (c *Cache) simulate(old Quote) Quote {
	factor := 1 + (c.rng.Float64()-0.48)*0.04
	price := math.Round(old.Current*factor*100) / 100
	if price <= 0 {
		price = 0.01
	}

	ref := old.Current - old.Change
	change := old.Change + (price - old.Current)
	pct := 0.0
	if ref != 0 {
		pct = (price - ref) / ref * 100
	}

	return Quote{Current: price, Prev: old.Current, Change: change, ChangePct: pct}
}

func (c *Cache) Get(ticker string) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.quotes[ticker]
	return q, ok
}

func (c *Cache) Price(ticker string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.quotes[ticker].Current
}

// Snapshot copies the whole quote map so readers never observe a cycle
// mid-application.
func (c *Cache) Snapshot() map[string]Quote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Quote, len(c.quotes))
	for k, v := range c.quotes {
		out[k] = v
	}
	return out
}

func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// History returns the generated 30-day sparkline series for a primed ticker.
func (c *Cache) History(ticker string) []HistoryPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.histories[ticker]
}
