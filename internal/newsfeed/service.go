// Package newsfeed caches company news and the earnings calendar for the
// held tickers. Provider calls are sequential with a bounded delay, run once
// per session; every per-symbol failure is non-fatal.
package newsfeed

import (
	"context"
	"sync"
	"time"

	"github.com/camuig/foliowatch/internal/finnhub"
	"github.com/camuig/foliowatch/internal/logger"
)

// Source is the slice of the provider client this service needs.
type Source interface {
	CompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]finnhub.NewsItem, error)
	EarningsCalendar(ctx context.Context, from, to time.Time) ([]finnhub.EarningsEntry, error)
}

type Service struct {
	source Source
	delay  time.Duration
	logger *logger.Logger

	mu       sync.RWMutex
	fetched  bool
	news     map[string][]finnhub.NewsItem
	earnings []finnhub.EarningsEntry
}

func NewService(source Source, delay time.Duration, log *logger.Logger) *Service {
	return &Service{
		source: source,
		delay:  delay,
		logger: log,
		news:   make(map[string][]finnhub.NewsItem),
	}
}

// RefreshOnce fetches news for each ticker and the coming week's earnings
// calendar, at most once per session.
func (s *Service) RefreshOnce(ctx context.Context, tickers []string) {
	s.mu.Lock()
	if s.fetched {
		s.mu.Unlock()
		return
	}
	s.fetched = true
	s.mu.Unlock()

	now := time.Now()
	from := now.AddDate(0, 0, -7)

	for i, t := range tickers {
		if i > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.delay):
			}
		}
		items, err := s.source.CompanyNews(ctx, t, from, now)
		if err != nil {
			s.logger.Debug("company news fetch failed", "ticker", t, "error", err)
			continue
		}
		s.mu.Lock()
		s.news[t] = items
		s.mu.Unlock()
	}

	entries, err := s.source.EarningsCalendar(ctx, now, now.AddDate(0, 0, 7))
	if err != nil {
		s.logger.Debug("earnings calendar fetch failed", "error", err)
		return
	}
	s.mu.Lock()
	s.earnings = entries
	s.mu.Unlock()
}

func (s *Service) News(ticker string) []finnhub.NewsItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.news[ticker]
}

func (s *Service) Earnings() []finnhub.EarningsEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.earnings
}
