package newsfeed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/camuig/foliowatch/internal/finnhub"
	"github.com/camuig/foliowatch/internal/logger"
)

type fakeSource struct {
	newsCalls     int
	earningsCalls int
	failFor       map[string]bool
}

func (f *fakeSource) CompanyNews(_ context.Context, symbol string, _, _ time.Time) ([]finnhub.NewsItem, error) {
	f.newsCalls++
	if f.failFor[symbol] {
		return nil, errors.New("provider error")
	}
	return []finnhub.NewsItem{{Headline: symbol + " update", Source: "Wire"}}, nil
}

func (f *fakeSource) EarningsCalendar(_ context.Context, _, _ time.Time) ([]finnhub.EarningsEntry, error) {
	f.earningsCalls++
	return []finnhub.EarningsEntry{{Symbol: "NVDA", Date: "2026-09-02"}}, nil
}

func TestRefreshOnceIsOneShot(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src, 0, logger.New("error"))

	svc.RefreshOnce(context.Background(), []string{"AAPL", "NVDA"})
	svc.RefreshOnce(context.Background(), []string{"AAPL", "NVDA"})

	if src.newsCalls != 2 {
		t.Fatalf("expected one fetch per ticker for the whole session, got %d calls", src.newsCalls)
	}
	if src.earningsCalls != 1 {
		t.Fatalf("expected one earnings fetch per session, got %d", src.earningsCalls)
	}

	if items := svc.News("AAPL"); len(items) != 1 || items[0].Headline != "AAPL update" {
		t.Fatalf("unexpected news: %+v", items)
	}
	if entries := svc.Earnings(); len(entries) != 1 || entries[0].Symbol != "NVDA" {
		t.Fatalf("unexpected earnings: %+v", entries)
	}
}

func TestRefreshOnceSkipsFailedTickers(t *testing.T) {
	src := &fakeSource{failFor: map[string]bool{"BAD": true}}
	svc := NewService(src, 0, logger.New("error"))

	svc.RefreshOnce(context.Background(), []string{"BAD", "GOOD"})

	if items := svc.News("BAD"); items != nil {
		t.Fatalf("failed ticker must have no cached news, got %+v", items)
	}
	if items := svc.News("GOOD"); len(items) != 1 {
		t.Fatalf("healthy ticker must still be fetched, got %+v", items)
	}
	if svc.Earnings() == nil {
		t.Fatalf("per-symbol failure must not block the earnings calendar")
	}
}
