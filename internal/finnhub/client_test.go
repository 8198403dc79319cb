package finnhub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/camuig/foliowatch/internal/config"
	"github.com/camuig/foliowatch/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.Finnhub.BaseURL = srv.URL
	cfg.Finnhub.Token = "test-token"
	return NewClient(cfg, logger.New("error")), srv
}

func TestGetQuote(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("unexpected symbol %q", got)
		}
		if got := r.URL.Query().Get("token"); got != "test-token" {
			t.Errorf("unexpected token %q", got)
		}
		w.Write([]byte(`{"c":200.5,"d":2.5,"dp":1.26}`))
	})

	q, err := c.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("get quote: %v", err)
	}
	if q.Current != 200.5 || q.Change != 2.5 || q.ChangePct != 1.26 {
		t.Fatalf("unexpected quote: %+v", q)
	}
}

func TestGetQuoteZeroPriceIsNoData(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"c":0,"d":0,"dp":0}`))
	})

	if _, err := c.GetQuote(context.Background(), "VTSAX"); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for zero price, got %v", err)
	}
}

func TestGetQuoteMissingPriceIsNoData(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"d":1,"dp":0.5}`))
	})

	if _, err := c.GetQuote(context.Background(), "KRKNF"); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for missing price, got %v", err)
	}
}

func TestGetQuoteRateLimited(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.GetQuote(context.Background(), "AAPL")
	if !IsRateLimited(err) {
		t.Fatalf("expected rate-limited error, got %v", err)
	}
}

func TestGetCandles(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("resolution"); got != "D" {
			t.Errorf("unexpected resolution %q", got)
		}
		w.Write([]byte(`{"s":"ok","t":[1756000000,1756086400],"c":[100.5,102.25]}`))
	})

	series, err := c.GetCandles(context.Background(), "AAPL", time.Now().AddDate(0, 0, -35), time.Now())
	if err != nil {
		t.Fatalf("get candles: %v", err)
	}
	if len(series.Closes) != 2 || series.Closes[1] != 102.25 {
		t.Fatalf("unexpected series: %+v", series)
	}
}

func TestGetCandlesNoData(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"s":"no_data"}`))
	})

	if _, err := c.GetCandles(context.Background(), "KRKNF", time.Now().AddDate(0, 0, -35), time.Now()); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestGetCandlesRetriesOnceAfterRateLimit(t *testing.T) {
	var calls int
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"s":"ok","t":[1756000000],"c":[99.9]}`))
	})

	series, err := c.GetCandles(context.Background(), "AAPL", time.Now().AddDate(0, 0, -35), time.Now())
	if err != nil {
		t.Fatalf("get candles after retry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", calls)
	}
	if len(series.Closes) != 1 || series.Closes[0] != 99.9 {
		t.Fatalf("unexpected series: %+v", series)
	}
}

func TestGetCandlesRetryRespectsContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.GetCandles(ctx, "AAPL", time.Now().AddDate(0, 0, -35), time.Now())
	if err == nil {
		t.Fatalf("expected error")
	}
	if elapsed := time.Since(start); elapsed >= candleRetryBackoff {
		t.Fatalf("retry backoff must honor context cancellation, waited %v", elapsed)
	}
}

func TestCompanyNews(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "RKLB" {
			t.Errorf("unexpected symbol %q", got)
		}
		w.Write([]byte(`[{"headline":"Launch scheduled","source":"Wire","datetime":1756000000,"url":"https://example.com/a"}]`))
	})

	items, err := c.CompanyNews(context.Background(), "RKLB", time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatalf("company news: %v", err)
	}
	if len(items) != 1 || items[0].Headline != "Launch scheduled" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestEarningsCalendar(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"earningsCalendar":[{"symbol":"NVDA","date":"2026-09-02","hour":"amc","epsEstimate":1.2,"revenueEstimate":4.5e10}]}`))
	})

	entries, err := c.EarningsCalendar(context.Background(), time.Now(), time.Now().AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("earnings calendar: %v", err)
	}
	if len(entries) != 1 || entries[0].Symbol != "NVDA" || entries[0].Hour != "amc" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.GetQuote(context.Background(), "AAPL"); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}
