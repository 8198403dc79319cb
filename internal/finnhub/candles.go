package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// CandleSeries holds daily closes, oldest first.
type CandleSeries struct {
	Timestamps []int64
	Closes     []float64
}

type candleResponse struct {
	Status     string    `json:"s"`
	Timestamps []int64   `json:"t"`
	Closes     []float64 `json:"c"`
}

const candleRetryBackoff = 2 * time.Second

// GetCandles fetches daily closes between from and to. A 429 gets exactly one
// retry after a fixed backoff; a second failure means no data for this request.
func (c *Client) GetCandles(ctx context.Context, symbol string, from, to time.Time) (CandleSeries, error) {
	endpoint := fmt.Sprintf("%s/candle?symbol=%s&resolution=D&from=%d&to=%d&token=%s",
		c.baseURL, url.QueryEscape(symbol), from.Unix(), to.Unix(), url.QueryEscape(c.token))

	var payload candleResponse
	err := c.get(ctx, endpoint, &payload)
	if IsRateLimited(err) {
		select {
		case <-ctx.Done():
			return CandleSeries{}, ctx.Err()
		case <-time.After(candleRetryBackoff):
		}
		err = c.get(ctx, endpoint, &payload)
	}
	if err != nil {
		return CandleSeries{}, fmt.Errorf("candles %s: %w", symbol, err)
	}

	if payload.Status != "ok" || len(payload.Closes) == 0 {
		return CandleSeries{}, fmt.Errorf("candles %s: %w", symbol, ErrNoData)
	}

	return CandleSeries{Timestamps: payload.Timestamps, Closes: payload.Closes}, nil
}
