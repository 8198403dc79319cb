package finnhub

import (
	"context"
	"fmt"
	"net/url"
)

// Quote is the provider's current view of one symbol.
type Quote struct {
	Current   float64 // c
	Change    float64 // d, absolute day change
	ChangePct float64 // dp, percent day change
}

type quoteResponse struct {
	Current   *float64 `json:"c"`
	Change    float64  `json:"d"`
	ChangePct float64  `json:"dp"`
}

// GetQuote fetches a live quote. A missing or zero "c" field is ErrNoData.
func (c *Client) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s&token=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.token))

	var payload quoteResponse
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return Quote{}, fmt.Errorf("quote %s: %w", symbol, err)
	}

	if payload.Current == nil || *payload.Current == 0 {
		return Quote{}, fmt.Errorf("quote %s: %w", symbol, ErrNoData)
	}

	return Quote{
		Current:   *payload.Current,
		Change:    payload.Change,
		ChangePct: payload.ChangePct,
	}, nil
}
