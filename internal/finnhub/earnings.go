package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type EarningsEntry struct {
	Symbol          string  `json:"symbol"`
	Date            string  `json:"date"`
	Hour            string  `json:"hour"`
	EPSEstimate     float64 `json:"epsEstimate"`
	RevenueEstimate float64 `json:"revenueEstimate"`
}

type earningsResponse struct {
	EarningsCalendar []EarningsEntry `json:"earningsCalendar"`
}

func (c *Client) EarningsCalendar(ctx context.Context, from, to time.Time) ([]EarningsEntry, error) {
	endpoint := fmt.Sprintf("%s/calendar/earnings?from=%s&to=%s&token=%s",
		c.baseURL, day(from), day(to), url.QueryEscape(c.token))

	var payload earningsResponse
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("earnings calendar: %w", err)
	}
	return payload.EarningsCalendar, nil
}
