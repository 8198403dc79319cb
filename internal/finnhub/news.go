package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type NewsItem struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Datetime int64  `json:"datetime"` // unix seconds
	URL      string `json:"url"`
}

func (c *Client) CompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]NewsItem, error) {
	endpoint := fmt.Sprintf("%s/company-news?symbol=%s&from=%s&to=%s&token=%s",
		c.baseURL, url.QueryEscape(symbol), day(from), day(to), url.QueryEscape(c.token))

	var items []NewsItem
	if err := c.get(ctx, endpoint, &items); err != nil {
		return nil, fmt.Errorf("company news %s: %w", symbol, err)
	}
	return items, nil
}
