package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/camuig/foliowatch/internal/config"
	"github.com/camuig/foliowatch/internal/logger"
)

// ErrNoData marks symbols the provider knows nothing about. A zero price in
// the quote payload means exactly this, never a literal zero price.
var ErrNoData = errors.New("finnhub: no data for symbol")

var errRateLimited = errors.New("finnhub: rate limited")

// IsRateLimited reports whether err was an HTTP 429 from the provider.
func IsRateLimited(err error) bool {
	return errors.Is(err, errRateLimited)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *logger.Logger
}

func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.FinnhubTimeout()},
		baseURL:    cfg.Finnhub.BaseURL,
		token:      cfg.Finnhub.Token,
		logger:     log,
	}
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return errRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("finnhub returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func day(t time.Time) string {
	return t.Format("2006-01-02")
}
