package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPolyBaseURL is the Polymarket Gamma API base URL.
const DefaultPolyBaseURL = "https://gamma-api.polymarket.com"

// PolyMarket is the slice of a Polymarket market the matcher needs: a
// free-text title and an optional event date.
type PolyMarket struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Slug          string     `json:"slug"`
	GameStartTime *time.Time `json:"gameStartTime"`
	EndDate       *time.Time `json:"endDate"`
	Closed        bool       `json:"closed"`
}

// EventDate returns the best available event date and whether it is a
// low-confidence placeholder. gameStartTime is authoritative when
// present; endDate is a market-close default, always a placeholder.
func (m PolyMarket) EventDate() (*time.Time, bool) {
	if m.GameStartTime != nil {
		return m.GameStartTime, IsPlaceholderTime(*m.GameStartTime)
	}
	if m.EndDate != nil {
		return m.EndDate, true
	}
	return nil, false
}

// IsPlaceholderTime reports whether a timestamp looks like a date-only
// default rather than a real start time: exact midnight, noon, or
// end-of-day UTC.
func IsPlaceholderTime(t time.Time) bool {
	utc := t.UTC()
	h, m, s := utc.Clock()
	switch {
	case h == 0 && m == 0 && s == 0:
		return true
	case h == 12 && m == 0 && s == 0:
		return true
	case h == 23 && m == 59:
		return true
	}
	return false
}

// PolyClient fetches sports markets from the Gamma API.
type PolyClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// PolyOption configures the client.
type PolyOption func(*PolyClient)

// WithPolyBaseURL sets a custom base URL.
func WithPolyBaseURL(url string) PolyOption {
	return func(c *PolyClient) { c.baseURL = url }
}

// WithPolyHTTPClient sets a custom HTTP client.
func WithPolyHTTPClient(client *http.Client) PolyOption {
	return func(c *PolyClient) { c.httpClient = client }
}

// NewPolyClient creates a Gamma markets client.
func NewPolyClient(opts ...PolyOption) *PolyClient {
	c := &PolyClient{
		baseURL:    DefaultPolyBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Markets fetches open markets matching a tag ("NHL", "NBA", ...).
func (c *PolyClient) Markets(ctx context.Context, tag string, limit int) ([]PolyMarket, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	if limit <= 0 {
		limit = 100
	}

	params := url.Values{
		"closed":    {"false"},
		"tag":       {tag},
		"limit":     {strconv.Itoa(limit)},
		"ascending": {"false"},
	}
	u := c.baseURL + "/markets?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching markets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gamma API returned %d", resp.StatusCode)
	}

	var markets []PolyMarket
	if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
		return nil, fmt.Errorf("decoding markets: %w", err)
	}
	return markets, nil
}
