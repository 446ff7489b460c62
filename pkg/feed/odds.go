// Package feed supplies the matcher's inputs: bookmaker event rows from
// an odds API, prediction-market titles and dates from Polymarket, and a
// live odds stream. Row fetching is the only place network timeouts
// live; the matching engine itself never does I/O.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/favron1/ev-ace-advisor/pkg/match"
	"github.com/favron1/ev-ace-advisor/pkg/sports"
)

const (
	// DefaultOddsBaseURL is The Odds API base URL.
	DefaultOddsBaseURL = "https://api.the-odds-api.com"

	defaultOddsRateLimit = 2.0 // requests per second
	defaultOddsBurst     = 2
)

// OddsClient fetches bookmaker event rows per sport.
type OddsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// OddsOption configures the client.
type OddsOption func(*OddsClient)

// WithOddsBaseURL sets a custom base URL.
func WithOddsBaseURL(url string) OddsOption {
	return func(c *OddsClient) { c.baseURL = url }
}

// WithOddsHTTPClient sets a custom HTTP client.
func WithOddsHTTPClient(client *http.Client) OddsOption {
	return func(c *OddsClient) { c.httpClient = client }
}

// WithOddsRateLimit sets custom rate limiting.
func WithOddsRateLimit(rps float64, burst int) OddsOption {
	return func(c *OddsClient) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewOddsClient creates an odds client.
func NewOddsClient(apiKey string, opts ...OddsOption) *OddsClient {
	c := &OddsClient{
		baseURL: DefaultOddsBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(defaultOddsRateLimit), defaultOddsBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Events fetches the current event rows for one API sport key.
func (c *OddsClient) Events(ctx context.Context, sportKey string) ([]match.BookEvent, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{
		"apiKey":     {c.apiKey},
		"regions":    {"us"},
		"markets":    {"h2h"},
		"oddsFormat": {"decimal"},
	}
	u := fmt.Sprintf("%s/v4/sports/%s/odds?%s", c.baseURL, url.PathEscape(sportKey), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching odds for %s: %w", sportKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds API returned %d for %s", resp.StatusCode, sportKey)
	}

	var rows []match.BookEvent
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding odds rows: %w", err)
	}
	return rows, nil
}

// EventsForSport fetches and concatenates rows across all of a sport's
// API keys (some providers split a sport over several).
func (c *OddsClient) EventsForSport(ctx context.Context, cfg sports.Config) ([]match.BookEvent, error) {
	var all []match.BookEvent
	for _, key := range cfg.APISportKeys {
		rows, err := c.Events(ctx, key)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}
	return all, nil
}
