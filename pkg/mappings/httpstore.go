package mappings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRateLimit = 5.0 // requests per second
	defaultBurst     = 2
)

// HTTPStore reads corrections from the dashboard's mapping endpoint.
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// HTTPStoreOption configures the store.
type HTTPStoreOption func(*HTTPStore)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPStoreOption {
	return func(s *HTTPStore) { s.httpClient = client }
}

// WithRateLimit sets custom rate limiting.
func WithRateLimit(rps float64, burst int) HTTPStoreOption {
	return func(s *HTTPStore) { s.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewHTTPStore creates a store reading from baseURL + "/mappings".
func NewHTTPStore(baseURL string, opts ...HTTPStoreOption) *HTTPStore {
	s := &HTTPStore{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements Store.
func (s *HTTPStore) Fetch(ctx context.Context, sportCode string) ([]Row, error) {
	return s.get(ctx, url.Values{"sport_code": {sportCode}})
}

// FetchAll implements Store.
func (s *HTTPStore) FetchAll(ctx context.Context) ([]Row, error) {
	return s.get(ctx, nil)
}

func (s *HTTPStore) get(ctx context.Context, params url.Values) ([]Row, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := s.baseURL + "/mappings"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching mappings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mappings endpoint returned %d", resp.StatusCode)
	}

	var rows []Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding mappings: %w", err)
	}
	return rows, nil
}
