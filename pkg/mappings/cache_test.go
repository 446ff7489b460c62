package mappings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeStore struct {
	rows    map[string][]Row
	err     error
	fetches int
}

func (s *fakeStore) Fetch(_ context.Context, sportCode string) ([]Row, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[sportCode], nil
}

func (s *fakeStore) FetchAll(_ context.Context) ([]Row, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	var all []Row
	for _, rows := range s.rows {
		all = append(all, rows...)
	}
	return all, nil
}

func newTestCache(store Store, clock Clock) *Cache {
	return NewCache(store, WithClock(clock))
}

func TestCacheGetNormalizesKeys(t *testing.T) {
	store := &fakeStore{rows: map[string][]Row{
		"nhl": {{SourceName: "N.Y. Rangers!", CanonicalName: "New York Rangers", SportCode: "nhl"}},
	}}
	cache := newTestCache(store, &fakeClock{now: time.Now()})

	m := cache.Get(context.Background(), "nhl")
	if got := m["ny rangers"]; got != "New York Rangers" {
		t.Errorf("normalized key lookup = %q, want %q", got, "New York Rangers")
	}
}

func TestCacheTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	store := &fakeStore{rows: map[string][]Row{
		"nhl": {{SourceName: "Habs", CanonicalName: "Montreal Canadiens", SportCode: "nhl"}},
	}}
	cache := newTestCache(store, clock)

	cache.Get(context.Background(), "nhl")
	cache.Get(context.Background(), "nhl")
	if store.fetches != 1 {
		t.Fatalf("fresh entry refetched: %d fetches", store.fetches)
	}

	clock.advance(DefaultTTL - time.Second)
	cache.Get(context.Background(), "nhl")
	if store.fetches != 1 {
		t.Fatalf("entry refetched before TTL expiry: %d fetches", store.fetches)
	}

	clock.advance(2 * time.Second)
	cache.Get(context.Background(), "nhl")
	if store.fetches != 2 {
		t.Fatalf("stale entry not refetched: %d fetches", store.fetches)
	}
}

func TestCacheFallsBackToLastGood(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	store := &fakeStore{rows: map[string][]Row{
		"nhl": {{SourceName: "Leafs", CanonicalName: "Toronto Maple Leafs", SportCode: "nhl"}},
	}}
	cache := newTestCache(store, clock)

	first := cache.Get(context.Background(), "nhl")
	if first["leafs"] != "Toronto Maple Leafs" {
		t.Fatalf("seed fetch failed: %v", first)
	}

	store.err = errors.New("store down")
	clock.advance(DefaultTTL + time.Minute)

	m := cache.Get(context.Background(), "nhl")
	if m["leafs"] != "Toronto Maple Leafs" {
		t.Errorf("failed refresh must return last good map, got %v", m)
	}

	// A sport that has never been fetched falls back to empty, not nil panic.
	empty := cache.Get(context.Background(), "nba")
	if len(empty) != 0 {
		t.Errorf("expected empty map for never-fetched sport, got %v", empty)
	}
}

func TestCacheClear(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	store := &fakeStore{rows: map[string][]Row{"nhl": nil}}
	cache := newTestCache(store, clock)

	cache.Get(context.Background(), "nhl")
	cache.Clear()
	cache.Get(context.Background(), "nhl")
	if store.fetches != 2 {
		t.Errorf("Clear did not drop cached entries: %d fetches", store.fetches)
	}
}

func TestCacheGetAll(t *testing.T) {
	store := &fakeStore{rows: map[string][]Row{
		"nhl": {{SourceName: "NY Rangers", CanonicalName: "New York Rangers", SportCode: "nhl"}},
		"nba": {{SourceName: "LA Lakers", CanonicalName: "Los Angeles Lakers", SportCode: "nba"}},
	}}
	cache := newTestCache(store, &fakeClock{now: time.Now()})

	all := cache.GetAll(context.Background())
	if all["nhl|ny rangers"] != "New York Rangers" {
		t.Errorf("missing composite key: %v", all)
	}
	if all["nba|la lakers"] != "Los Angeles Lakers" {
		t.Errorf("missing composite key: %v", all)
	}

	store.err = errors.New("store down")
	if got := cache.GetAll(context.Background()); len(got) != 0 {
		t.Errorf("GetAll failure must return empty map, got %v", got)
	}
}

func TestHTTPStoreFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sport_code"); got != "nhl" {
			t.Errorf("sport_code = %q, want nhl", got)
		}
		fmt.Fprint(w, `[{"source_name":"Leafs","canonical_name":"Toronto Maple Leafs","sport_code":"nhl"}]`)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL)
	rows, err := store.Fetch(context.Background(), "nhl")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(rows) != 1 || rows[0].CanonicalName != "Toronto Maple Leafs" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestHTTPStoreFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL)
	if _, err := store.Fetch(context.Background(), "nhl"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
