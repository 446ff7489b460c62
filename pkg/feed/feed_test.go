package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOddsClientEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v4/sports/icehockey_nhl/odds" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("apiKey"); got != "test-key" {
			t.Errorf("apiKey = %q", got)
		}
		fmt.Fprint(w, `[
			{
				"event_name": "NYR @ TOR",
				"commence_time": "2025-01-10T19:00:00Z",
				"home_team": "tor",
				"away_team": "nyr",
				"bookmakers": [
					{"key": "pinnacle", "title": "Pinnacle", "markets": [
						{"key": "h2h", "outcomes": [
							{"name": "tor", "price": 1.91},
							{"name": "nyr", "price": 2.02}
						]}
					]}
				]
			}
		]`)
	}))
	defer srv.Close()

	client := NewOddsClient("test-key", WithOddsBaseURL(srv.URL))
	rows, err := client.Events(context.Background(), "icehockey_nhl")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}

	row := rows[0]
	if row.HomeTeam != "tor" || row.AwayTeam != "nyr" {
		t.Errorf("teams = %q/%q", row.HomeTeam, row.AwayTeam)
	}
	if !row.CommenceTime.Equal(time.Date(2025, 1, 10, 19, 0, 0, 0, time.UTC)) {
		t.Errorf("commence = %v", row.CommenceTime)
	}
	price := row.Bookmakers[0].Markets[0].Outcomes[0].Price
	if !price.Equal(decimal.NewFromFloat(1.91)) {
		t.Errorf("price = %v", price)
	}
}

func TestOddsClientEventsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewOddsClient("bad-key", WithOddsBaseURL(srv.URL))
	if _, err := client.Events(context.Background(), "icehockey_nhl"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestPolyClientMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("tag"); got != "NHL" {
			t.Errorf("tag = %q", got)
		}
		fmt.Fprint(w, `[
			{"id": "1", "question": "Rangers vs. Maple Leafs", "slug": "nhl-nyr-tor",
			 "gameStartTime": "2025-01-10T19:00:00Z", "closed": false}
		]`)
	}))
	defer srv.Close()

	client := NewPolyClient(WithPolyBaseURL(srv.URL))
	markets, err := client.Markets(context.Background(), "NHL", 10)
	if err != nil {
		t.Fatalf("Markets: %v", err)
	}
	if len(markets) != 1 || markets[0].Question != "Rangers vs. Maple Leafs" {
		t.Fatalf("markets = %+v", markets)
	}

	date, placeholder := markets[0].EventDate()
	if date == nil || placeholder {
		t.Errorf("EventDate = (%v, %v), want real start time", date, placeholder)
	}
}

func TestPolyMarketEventDate(t *testing.T) {
	start := time.Date(2025, 1, 10, 19, 30, 0, 0, time.UTC)
	end := time.Date(2025, 1, 11, 23, 59, 59, 0, time.UTC)

	m := PolyMarket{GameStartTime: &start}
	if date, placeholder := m.EventDate(); date == nil || placeholder {
		t.Errorf("real start time misclassified: (%v, %v)", date, placeholder)
	}

	m = PolyMarket{EndDate: &end}
	if date, placeholder := m.EventDate(); date == nil || !placeholder {
		t.Errorf("end-date fallback must be a placeholder: (%v, %v)", date, placeholder)
	}

	m = PolyMarket{}
	if date, _ := m.EventDate(); date != nil {
		t.Errorf("no dates should yield nil, got %v", date)
	}
}

func TestIsPlaceholderTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"midnight", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), true},
		{"noon", time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC), true},
		{"end of day", time.Date(2025, 1, 10, 23, 59, 59, 0, time.UTC), true},
		{"end of day no seconds", time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC), true},
		{"real start", time.Date(2025, 1, 10, 19, 30, 0, 0, time.UTC), false},
		{"just past midnight", time.Date(2025, 1, 10, 0, 5, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlaceholderTime(tt.t); got != tt.want {
				t.Errorf("IsPlaceholderTime(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}
