// matchd is the event-matching daemon. It polls bookmaker odds and
// Polymarket markets per sport, builds a canonical bookmaker index each
// cycle, matches markets against it, and serves match results, index
// stats, and Prometheus metrics over HTTP.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/favron1/ev-ace-advisor/pkg/feed"
	"github.com/favron1/ev-ace-advisor/pkg/mappings"
	"github.com/favron1/ev-ace-advisor/pkg/match"
	"github.com/favron1/ev-ace-advisor/pkg/metrics"
	"github.com/favron1/ev-ace-advisor/pkg/sports"
)

var (
	httpAddr     = flag.String("http", ":8090", "HTTP server address for status API")
	interval     = flag.Duration("interval", 2*time.Minute, "Polling cycle interval")
	sportsFlag   = flag.String("sports", "nhl,nba,nfl,mlb", "Comma-separated sport codes to poll")
	sportsConfig = flag.String("sports-config", "", "Optional YAML sport-config override file")
	oddsURL      = flag.String("odds-url", feed.DefaultOddsBaseURL, "Odds API base URL")
	oddsKey      = flag.String("odds-key", "", "Odds API key (or ODDS_API_KEY env)")
	polyURL      = flag.String("poly-url", feed.DefaultPolyBaseURL, "Polymarket Gamma base URL")
	mappingsURL  = flag.String("mappings-url", "", "Mapping store HTTP base URL")
	mappingsDSN  = flag.String("mappings-dsn", "", "Mapping store PostgreSQL DSN (overrides -mappings-url)")
	streamURL    = flag.String("stream-url", "", "Optional live odds WebSocket URL")
	marketLimit  = flag.Int("market-limit", 100, "Max markets fetched per sport per cycle")
	verbose      = flag.Bool("verbose", false, "Verbose logging")
)

func main() {
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("Starting event-matching daemon")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	d, err := newDaemon()
	if err != nil {
		log.Fatalf("Failed to initialize daemon: %v", err)
	}

	if d.stream != nil {
		go d.stream.Run(ctx)
	}
	go d.startHTTP()
	go d.run(ctx)

	log.Printf("Daemon running (sports=%s, interval=%s, http=%s)", *sportsFlag, *interval, *httpAddr)

	<-sigCh
	log.Println("Shutting down...")
	cancel()
	if d.stream != nil {
		d.stream.Close()
	}
}

// sportStatus is the latest per-sport cycle outcome served by the API.
type sportStatus struct {
	Sport      string           `json:"sport"`
	CycleID    string           `json:"cycle_id"`
	UpdatedAt  time.Time        `json:"updated_at"`
	IndexStats match.IndexStats `json:"index_stats"`
	Matches    []matchSummary   `json:"matches"`
	Quality    map[string]int   `json:"failures_by_reason"`
}

type matchSummary struct {
	Question      string `json:"question"`
	Matched       bool   `json:"matched"`
	Method        string `json:"method,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
	EventName     string `json:"event_name,omitempty"`
}

type daemon struct {
	configs sports.Configs
	indexer *match.Indexer
	matcher *match.Matcher
	cache   *mappings.Cache
	odds    *feed.OddsClient
	poly    *feed.PolyClient
	stream  *feed.Stream
	metrics *metrics.MatchMetrics

	sportCodes []string

	mu       sync.RWMutex
	statuses map[string]*sportStatus
}

func newDaemon() (*daemon, error) {
	configs := sports.DefaultConfigs()
	if *sportsConfig != "" {
		if err := configs.LoadOverrides(*sportsConfig); err != nil {
			return nil, err
		}
	}

	resolver := match.NewResolver(configs)

	apiKey := *oddsKey
	if apiKey == "" {
		apiKey = os.Getenv("ODDS_API_KEY")
	}

	d := &daemon{
		configs:  configs,
		indexer:  match.NewIndexer(resolver),
		matcher:  match.NewMatcher(resolver),
		odds:     feed.NewOddsClient(apiKey, feed.WithOddsBaseURL(*oddsURL)),
		poly:     feed.NewPolyClient(feed.WithPolyBaseURL(*polyURL)),
		metrics:  metrics.NewMatchMetrics(),
		statuses: make(map[string]*sportStatus),
	}

	for _, code := range strings.Split(*sportsFlag, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if _, ok := configs.Get(code); !ok {
			log.Printf("[CYCLE] ignoring unknown sport code %q", code)
			continue
		}
		d.sportCodes = append(d.sportCodes, code)
	}

	switch {
	case *mappingsDSN != "":
		store, err := mappings.NewPGStore(*mappingsDSN)
		if err != nil {
			return nil, err
		}
		d.cache = mappings.NewCache(store)
	case *mappingsURL != "":
		d.cache = mappings.NewCache(mappings.NewHTTPStore(*mappingsURL))
	}

	if *streamURL != "" {
		d.stream = feed.NewStream(feed.DefaultStreamConfig(*streamURL))
	}

	return d, nil
}

// run executes polling cycles until ctx is done.
func (d *daemon) run(ctx context.Context) {
	d.cycle(ctx)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.cycle(ctx)
		}
	}
}

// cycle runs one index-and-match pass across all configured sports.
func (d *daemon) cycle(ctx context.Context) {
	streamed := d.drainStream()
	for _, code := range d.sportCodes {
		d.cycleSport(ctx, code, streamed[code])
	}
}

// drainStream empties the live-update buffer and buckets rows by
// detected sport so pushes between cycles join the next fetch.
func (d *daemon) drainStream() map[string][]match.BookEvent {
	if d.stream == nil {
		return nil
	}
	rows := make(map[string][]match.BookEvent)
	for {
		select {
		case row := <-d.stream.Events():
			code, ok := d.configs.DetectSport(row.EventName + " " + row.HomeTeam + " " + row.AwayTeam)
			if !ok {
				continue
			}
			rows[code] = append(rows[code], row)
		default:
			return rows
		}
	}
}

func (d *daemon) cycleSport(ctx context.Context, code string, streamed []match.BookEvent) {
	start := time.Now()
	cycleID := uuid.NewString()[:8]
	cfg, _ := d.configs.Get(code)

	rows, err := d.odds.EventsForSport(ctx, cfg)
	if err != nil {
		log.Printf("[CYCLE] %s %s: odds fetch failed: %v", cycleID, code, err)
		return
	}
	rows = append(rows, streamed...)

	var userMappings map[string]string
	if d.cache != nil {
		userMappings = d.cache.Get(ctx, code)
	}

	index, stats := d.indexer.Index(rows, code, nil, userMappings)
	d.metrics.RecordIndex(code, stats, len(index))

	markets, err := d.poly.Markets(ctx, cfg.Name, *marketLimit)
	if err != nil {
		log.Printf("[CYCLE] %s %s: market fetch failed: %v", cycleID, code, err)
		return
	}

	status := &sportStatus{
		Sport:      code,
		CycleID:    cycleID,
		UpdatedAt:  time.Now(),
		IndexStats: stats,
		Quality:    make(map[string]int),
	}

	for _, market := range markets {
		date, placeholder := market.EventDate()
		res := d.matcher.MatchEventName(index, cfg.Name, market.Question, date, placeholder, userMappings)
		if res.Matched() && !match.ValidateMatchedTeams(market.Question, res.Match) {
			// Key collision slipped through; treat as a miss.
			res = match.MatchResult{
				FailureReason: match.FailureNoBookGameFound,
				Debug:         res.Debug,
			}
		}
		d.metrics.RecordMatch(code, res)

		summary := matchSummary{Question: market.Question, Matched: res.Matched()}
		if res.Matched() {
			summary.Method = res.Method
			summary.EventName = res.Match.EventName
			if *verbose {
				log.Printf("[POLY-MATCH] %s %s: %q -> %q (%s, %.1fh)",
					cycleID, code, market.Question, res.Match.EventName, res.Method, res.Debug.TimeDiffHours)
			}
		} else {
			summary.FailureReason = res.FailureReason
			status.Quality[res.FailureReason]++
			if *verbose {
				log.Printf("[POLY-MATCH] %s %s: %q unmatched (%s)",
					cycleID, code, market.Question, res.FailureReason)
			}
		}
		status.Matches = append(status.Matches, summary)
	}

	d.mu.Lock()
	d.statuses[code] = status
	d.mu.Unlock()

	d.metrics.CycleDuration.WithLabelValues(code).Observe(time.Since(start).Seconds())
	log.Printf("[CYCLE] %s %s: %d rows, %d markets, %d matched (%.0fms)",
		cycleID, code, len(rows), len(markets), matchedCount(status.Matches),
		float64(time.Since(start).Microseconds())/1000)
}

func matchedCount(summaries []matchSummary) int {
	n := 0
	for _, s := range summaries {
		if s.Matched {
			n++
		}
	}
	return n
}

// startHTTP serves the status API and Prometheus metrics.
func (d *daemon) startHTTP() {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", d.handleHealth).Methods("GET")
	api.HandleFunc("/stats", d.handleStats).Methods("GET")
	api.HandleFunc("/matches/{sport}", d.handleMatches).Methods("GET")

	router.Handle("/metrics", d.metrics.Handler())

	handler := cors.Default().Handler(router)
	if err := http.ListenAndServe(*httpAddr, handler); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}

func (d *daemon) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"status": "ok",
		"sports": d.sportCodes,
	})
}

func (d *daemon) handleStats(w http.ResponseWriter, _ *http.Request) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]match.IndexStats, len(d.statuses))
	for code, st := range d.statuses {
		out[code] = st.IndexStats
	}
	writeJSON(w, out)
}

func (d *daemon) handleMatches(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["sport"]

	d.mu.RLock()
	status, ok := d.statuses[code]
	d.mu.RUnlock()

	if !ok {
		http.Error(w, "no cycle completed for sport", http.StatusNotFound)
		return
	}
	writeJSON(w, status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] encoding response: %v", err)
	}
}
