package match

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/favron1/ev-ace-advisor/pkg/normalize"
)

// BookEvent is one bookmaker event row as supplied by the odds feed.
// The three resolved fields are attached by the indexer; a row inside an
// index always carries them.
type BookEvent struct {
	EventName    string      `json:"event_name"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`

	HomeTeamResolved string `json:"home_team_resolved,omitempty"`
	AwayTeamResolved string `json:"away_team_resolved,omitempty"`
	TeamSetKey       string `json:"team_set_key,omitempty"`
}

// Bookmaker is one book's prices for an event.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market is one market (h2h, spreads, totals) from a bookmaker.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one priced outcome.
type Outcome struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Point decimal.Decimal `json:"point,omitempty"`
}

// BookIndex maps "{League}|{teamSetKey}" to the rows sharing that key.
// Buckets are lists: doubleheaders and near-duplicate feeds legitimately
// collide. An index is built once per polling cycle and read-only after.
type BookIndex map[string][]*BookEvent

// IndexStats summarizes one indexing pass.
type IndexStats struct {
	TotalRows   int      `json:"total_rows"`
	Indexed     int      `json:"indexed"`
	Failed      int      `json:"failed"`
	FailedTeams []string `json:"failed_teams"`
}

// maxSampledFailures caps the unresolved-name sample in diagnostics.
const maxSampledFailures = 5

// Indexer builds bookmaker indexes for one resolver.
type Indexer struct {
	resolver *Resolver
}

// NewIndexer creates an indexer sharing a resolver.
func NewIndexer(resolver *Resolver) *Indexer {
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	return &Indexer{resolver: resolver}
}

// Index resolves both teams of every row and buckets the rows by
// canonical key. Rows with a missing or unresolvable team are dropped
// whole: a half-resolved key can never be looked up deterministically.
// Emits a [BOOK-INDEX] diagnostic line with counts and a sample of
// unresolved names; external tooling alerts on those lines.
func (ix *Indexer) Index(rows []BookEvent, sportCode string, teamMap, userMappings map[string]string) (BookIndex, IndexStats) {
	index := make(BookIndex)
	stats := ix.build(rows, sportCode, teamMap, userMappings, index)

	league := ix.leagueName(sportCode)
	log.Printf("[BOOK-INDEX] %s: indexed %d/%d rows (%d failed)",
		league, stats.Indexed, stats.TotalRows, stats.Failed)
	if len(stats.FailedTeams) > 0 {
		sample := stats.FailedTeams
		if len(sample) > maxSampledFailures {
			sample = sample[:maxSampledFailures]
		}
		log.Printf("[BOOK-INDEX] %s: unresolved teams (sample): %s",
			league, strings.Join(sample, ", "))
	}

	return index, stats
}

// Stats runs the same resolution pass without building an index.
// Health-check tooling uses it to watch feed quality. Callers must pass
// the same userMappings they index with or the counts diverge from the
// index they describe.
func (ix *Indexer) Stats(rows []BookEvent, sportCode string, teamMap, userMappings map[string]string) IndexStats {
	return ix.build(rows, sportCode, teamMap, userMappings, nil)
}

// build performs one resolution pass. When index is non-nil, successful
// rows are copied, enriched, and appended to their bucket.
func (ix *Indexer) build(rows []BookEvent, sportCode string, teamMap, userMappings map[string]string, index BookIndex) IndexStats {
	stats := IndexStats{TotalRows: len(rows)}
	league := ix.leagueName(sportCode)
	failedSet := make(map[string]struct{})

	for i := range rows {
		row := rows[i]
		if row.HomeTeam == "" || row.AwayTeam == "" {
			stats.Failed++
			continue
		}

		homeFull, homeOK := ix.resolver.Resolve(row.HomeTeam, sportCode, teamMap, userMappings)
		awayFull, awayOK := ix.resolver.Resolve(row.AwayTeam, sportCode, teamMap, userMappings)
		if !homeOK || !awayOK {
			stats.Failed++
			if !homeOK {
				failedSet[row.HomeTeam] = struct{}{}
			}
			if !awayOK {
				failedSet[row.AwayTeam] = struct{}{}
			}
			continue
		}

		stats.Indexed++
		if index == nil {
			continue
		}

		enriched := row // copy, never mutate the caller's slice
		enriched.HomeTeamResolved = homeFull
		enriched.AwayTeamResolved = awayFull
		enriched.TeamSetKey = normalize.TeamSetKey(normalize.Slugify(homeFull), normalize.Slugify(awayFull))

		key := league + "|" + enriched.TeamSetKey
		index[key] = append(index[key], &enriched)
	}

	stats.FailedTeams = make([]string, 0, len(failedSet))
	for name := range failedSet {
		stats.FailedTeams = append(stats.FailedTeams, name)
	}
	sort.Strings(stats.FailedTeams)

	return stats
}

// leagueName returns the display name used in index keys.
func (ix *Indexer) leagueName(sportCode string) string {
	if cfg, ok := ix.resolver.Configs().Get(sportCode); ok {
		return cfg.Name
	}
	return strings.ToUpper(sportCode)
}
