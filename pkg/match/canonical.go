package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/favron1/ev-ace-advisor/pkg/normalize"
)

// CanonicalEvent is the canonical identity of one matchup. TeamAID is
// always the lexicographically smaller slug, so the record is identical
// no matter which side either source calls "home".
type CanonicalEvent struct {
	League     string `json:"league"`
	TeamAID    string `json:"teamAId"`
	TeamBID    string `json:"teamBId"`
	TeamSetKey string `json:"teamSetKey"`
	TeamAFull  string `json:"teamAFull"`
	TeamBFull  string `json:"teamBFull"`
}

// separatorPattern splits "X vs Y", "X vs. Y", "X v Y", "X v. Y", "X @ Y".
var separatorPattern = regexp.MustCompile(`(?i)\s+(?:vs\.?|v\.?|@)\s+`)

// SplitTeams parses an event title into its two team strings. A trailing
// " - suffix" ("… - Game 7") is discarded first. Returns ok=false when
// the title does not contain a recognized separator; callers must treat
// that as a hard failure rather than trying further heuristics.
func SplitTeams(title string) (a, b string, ok bool) {
	title = strings.TrimSpace(title)
	if idx := strings.Index(title, " - "); idx > 0 {
		title = title[:idx]
	}

	parts := separatorPattern.Split(title, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	a = strings.TrimSpace(parts[0])
	b = strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

// Canonicalizer combines resolved team names into canonical events.
type Canonicalizer struct {
	resolver *Resolver
}

// NewCanonicalizer creates a canonicalizer sharing a resolver.
func NewCanonicalizer(resolver *Resolver) *Canonicalizer {
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	return &Canonicalizer{resolver: resolver}
}

// Canonicalize resolves both raw names for the league and returns the
// canonical event, or nil when the league is unknown or either name
// fails to resolve. Partially resolved matchups are never canonical.
func (c *Canonicalizer) Canonicalize(league, team1Raw, team2Raw string, teamMap map[string]string) *CanonicalEvent {
	sportCode, ok := c.resolver.Configs().SportCodeForLeague(league)
	if !ok {
		return nil
	}

	full1, ok := c.resolver.Resolve(team1Raw, sportCode, teamMap, nil)
	if !ok {
		return nil
	}
	full2, ok := c.resolver.Resolve(team2Raw, sportCode, teamMap, nil)
	if !ok {
		return nil
	}

	id1 := normalize.Slugify(full1)
	id2 := normalize.Slugify(full2)
	if id1 > id2 {
		id1, id2 = id2, id1
		full1, full2 = full2, full1
	}

	return &CanonicalEvent{
		League:     league,
		TeamAID:    id1,
		TeamBID:    id2,
		TeamSetKey: normalize.TeamSetKey(id1, id2),
		TeamAFull:  full1,
		TeamBFull:  full2,
	}
}

// BuildResolutionMap flattens a team map into a single alias -> official
// lookup table (abbreviations, normalized full names, nicknames, cities).
// It is an optimization for batch consumers; the tiered Resolve remains
// the source of truth, and on alias collisions the first official name
// in sorted order keeps the slot.
func BuildResolutionMap(teamMap map[string]string) map[string]string {
	out := make(map[string]string, len(teamMap)*4)

	put := func(alias, official string) {
		if alias == "" {
			return
		}
		if _, taken := out[alias]; !taken {
			out[alias] = official
		}
	}

	for _, c := range candidatesFor(teamMap) {
		put(c.norm, c.official)
		put(c.nickname, c.official)
		put(c.city, c.official)
	}

	abbrs := make([]string, 0, len(teamMap))
	for abbr := range teamMap {
		abbrs = append(abbrs, abbr)
	}
	sort.Strings(abbrs)
	for _, abbr := range abbrs {
		put(strings.ToLower(abbr), teamMap[abbr])
	}

	return out
}
