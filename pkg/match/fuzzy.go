package match

import (
	"math"
	"sort"
	"strings"

	"github.com/favron1/ev-ace-advisor/pkg/normalize"
	"github.com/favron1/ev-ace-advisor/pkg/sports"
)

// Fuzzy match methods, in priority order.
const (
	FuzzyMethodExact       = "exact"
	FuzzyMethodAlias       = "alias"
	FuzzyMethodPattern     = "pattern"
	FuzzyMethodLevenshtein = "levenshtein"
	FuzzyMethodNone        = "none"
)

// DefaultFuzzyThreshold is the minimum Levenshtein similarity accepted.
const DefaultFuzzyThreshold = 0.7

// FuzzyResult is the outcome of one fuzzy match attempt. Unlike the
// deterministic resolver, a miss still carries nearest-neighbor
// suggestions: this path exists to feed operator review queues.
type FuzzyResult struct {
	Input        string   `json:"input"`
	Match        string   `json:"match,omitempty"`
	Method       string   `json:"method"`
	Confidence   int      `json:"confidence"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// Matched reports whether the attempt produced a usable match.
func (r FuzzyResult) Matched() bool { return r.Match != "" }

// FuzzyMatcher is the supplementary matching path: alias tables plus
// Levenshtein distance, producing confidence scores for human triage.
type FuzzyMatcher struct {
	configs sports.Configs
	aliases map[string]map[string]string
}

// NewFuzzyMatcher creates a fuzzy matcher. Nil arguments select the
// built-in sport table and alias dictionary.
func NewFuzzyMatcher(configs sports.Configs, aliases map[string]map[string]string) *FuzzyMatcher {
	if configs == nil {
		configs = sports.DefaultConfigs()
	}
	if aliases == nil {
		aliases = teamAliases
	}
	return &FuzzyMatcher{configs: configs, aliases: aliases}
}

// Match attempts to match input against a sport's teams. threshold is
// the minimum Levenshtein similarity for the final fallback; pass <= 0
// for the default.
func (m *FuzzyMatcher) Match(input, sportCode string, threshold float64) FuzzyResult {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}

	result := FuzzyResult{Input: input, Method: FuzzyMethodNone}
	norm := normalize.Normalize(input)
	if norm == "" {
		return result
	}

	teamMap := m.configs.TeamMapFor(sportCode)

	// (a) exact against the team map, by abbreviation or full name.
	if official, ok := officialExact(norm, teamMap); ok {
		return FuzzyResult{Input: input, Match: official, Method: FuzzyMethodExact, Confidence: 100}
	}

	// (b) curated alias table.
	if r, ok := m.aliasMatch(norm, sportCode); ok {
		r.Input = input
		return r
	}

	// (c) abbreviation expansion, then (a)/(b) again on the expanded
	// form, with confidence knocked down for the extra inference.
	if expanded := expandAbbrev(norm); expanded != norm {
		if official, ok := officialExact(expanded, teamMap); ok {
			return FuzzyResult{Input: input, Match: official, Method: FuzzyMethodPattern, Confidence: 90}
		}
		if r, ok := m.aliasMatch(expanded, sportCode); ok {
			conf := r.Confidence - 10
			if conf < 75 {
				conf = 75
			}
			return FuzzyResult{Input: input, Match: r.Match, Method: FuzzyMethodPattern, Confidence: conf}
		}
	}

	// (d) Levenshtein over official names and aliases.
	return m.levenshteinMatch(input, norm, sportCode, threshold)
}

// officialExact checks a normalized input against a team map's
// abbreviation keys and normalized official names.
func officialExact(norm string, teamMap map[string]string) (string, bool) {
	if official, ok := teamMap[norm]; ok {
		return official, true
	}
	for _, c := range candidatesFor(teamMap) {
		if c.norm == norm {
			return c.official, true
		}
	}
	return "", false
}

// aliasMatch checks the alias dictionary: exact first, then substring
// containment with confidence scaled by length ratio.
func (m *FuzzyMatcher) aliasMatch(norm, sportCode string) (FuzzyResult, bool) {
	table := m.aliases[sportCode]
	if len(table) == 0 {
		return FuzzyResult{}, false
	}

	if official, ok := table[norm]; ok {
		return FuzzyResult{Match: official, Method: FuzzyMethodAlias, Confidence: 95}, true
	}

	aliasKeys := make([]string, 0, len(table))
	for alias := range table {
		aliasKeys = append(aliasKeys, alias)
	}
	sort.Strings(aliasKeys)

	for _, alias := range aliasKeys {
		if strings.Contains(norm, alias) || strings.Contains(alias, norm) {
			shorter, longer := len(norm), len(alias)
			if shorter > longer {
				shorter, longer = longer, shorter
			}
			conf := int(95 * float64(shorter) / float64(longer))
			return FuzzyResult{Match: table[alias], Method: FuzzyMethodAlias, Confidence: conf}, true
		}
	}
	return FuzzyResult{}, false
}

// expandAbbrev rewrites a leading abbreviation token ("ny rangers" ->
// "new york rangers"). Returns the input unchanged when nothing applies.
func expandAbbrev(norm string) string {
	tokens := strings.Fields(norm)
	if len(tokens) == 0 {
		return norm
	}
	for _, exp := range abbrevExpansions {
		if tokens[0] == exp.abbrev {
			return strings.TrimSpace(exp.expanded + " " + strings.Join(tokens[1:], " "))
		}
	}
	return norm
}

// scoredCandidate pairs an official name with its best similarity.
type scoredCandidate struct {
	official string
	score    float64
}

// levenshteinMatch runs the full similarity search over the union of
// official names and alias strings, keeping the best candidate at or
// above threshold plus up to 3 runner-ups. Below threshold it still
// returns the 3 nearest names as suggestions for operator correction.
func (m *FuzzyMatcher) levenshteinMatch(input, norm, sportCode string, threshold float64) FuzzyResult {
	best := make(map[string]float64) // official -> best similarity

	for _, c := range candidatesFor(m.configs.TeamMapFor(sportCode)) {
		if s := levenshteinSimilarity(norm, c.norm); s > best[c.official] {
			best[c.official] = s
		}
	}
	for alias, official := range m.aliases[sportCode] {
		if s := levenshteinSimilarity(norm, alias); s > best[official] {
			best[official] = s
		}
	}

	scored := make([]scoredCandidate, 0, len(best))
	for official, s := range best {
		scored = append(scored, scoredCandidate{official: official, score: s})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].official < scored[j].official
	})

	if len(scored) == 0 {
		return FuzzyResult{Input: input, Method: FuzzyMethodNone}
	}

	alternatives := func(from, n int) []string {
		var alts []string
		for i := from; i < len(scored) && len(alts) < n; i++ {
			alts = append(alts, scored[i].official)
		}
		return alts
	}

	if scored[0].score >= threshold {
		return FuzzyResult{
			Input:        input,
			Match:        scored[0].official,
			Method:       FuzzyMethodLevenshtein,
			Confidence:   int(math.Floor(scored[0].score * 100)),
			Alternatives: alternatives(1, 3),
		}
	}

	return FuzzyResult{
		Input:        input,
		Method:       FuzzyMethodNone,
		Alternatives: alternatives(0, 3),
	}
}

// QualityStats aggregates fuzzy performance over a batch. Operational
// monitoring only; it never influences matching.
type QualityStats struct {
	Total       int            `json:"total"`
	Matched     int            `json:"matched"`
	SuccessRate float64        `json:"success_rate"`
	ByMethod    map[string]int `json:"by_method"`
}

// MatchQualityStats computes batch stats for a set of fuzzy results.
func MatchQualityStats(results []FuzzyResult) QualityStats {
	stats := QualityStats{Total: len(results), ByMethod: make(map[string]int)}
	for _, r := range results {
		stats.ByMethod[r.Method]++
		if r.Matched() {
			stats.Matched++
		}
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Matched) / float64(stats.Total)
	}
	return stats
}
