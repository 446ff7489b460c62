// Package match implements the event canonicalization and cross-source
// matching engine: team-name resolution, order-independent event keys,
// bookmaker indexing, prediction-market lookup with time-window
// filtering, and a supplementary fuzzy matching path.
package match

import (
	"sort"
	"strings"

	"github.com/favron1/ev-ace-advisor/pkg/normalize"
	"github.com/favron1/ev-ace-advisor/pkg/sports"
)

// Resolution tiers, cheapest and most precise first. User corrections
// outrank everything; the fuzzy matcher is a separate path.
const (
	TierUserMapping  = "user_mapping"
	TierExact        = "exact"
	TierAbbreviation = "abbreviation"
	TierNickname     = "nickname"
	TierCity         = "city"
	TierSubstring    = "substring"
	TierToken        = "token"
)

// Resolver maps raw, inconsistently spelled team names to official full
// names for a sport.
type Resolver struct {
	configs sports.Configs
}

// NewResolver creates a resolver over a sport table. A nil table uses
// the built-in defaults.
func NewResolver(configs sports.Configs) *Resolver {
	if configs == nil {
		configs = sports.DefaultConfigs()
	}
	return &Resolver{configs: configs}
}

// Configs exposes the resolver's sport table.
func (r *Resolver) Configs() sports.Configs { return r.configs }

// Resolve resolves a raw team name to its official full name. teamMap
// overrides the sport's configured map when non-nil; userMappings
// (normalized source name -> canonical name) are checked before any
// heuristic. Returns ("", false) when nothing matches.
func (r *Resolver) Resolve(rawName, sportCode string, teamMap, userMappings map[string]string) (string, bool) {
	name, _, ok := r.ResolveTier(rawName, sportCode, teamMap, userMappings)
	return name, ok
}

// ResolveTier is Resolve plus the name of the tier that produced the
// hit, for diagnostics and metrics.
func (r *Resolver) ResolveTier(rawName, sportCode string, teamMap, userMappings map[string]string) (string, string, bool) {
	normRaw := normalize.Normalize(rawName)
	if normRaw == "" {
		return "", "", false
	}

	// Operator corrections win unconditionally.
	if len(userMappings) > 0 {
		if canonical, ok := userMappings[normRaw]; ok {
			return canonical, TierUserMapping, true
		}
	}

	if teamMap == nil {
		teamMap = r.configs.TeamMapFor(sportCode)
	}
	if len(teamMap) == 0 {
		return "", "", false
	}

	cands := candidatesFor(teamMap)

	if official, ok := matchExact(normRaw, cands); ok {
		return official, TierExact, true
	}
	if official, ok := teamMap[strings.ToLower(strings.TrimSpace(rawName))]; ok {
		return official, TierAbbreviation, true
	}
	if official, ok := matchNickname(normRaw, cands); ok {
		return official, TierNickname, true
	}
	if official, ok := matchCity(normRaw, cands); ok {
		return official, TierCity, true
	}
	if official, ok := matchSubstring(normRaw, cands); ok {
		return official, TierSubstring, true
	}
	if official, ok := matchToken(normRaw, cands); ok {
		return official, TierToken, true
	}
	return "", "", false
}

// candidate holds the precomputed comparison forms of one official name.
type candidate struct {
	official string
	norm     string
	nickname string // trailing token, "" when too short to be distinctive
	city     string // everything before the trailing token
}

// candidatesFor precomputes candidates in sorted official-name order so
// tie handling is deterministic across runs (map iteration is not).
func candidatesFor(teamMap map[string]string) []candidate {
	officials := make([]string, 0, len(teamMap))
	for _, official := range teamMap {
		officials = append(officials, official)
	}
	sort.Strings(officials)

	cands := make([]candidate, 0, len(officials))
	for _, official := range officials {
		norm := normalize.Normalize(official)
		c := candidate{official: official, norm: norm}
		if tokens := strings.Fields(norm); len(tokens) > 1 {
			if nick := tokens[len(tokens)-1]; len(nick) > 2 {
				c.nickname = nick
			}
			c.city = strings.Join(tokens[:len(tokens)-1], " ")
		}
		cands = append(cands, c)
	}
	return cands
}

func matchExact(normRaw string, cands []candidate) (string, bool) {
	for _, c := range cands {
		if c.norm == normRaw {
			return c.official, true
		}
	}
	return "", false
}

func matchNickname(normRaw string, cands []candidate) (string, bool) {
	tokens := strings.Fields(normRaw)
	nick := tokens[len(tokens)-1]
	if len(nick) <= 2 {
		return "", false
	}
	for _, c := range cands {
		if c.nickname != "" && c.nickname == nick {
			return c.official, true
		}
	}
	return "", false
}

func matchCity(normRaw string, cands []candidate) (string, bool) {
	var rawCity string
	if tokens := strings.Fields(normRaw); len(tokens) > 1 {
		rawCity = strings.Join(tokens[:len(tokens)-1], " ")
	}
	for _, c := range cands {
		if c.city == "" {
			continue
		}
		if c.city == normRaw || (rawCity != "" && c.city == rawCity) {
			return c.official, true
		}
	}
	return "", false
}

// matchSubstring requires length > 4 so short strings cannot match
// everything.
func matchSubstring(normRaw string, cands []candidate) (string, bool) {
	if len(normRaw) <= 4 {
		return "", false
	}
	for _, c := range cands {
		if strings.Contains(c.norm, normRaw) || strings.Contains(normRaw, c.norm) {
			return c.official, true
		}
	}
	return "", false
}

func matchToken(normRaw string, cands []candidate) (string, bool) {
	for _, token := range strings.Fields(normRaw) {
		if len(token) <= 3 {
			continue
		}
		for _, c := range cands {
			if c.nickname != "" && c.nickname == token {
				return c.official, true
			}
		}
	}
	return "", false
}
