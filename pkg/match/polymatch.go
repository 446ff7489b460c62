package match

import (
	"strings"
	"time"

	"github.com/favron1/ev-ace-advisor/pkg/normalize"
)

// Match methods. canonical_exact means the winning candidate was within
// a day of the market date; canonical_time is the same key match with
// looser temporal confidence.
const (
	MethodCanonicalExact = "canonical_exact"
	MethodCanonicalTime  = "canonical_time"
)

// Failure reasons. Exactly one of Match / FailureReason is set on any
// result; downstream dashboards aggregate these values.
const (
	FailureTeamAliasMissing       = "TEAM_ALIAS_MISSING"
	FailureNoBookGameFound        = "NO_BOOK_GAME_FOUND"
	FailureStartTimeMismatch      = "START_TIME_MISMATCH"
	FailureMultipleGamesAmbiguous = "MULTIPLE_GAMES_AMBIGUOUS"
)

// Time-window constants. Windows are exclusive: a candidate exactly at
// the edge is out. Placeholder dates (midnight defaults and the like)
// get the wider window.
const (
	matchWindow       = 36 * time.Hour
	placeholderWindow = 48 * time.Hour
	exactWindow       = 24 * time.Hour

	// Two distinct start times within this of each other cannot be
	// told apart reliably; see ambiguity handling below.
	ambiguityEpsilon = 30 * time.Minute
)

// MatchDebug carries the diagnostic fields of one lookup. TimeDiffHours
// distinguishes "just outside the window" from "wildly off" when a
// START_TIME_MISMATCH shows up on a dashboard.
type MatchDebug struct {
	YesTeamRaw        string  `json:"yes_team_raw"`
	NoTeamRaw         string  `json:"no_team_raw"`
	YesTeamResolved   string  `json:"yes_team_resolved,omitempty"`
	NoTeamResolved    string  `json:"no_team_resolved,omitempty"`
	LookupKey         string  `json:"lookup_key,omitempty"`
	Candidates        int     `json:"candidates"`
	WindowHours       float64 `json:"window_hours,omitempty"`
	TimeDiffHours     float64 `json:"time_diff_hours,omitempty"`
	RunnerUpDiffHours float64 `json:"runner_up_diff_hours,omitempty"`
}

// MatchResult is the outcome of one market lookup. Invariant: Match is
// non-nil exactly when FailureReason is empty.
type MatchResult struct {
	Match         *BookEvent `json:"match,omitempty"`
	Method        string     `json:"method,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
	Debug         MatchDebug `json:"debug"`
}

// Matched reports success.
func (r MatchResult) Matched() bool { return r.Match != nil }

// Query is one prediction-market lookup against a bookmaker index.
type Query struct {
	League  string
	YesTeam string
	NoTeam  string

	// Date is the market's event date; nil skips time filtering
	// entirely (date-blind best effort).
	Date *time.Time

	// PlaceholderTime marks Date as a known low-confidence default
	// (e.g. midnight), widening the window.
	PlaceholderTime bool
}

// Matcher performs poly-to-book lookups. It shares the resolver used to
// build the index so both sides canonicalize identically.
type Matcher struct {
	resolver *Resolver
}

// NewMatcher creates a matcher sharing a resolver.
func NewMatcher(resolver *Resolver) *Matcher {
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	return &Matcher{resolver: resolver}
}

// Match looks a market up in a prebuilt index: resolve both teams,
// compute the canonical key, filter candidates by time window, pick the
// nearest. Single pass, no retries, deterministic. Nearest-wins has one
// carve-out: when a second candidate at a distinct start time sits
// within 30 minutes of the winner's time difference, the lookup reports
// MULTIPLE_GAMES_AMBIGUOUS instead of returning either row, even when
// the query date equals one candidate's commence time exactly.
func (m *Matcher) Match(index BookIndex, q Query, teamMap, userMappings map[string]string) MatchResult {
	result := MatchResult{Debug: MatchDebug{YesTeamRaw: q.YesTeam, NoTeamRaw: q.NoTeam}}

	sportCode, _ := m.resolver.Configs().SportCodeForLeague(q.League)

	yesFull, yesOK := m.resolver.Resolve(q.YesTeam, sportCode, teamMap, userMappings)
	noFull, noOK := m.resolver.Resolve(q.NoTeam, sportCode, teamMap, userMappings)
	result.Debug.YesTeamResolved = yesFull
	result.Debug.NoTeamResolved = noFull
	if !yesOK || !noOK {
		result.FailureReason = FailureTeamAliasMissing
		return result
	}

	key := m.lookupKey(sportCode, q.League, yesFull, noFull)
	result.Debug.LookupKey = key

	candidates := index[key]
	result.Debug.Candidates = len(candidates)
	if len(candidates) == 0 {
		result.FailureReason = FailureNoBookGameFound
		return result
	}

	// No date at all: take the first candidate. A documented
	// relaxation for markets that only name the matchup.
	if q.Date == nil {
		result.Match = candidates[0]
		result.Method = MethodCanonicalExact
		return result
	}

	window := matchWindow
	if q.PlaceholderTime {
		window = placeholderWindow
	}
	result.Debug.WindowHours = window.Hours()

	var (
		winner     *BookEvent
		winnerDiff time.Duration
		runnerUp   *BookEvent
		runnerDiff time.Duration
		nearest    time.Duration = -1
	)
	for _, c := range candidates {
		diff := absDuration(c.CommenceTime.Sub(*q.Date))
		if nearest < 0 || diff < nearest {
			nearest = diff
		}
		if diff >= window {
			continue
		}
		switch {
		case winner == nil:
			winner, winnerDiff = c, diff
		case diff < winnerDiff:
			runnerUp, runnerDiff = winner, winnerDiff
			winner, winnerDiff = c, diff
		case runnerUp == nil || diff < runnerDiff:
			runnerUp, runnerDiff = c, diff
		}
	}

	if winner == nil {
		result.FailureReason = FailureStartTimeMismatch
		result.Debug.TimeDiffHours = nearest.Hours()
		return result
	}
	result.Debug.TimeDiffHours = winnerDiff.Hours()

	// Two candidates at distinct start times nearly equidistant from
	// the market date: picking one silently risks the wrong leg of a
	// doubleheader. Identical start times are duplicate feed rows of
	// the same game, so first-seen wins there.
	if runnerUp != nil && !runnerUp.CommenceTime.Equal(winner.CommenceTime) &&
		absDuration(runnerDiff-winnerDiff) < ambiguityEpsilon {
		result.Debug.RunnerUpDiffHours = runnerDiff.Hours()
		result.FailureReason = FailureMultipleGamesAmbiguous
		return result
	}

	result.Match = winner
	if winnerDiff < exactWindow {
		result.Method = MethodCanonicalExact
	} else {
		result.Method = MethodCanonicalTime
	}
	return result
}

// MatchEventName splits a combined "X vs Y" event title and delegates to
// Match. A title that fails to parse yields TEAM_ALIAS_MISSING without
// attempting resolution: callers handle parse and resolution failures
// the same way.
func (m *Matcher) MatchEventName(index BookIndex, league, eventName string, date *time.Time, placeholderTime bool, userMappings map[string]string) MatchResult {
	yes, no, ok := SplitTeams(eventName)
	if !ok {
		return MatchResult{
			FailureReason: FailureTeamAliasMissing,
			Debug:         MatchDebug{YesTeamRaw: eventName},
		}
	}
	return m.Match(index, Query{
		League:          league,
		YesTeam:         yes,
		NoTeam:          no,
		Date:            date,
		PlaceholderTime: placeholderTime,
	}, nil, userMappings)
}

// ValidateMatchedTeams is a post-hoc guard against index collisions:
// the nickname of at least one resolved side must appear in the original
// free-text event name. Callers drop the match when this returns false.
func ValidateMatchedTeams(eventName string, match *BookEvent) bool {
	if match == nil {
		return false
	}
	normName := normalize.Normalize(eventName)
	if normName == "" {
		return false
	}
	for _, full := range []string{match.HomeTeamResolved, match.AwayTeamResolved} {
		tokens := strings.Fields(normalize.Normalize(full))
		if len(tokens) == 0 {
			continue
		}
		if nick := tokens[len(tokens)-1]; nick != "" && strings.Contains(normName, nick) {
			return true
		}
	}
	return false
}

// lookupKey builds the index key exactly as the indexer does.
func (m *Matcher) lookupKey(sportCode, league, fullA, fullB string) string {
	name := league
	if cfg, ok := m.resolver.Configs().Get(sportCode); ok {
		name = cfg.Name
	}
	tsk := normalize.TeamSetKey(normalize.Slugify(fullA), normalize.Slugify(fullB))
	return name + "|" + tsk
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
