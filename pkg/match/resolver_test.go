package match

import "testing"

func TestResolveTiers(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name     string
		raw      string
		sport    string
		want     string
		wantTier string
	}{
		{"abbreviation", "nyr", "nhl", "New York Rangers", TierAbbreviation},
		{"abbreviation uppercase", "NYR", "nhl", "New York Rangers", TierAbbreviation},
		{"exact official", "Toronto Maple Leafs", "nhl", "Toronto Maple Leafs", TierExact},
		{"exact with punctuation", "St. Louis Blues", "nhl", "St. Louis Blues", TierExact},
		{"nickname", "Leafs", "nhl", "Toronto Maple Leafs", TierNickname},
		{"nickname multiword raw", "The Mighty Canucks", "nhl", "Vancouver Canucks", TierNickname},
		{"city", "Winnipeg", "nhl", "Winnipeg Jets", TierCity},
		{"city prefix", "Vegas Golden", "nhl", "Vegas Golden Knights", TierCity},
		{"substring", "Tottenham Hotspur", "epl", "Tottenham", TierSubstring},
		{"loose token", "Maple Leafs Hockey", "nhl", "Toronto Maple Leafs", TierToken},
		{"nba nickname", "Lakers", "nba", "Los Angeles Lakers", TierNickname},
		{"nfl abbreviation", "kc", "nfl", "Kansas City Chiefs", TierAbbreviation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tier, ok := r.ResolveTier(tt.raw, tt.sport, nil, nil)
			if !ok {
				t.Fatalf("ResolveTier(%q, %q) did not resolve", tt.raw, tt.sport)
			}
			if got != tt.want {
				t.Errorf("ResolveTier(%q, %q) = %q, want %q", tt.raw, tt.sport, got, tt.want)
			}
			if tier != tt.wantTier {
				t.Errorf("ResolveTier(%q, %q) tier = %q, want %q", tt.raw, tt.sport, tier, tt.wantTier)
			}
		})
	}
}

func TestResolveMisses(t *testing.T) {
	r := NewResolver(nil)

	misses := []struct {
		name  string
		raw   string
		sport string
	}{
		{"blank", "", "nhl"},
		{"whitespace only", "   ", "nhl"},
		{"unknown team", "Hartford Whalers", "nhl"},
		{"unknown sport", "Leafs", "cricket"},
		{"short string no substring", "xy", "nhl"},
	}
	for _, tt := range misses {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := r.Resolve(tt.raw, tt.sport, nil, nil); ok {
				t.Errorf("Resolve(%q, %q) = %q, want miss", tt.raw, tt.sport, got)
			}
		})
	}
}

func TestResolveUserMappingPriority(t *testing.T) {
	r := NewResolver(nil)

	// The raw name is an exact official name, but the operator mapping
	// points elsewhere: the mapping must win.
	userMappings := map[string]string{
		"toronto maple leafs": "Toronto Argonauts",
	}
	got, tier, ok := r.ResolveTier("Toronto Maple Leafs", "nhl", nil, userMappings)
	if !ok || got != "Toronto Argonauts" {
		t.Fatalf("user mapping did not override exact match: got %q (ok=%v)", got, ok)
	}
	if tier != TierUserMapping {
		t.Errorf("tier = %q, want %q", tier, TierUserMapping)
	}

	// Mapping keys are normalized, so a messy raw spelling still hits.
	userMappings = map[string]string{"ny rags": "New York Rangers"}
	if got, _ := r.Resolve("N.Y. Rags!", "nhl", nil, userMappings); got != "New York Rangers" {
		t.Errorf("normalized user-mapping lookup failed: %q", got)
	}
}

func TestResolveExplicitTeamMap(t *testing.T) {
	r := NewResolver(nil)

	teamMap := map[string]string{"fcb": "FC Barcelona"}
	if got, ok := r.Resolve("fcb", "laliga", teamMap, nil); !ok || got != "FC Barcelona" {
		t.Errorf("explicit team map not used: %q (ok=%v)", got, ok)
	}

	// Empty map means nothing can resolve, even a plausible name.
	if _, ok := r.Resolve("Barcelona", "laliga", map[string]string{}, nil); ok {
		t.Error("empty team map must not resolve")
	}
}

func TestResolveDeterministicTies(t *testing.T) {
	r := NewResolver(nil)

	// "New York" is a city shared by two NHL teams; resolution must be
	// stable across runs (sorted official order, Islanders first).
	for i := 0; i < 10; i++ {
		got, _ := r.Resolve("New York", "nhl", nil, nil)
		if got != "New York Islanders" {
			t.Fatalf("city tie not deterministic: %q", got)
		}
	}
}
