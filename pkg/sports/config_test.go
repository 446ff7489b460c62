package sports

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigsTeamMapValuesUnique(t *testing.T) {
	for code, cfg := range DefaultConfigs() {
		seen := make(map[string]string)
		for abbr, official := range cfg.TeamMap {
			if prev, dup := seen[official]; dup {
				t.Errorf("%s: official name %q mapped by both %q and %q", code, official, prev, abbr)
			}
			seen[official] = abbr
		}
	}
}

func TestSportCodeForLeague(t *testing.T) {
	cfgs := DefaultConfigs()

	tests := []struct {
		league string
		want   string
		ok     bool
	}{
		{"NHL", "nhl", true},
		{"nhl", "nhl", true},
		{"Premier League", "epl", true},
		{"premier league", "epl", true},
		{" NBA ", "nba", true},
		{"Curling", "", false},
	}
	for _, tt := range tests {
		got, ok := cfgs.SportCodeForLeague(tt.league)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SportCodeForLeague(%q) = (%q, %v), want (%q, %v)", tt.league, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDetectSport(t *testing.T) {
	cfgs := DefaultConfigs()

	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"Will the Rangers win the Stanley Cup?", "nhl", true},
		{"NBA Finals Game 7", "nba", true},
		{"Super Bowl LIX winner", "nfl", true},
		{"World Series champion 2025", "mlb", true},
		{"Premier League top scorer", "epl", true},
		{"US Open tennis", "", false},
	}
	for _, tt := range tests {
		got, ok := cfgs.DetectSport(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DetectSport(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	yaml := `
sports:
  nhl:
    teams:
      QUE: "Quebec Nordiques"
    patterns:
      - '(?i)\bice hockey\b'
  khl:
    name: "KHL"
    teams:
      ska: "SKA Saint Petersburg"
`
	path := filepath.Join(t.TempDir(), "sports.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfgs := DefaultConfigs()
	if err := cfgs.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}

	nhl, _ := cfgs.Get("nhl")
	if nhl.TeamMap["que"] != "Quebec Nordiques" {
		t.Errorf("override team not merged (lowercased): %v", nhl.TeamMap["que"])
	}
	if nhl.TeamMap["nyr"] != "New York Rangers" {
		t.Error("existing team map entries must survive a merge")
	}
	if got, ok := cfgs.DetectSport("ice hockey tonight"); !ok || got != "nhl" {
		t.Errorf("override pattern not applied: (%q, %v)", got, ok)
	}

	khl, ok := cfgs.Get("khl")
	if !ok || khl.Name != "KHL" || khl.TeamMap["ska"] != "SKA Saint Petersburg" {
		t.Errorf("new sport not created from overrides: %+v", khl)
	}
}

func TestLoadOverridesNamelessSport(t *testing.T) {
	cfgs := DefaultConfigs()
	err := cfgs.applyOverrides([]byte("sports:\n  shl:\n    teams:\n      fhc: \"Frolunda HC\"\n"))
	if err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}

	// A new sport created without a name falls back to the uppercased
	// code so index keys never get an empty league segment.
	shl, ok := cfgs.Get("shl")
	if !ok || shl.Name != "SHL" {
		t.Errorf("nameless sport config = %+v, want Name %q", shl, "SHL")
	}
}

func TestLoadOverridesBadPattern(t *testing.T) {
	cfgs := DefaultConfigs()
	err := cfgs.applyOverrides([]byte("sports:\n  nhl:\n    patterns: ['[']\n"))
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}
