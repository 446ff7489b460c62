// Package sports holds the static per-sport configuration: display
// names, external API identifiers, team maps (abbreviation -> official
// full name), and the regex patterns used to classify free text into a
// sport. Configuration is plain data loaded once at startup.
package sports

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes one sport.
type Config struct {
	// Name is the display name used in index keys and market titles
	// (e.g. "NHL", "Premier League").
	Name string

	// BaseURL is the source-system URL for this sport's odds feed.
	BaseURL string

	// APISportKeys are the external odds-API identifiers for this
	// sport (some providers split a sport across several keys).
	APISportKeys []string

	// TeamMap maps lowercase abbreviations to official full names.
	// Values are unique within a sport; keys may repeat across sports.
	TeamMap map[string]string

	// DetectionPatterns classify free text into this sport.
	DetectionPatterns []*regexp.Regexp
}

// Configs is the full sport table, keyed by sport code ("nhl", "nba", ...).
type Configs map[string]Config

// Get returns the config for a sport code.
func (c Configs) Get(sportCode string) (Config, bool) {
	cfg, ok := c[strings.ToLower(sportCode)]
	return cfg, ok
}

// TeamMapFor returns the team map for a sport code, or nil if unknown.
func (c Configs) TeamMapFor(sportCode string) map[string]string {
	cfg, ok := c.Get(sportCode)
	if !ok {
		return nil
	}
	return cfg.TeamMap
}

// SportCodeForLeague resolves a league display name ("NHL", "premier
// league") to its sport code via case-insensitive exact match.
func (c Configs) SportCodeForLeague(league string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(league))
	for code, cfg := range c {
		if strings.ToLower(cfg.Name) == want {
			return code, true
		}
	}
	return "", false
}

// DetectSport classifies free text into a sport code using the
// configured detection patterns. The first sport (in stable code order)
// with a matching pattern wins.
func (c Configs) DetectSport(text string) (string, bool) {
	for _, code := range c.codes() {
		for _, re := range c[code].DetectionPatterns {
			if re.MatchString(text) {
				return code, true
			}
		}
	}
	return "", false
}

// codes returns sport codes in sorted order so detection is deterministic.
func (c Configs) codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// overrideFile is the YAML shape for operator-supplied extensions.
type overrideFile struct {
	Sports map[string]struct {
		Name     string            `yaml:"name"`
		BaseURL  string            `yaml:"base_url"`
		APIKeys  []string          `yaml:"api_sport_keys"`
		Teams    map[string]string `yaml:"teams"`
		Patterns []string          `yaml:"patterns"`
	} `yaml:"sports"`
}

// LoadOverrides merges a YAML override file into the configs. Existing
// sports gain/replace team-map entries and patterns; unknown sport codes
// create new entries. Abbreviation keys are normalized to lowercase.
func (c Configs) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading sport overrides: %w", err)
	}
	return c.applyOverrides(data)
}

func (c Configs) applyOverrides(data []byte) error {
	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing sport overrides: %w", err)
	}

	for code, ov := range file.Sports {
		code = strings.ToLower(code)
		cfg := c[code]
		if ov.Name != "" {
			cfg.Name = ov.Name
		}
		// A new sport with no name would produce index keys with an
		// empty league segment.
		if cfg.Name == "" {
			cfg.Name = strings.ToUpper(code)
		}
		if ov.BaseURL != "" {
			cfg.BaseURL = ov.BaseURL
		}
		if len(ov.APIKeys) > 0 {
			cfg.APISportKeys = ov.APIKeys
		}
		if len(ov.Teams) > 0 {
			merged := make(map[string]string, len(cfg.TeamMap)+len(ov.Teams))
			for k, v := range cfg.TeamMap {
				merged[k] = v
			}
			for k, v := range ov.Teams {
				merged[strings.ToLower(k)] = v
			}
			cfg.TeamMap = merged
		}
		for _, p := range ov.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return fmt.Errorf("compiling pattern %q for %s: %w", p, code, err)
			}
			cfg.DetectionPatterns = append(cfg.DetectionPatterns, re)
		}
		c[code] = cfg
	}
	return nil
}
