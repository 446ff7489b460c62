package match

// teamAliases is the curated alias dictionary used by the fuzzy matcher:
// fan nicknames, broadcaster shorthand, and historical spellings that the
// deterministic tiers cannot derive from the official names. Keys are
// normalized strings; values are the official full names from the sport
// config team maps.
var teamAliases = map[string]map[string]string{
	"nhl": {
		"avs":            "Colorado Avalanche",
		"blue jackets":   "Columbus Blue Jackets",
		"bolts":          "Tampa Bay Lightning",
		"canes":          "Carolina Hurricanes",
		"caps":           "Washington Capitals",
		"golden knights": "Vegas Golden Knights",
		"habs":           "Montreal Canadiens",
		"isles":          "New York Islanders",
		"jackets":        "Columbus Blue Jackets",
		"knights":        "Vegas Golden Knights",
		"ny islanders":   "New York Islanders",
		"ny rangers":     "New York Rangers",
		"pens":           "Pittsburgh Penguins",
		"preds":          "Nashville Predators",
		"sens":           "Ottawa Senators",
		"wings":          "Detroit Red Wings",
		"yotes":          "Arizona Coyotes",
	},
	"nba": {
		"blazers":     "Portland Trail Blazers",
		"cavs":        "Cleveland Cavaliers",
		"dubs":        "Golden State Warriors",
		"la clippers": "Los Angeles Clippers",
		"la lakers":   "Los Angeles Lakers",
		"mavs":        "Dallas Mavericks",
		"ny knicks":   "New York Knicks",
		"sixers":      "Philadelphia 76ers",
		"t wolves":    "Minnesota Timberwolves",
		"wolves":      "Minnesota Timberwolves",
	},
	"nfl": {
		"bucs":      "Tampa Bay Buccaneers",
		"cards":     "Arizona Cardinals",
		"fins":      "Miami Dolphins",
		"jags":      "Jacksonville Jaguars",
		"niners":    "San Francisco 49ers",
		"ny giants": "New York Giants",
		"ny jets":   "New York Jets",
		"pats":      "New England Patriots",
		"skins":     "Washington Commanders",
	},
	"mlb": {
		"bosox":   "Boston Red Sox",
		"bucs":    "Pittsburgh Pirates",
		"chisox":  "Chicago White Sox",
		"dbacks":  "Arizona Diamondbacks",
		"halos":   "Los Angeles Angels",
		"jays":    "Toronto Blue Jays",
		"ny mets": "New York Mets",
		"yanks":   "New York Yankees",
	},
	"epl": {
		"gunners":  "Arsenal",
		"hammers":  "West Ham",
		"magpies":  "Newcastle United",
		"man city": "Manchester City",
		"man u":    "Manchester United",
		"man utd":  "Manchester United",
		"spurs":    "Tottenham",
		"toffees":  "Everton",
		"villa":    "Aston Villa",
	},
}

// abbrevExpansion is an ordered list of leading-token expansions applied
// before retrying the alias table ("NY Rangers" -> "new york rangers").
// Order matters where prefixes overlap.
var abbrevExpansions = []struct {
	abbrev   string
	expanded string
}{
	{"okc", "oklahoma city"},
	{"gs", "golden state"},
	{"kc", "kansas city"},
	{"la", "los angeles"},
	{"nj", "new jersey"},
	{"no", "new orleans"},
	{"ny", "new york"},
	{"sf", "san francisco"},
	{"sj", "san jose"},
	{"tb", "tampa bay"},
	{"utd", "united"},
}
