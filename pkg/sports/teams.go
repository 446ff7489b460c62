package sports

import "regexp"

// DefaultConfigs returns the built-in sport table. Operators can extend
// it at startup via LoadOverrides without a rebuild.
func DefaultConfigs() Configs {
	return Configs{
		"nhl": {
			Name:         "NHL",
			BaseURL:      "https://api.the-odds-api.com",
			APISportKeys: []string{"icehockey_nhl"},
			TeamMap: map[string]string{
				"ana": "Anaheim Ducks",
				"ari": "Arizona Coyotes",
				"bos": "Boston Bruins",
				"buf": "Buffalo Sabres",
				"cgy": "Calgary Flames",
				"car": "Carolina Hurricanes",
				"chi": "Chicago Blackhawks",
				"col": "Colorado Avalanche",
				"cbj": "Columbus Blue Jackets",
				"dal": "Dallas Stars",
				"det": "Detroit Red Wings",
				"edm": "Edmonton Oilers",
				"fla": "Florida Panthers",
				"lak": "Los Angeles Kings",
				"min": "Minnesota Wild",
				"mtl": "Montreal Canadiens",
				"nsh": "Nashville Predators",
				"njd": "New Jersey Devils",
				"nyi": "New York Islanders",
				"nyr": "New York Rangers",
				"ott": "Ottawa Senators",
				"phi": "Philadelphia Flyers",
				"pit": "Pittsburgh Penguins",
				"sjs": "San Jose Sharks",
				"sea": "Seattle Kraken",
				"stl": "St. Louis Blues",
				"tbl": "Tampa Bay Lightning",
				"tor": "Toronto Maple Leafs",
				"uta": "Utah Hockey Club",
				"van": "Vancouver Canucks",
				"vgk": "Vegas Golden Knights",
				"wsh": "Washington Capitals",
				"wpg": "Winnipeg Jets",
			},
			DetectionPatterns: compile(
				`(?i)\bnhl\b`,
				`(?i)\bhockey\b`,
				`(?i)\bstanley cup\b`,
			),
		},
		"nba": {
			Name:         "NBA",
			BaseURL:      "https://api.the-odds-api.com",
			APISportKeys: []string{"basketball_nba"},
			TeamMap: map[string]string{
				"atl": "Atlanta Hawks",
				"bos": "Boston Celtics",
				"bkn": "Brooklyn Nets",
				"cha": "Charlotte Hornets",
				"chi": "Chicago Bulls",
				"cle": "Cleveland Cavaliers",
				"dal": "Dallas Mavericks",
				"den": "Denver Nuggets",
				"det": "Detroit Pistons",
				"gsw": "Golden State Warriors",
				"hou": "Houston Rockets",
				"ind": "Indiana Pacers",
				"lac": "Los Angeles Clippers",
				"lal": "Los Angeles Lakers",
				"mem": "Memphis Grizzlies",
				"mia": "Miami Heat",
				"mil": "Milwaukee Bucks",
				"min": "Minnesota Timberwolves",
				"nop": "New Orleans Pelicans",
				"nyk": "New York Knicks",
				"okc": "Oklahoma City Thunder",
				"orl": "Orlando Magic",
				"phi": "Philadelphia 76ers",
				"phx": "Phoenix Suns",
				"por": "Portland Trail Blazers",
				"sac": "Sacramento Kings",
				"sas": "San Antonio Spurs",
				"tor": "Toronto Raptors",
				"uta": "Utah Jazz",
				"was": "Washington Wizards",
			},
			DetectionPatterns: compile(
				`(?i)\bnba\b`,
				`(?i)\bbasketball\b`,
			),
		},
		"nfl": {
			Name:         "NFL",
			BaseURL:      "https://api.the-odds-api.com",
			APISportKeys: []string{"americanfootball_nfl"},
			TeamMap: map[string]string{
				"ari": "Arizona Cardinals",
				"atl": "Atlanta Falcons",
				"bal": "Baltimore Ravens",
				"buf": "Buffalo Bills",
				"car": "Carolina Panthers",
				"chi": "Chicago Bears",
				"cin": "Cincinnati Bengals",
				"cle": "Cleveland Browns",
				"dal": "Dallas Cowboys",
				"den": "Denver Broncos",
				"det": "Detroit Lions",
				"gb":  "Green Bay Packers",
				"hou": "Houston Texans",
				"ind": "Indianapolis Colts",
				"jax": "Jacksonville Jaguars",
				"kc":  "Kansas City Chiefs",
				"lac": "Los Angeles Chargers",
				"lar": "Los Angeles Rams",
				"lv":  "Las Vegas Raiders",
				"mia": "Miami Dolphins",
				"min": "Minnesota Vikings",
				"ne":  "New England Patriots",
				"no":  "New Orleans Saints",
				"nyg": "New York Giants",
				"nyj": "New York Jets",
				"phi": "Philadelphia Eagles",
				"pit": "Pittsburgh Steelers",
				"sea": "Seattle Seahawks",
				"sf":  "San Francisco 49ers",
				"tb":  "Tampa Bay Buccaneers",
				"ten": "Tennessee Titans",
				"was": "Washington Commanders",
			},
			DetectionPatterns: compile(
				`(?i)\bnfl\b`,
				`(?i)\bsuper bowl\b`,
			),
		},
		"mlb": {
			Name:         "MLB",
			BaseURL:      "https://api.the-odds-api.com",
			APISportKeys: []string{"baseball_mlb"},
			TeamMap: map[string]string{
				"ari": "Arizona Diamondbacks",
				"atl": "Atlanta Braves",
				"bal": "Baltimore Orioles",
				"bos": "Boston Red Sox",
				"chc": "Chicago Cubs",
				"cws": "Chicago White Sox",
				"cin": "Cincinnati Reds",
				"cle": "Cleveland Guardians",
				"col": "Colorado Rockies",
				"det": "Detroit Tigers",
				"hou": "Houston Astros",
				"kc":  "Kansas City Royals",
				"laa": "Los Angeles Angels",
				"lad": "Los Angeles Dodgers",
				"mia": "Miami Marlins",
				"mil": "Milwaukee Brewers",
				"min": "Minnesota Twins",
				"nym": "New York Mets",
				"nyy": "New York Yankees",
				"oak": "Oakland Athletics",
				"phi": "Philadelphia Phillies",
				"pit": "Pittsburgh Pirates",
				"sd":  "San Diego Padres",
				"sea": "Seattle Mariners",
				"sf":  "San Francisco Giants",
				"stl": "St. Louis Cardinals",
				"tb":  "Tampa Bay Rays",
				"tex": "Texas Rangers",
				"tor": "Toronto Blue Jays",
				"wsh": "Washington Nationals",
			},
			DetectionPatterns: compile(
				`(?i)\bmlb\b`,
				`(?i)\bbaseball\b`,
				`(?i)\bworld series\b`,
			),
		},
		"epl": {
			Name:         "Premier League",
			BaseURL:      "https://api.the-odds-api.com",
			APISportKeys: []string{"soccer_epl"},
			TeamMap: map[string]string{
				"ars": "Arsenal",
				"avl": "Aston Villa",
				"bou": "Bournemouth",
				"bre": "Brentford",
				"bha": "Brighton",
				"bur": "Burnley",
				"che": "Chelsea",
				"cry": "Crystal Palace",
				"eve": "Everton",
				"ful": "Fulham",
				"lee": "Leeds United",
				"liv": "Liverpool",
				"mci": "Manchester City",
				"mun": "Manchester United",
				"new": "Newcastle United",
				"nfo": "Nottingham Forest",
				"sun": "Sunderland",
				"tot": "Tottenham",
				"whu": "West Ham",
				"wol": "Wolves",
			},
			DetectionPatterns: compile(
				`(?i)\bpremier league\b`,
				`(?i)\bepl\b`,
			),
		},
	}
}

func compile(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}
