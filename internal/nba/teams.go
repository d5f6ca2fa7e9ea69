package nba

// LakersTeamID is the NBA stats API team ID for the Los Angeles Lakers.
const LakersTeamID = 1610612747

// NBA team abbreviation -> stats API team ID
var teamIDsByAbbreviation = map[string]int{
	"ATL": 1610612737,
	"BOS": 1610612738,
	"BKN": 1610612751,
	"CHA": 1610612766,
	"CHI": 1610612741,
	"CLE": 1610612739,
	"DAL": 1610612742,
	"DEN": 1610612743,
	"DET": 1610612765,
	"GSW": 1610612744,
	"HOU": 1610612745,
	"IND": 1610612754,
	"LAC": 1610612746,
	"LAL": 1610612747,
	"MEM": 1610612763,
	"MIA": 1610612748,
	"MIL": 1610612749,
	"MIN": 1610612750,
	"NOP": 1610612740,
	"NYK": 1610612752,
	"OKC": 1610612760,
	"ORL": 1610612753,
	"PHI": 1610612755,
	"PHX": 1610612756,
	"POR": 1610612757,
	"SAC": 1610612758,
	"SAS": 1610612759,
	"TOR": 1610612761,
	"UTA": 1610612762,
	"WAS": 1610612764,
}

// Reverse mapping for lookups
var abbreviationsByTeamID = map[int]string{}

func init() {
	// Build reverse mapping
	for abbr, id := range teamIDsByAbbreviation {
		abbreviationsByTeamID[id] = abbr
	}
}

// TeamIDByAbbreviation resolves an abbreviation like "BOS" to a team ID.
func TeamIDByAbbreviation(abbr string) (int, bool) {
	id, ok := teamIDsByAbbreviation[abbr]
	return id, ok
}

// AbbreviationByTeamID returns the abbreviation for a team ID, or "UNKNOWN".
func AbbreviationByTeamID(id int) string {
	if abbr, ok := abbreviationsByTeamID[id]; ok {
		return abbr
	}
	return "UNKNOWN"
}
