package gamelog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

var abbrPattern = regexp.MustCompile(`[^A-Z0-9]`)

// ParseOpponentAbbr extracts the opponent abbreviation from a MATCHUP string
// like "LAL vs. BOS" or "LAL @ BOS". Returns "" if the string is empty.
func ParseOpponentAbbr(matchup string) string {
	fields := strings.Fields(matchup)
	if len(fields) == 0 {
		return ""
	}
	return abbrPattern.ReplaceAllString(strings.ToUpper(fields[len(fields)-1]), "")
}

// IsHomeMatchup reports whether a MATCHUP string describes a home game.
// Home games use "vs." ("LAL vs. BOS"), road games use "@" ("LAL @ BOS").
func IsHomeMatchup(matchup string) bool {
	return strings.Contains(matchup, "vs")
}

// FilterTeam returns the subset of games belonging to teamID, sorted by date.
func FilterTeam(games []models.GameRecord, teamID int) []models.GameRecord {
	var out []models.GameRecord
	for _, g := range games {
		if g.TeamID == teamID {
			out = append(out, g)
		}
	}
	SortByDate(out)
	return out
}

// SortByDate sorts games ascending by game date in place.
func SortByDate(games []models.GameRecord) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].GameDate.Before(games[j].GameDate)
	})
}
