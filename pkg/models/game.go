package models

import "time"

// StatColumns is the fixed set of box-score stats carried on every game record.
var StatColumns = []string{"PTS", "REB", "AST", "STL", "BLK", "FG_PCT", "FG3_PCT", "FT_PCT", "TOV"}

// GameRecord is one row of a team game log: a single team's side of one game.
// For a given team, game dates are unique and totally ordered.
type GameRecord struct {
	TeamID   int                `json:"team_id"`
	Season   string             `json:"season"`
	GameDate time.Time          `json:"game_date"`
	Matchup  string             `json:"matchup"`
	Home     bool               `json:"home"`
	Win      bool               `json:"win"`
	Stats    map[string]float64 `json:"stats"`
}

// Stat returns the named box-score stat and whether it is present.
func (g GameRecord) Stat(name string) (float64, bool) {
	v, ok := g.Stats[name]
	return v, ok
}

// Label returns the training label: 1 for a win, 0 for a loss.
func (g GameRecord) Label() int {
	if g.Win {
		return 1
	}
	return 0
}

// ScheduledGame is one upcoming game from the league scoreboard.
type ScheduledGame struct {
	GameID        string    `json:"game_id"`
	Date          time.Time `json:"date"`
	HomeTeamID    int       `json:"home_team_id"`
	VisitorTeamID int       `json:"visitor_team_id"`
}
