package nba

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

// NextGame describes a team's next scheduled game.
type NextGame struct {
	Date       time.Time
	Home       bool
	OpponentID int
}

// FindNextGame scans the league scoreboard day by day starting today and
// returns the first scheduled game involving teamID. A failed scoreboard
// fetch for one date skips to the next candidate date; only exhausting the
// whole horizon is an error.
func (c *Client) FindNextGame(ctx context.Context, teamID int, maxDaysAhead int) (*NextGame, error) {
	return c.FindNextGameFrom(ctx, teamID, time.Now().UTC().Truncate(24*time.Hour), maxDaysAhead)
}

// FindNextGameFrom is FindNextGame with an explicit start date.
func (c *Client) FindNextGameFrom(ctx context.Context, teamID int, start time.Time, maxDaysAhead int) (*NextGame, error) {
	for i := 0; i < maxDaysAhead; i++ {
		target := start.AddDate(0, 0, i)

		games, err := c.Scoreboard(ctx, target)
		if err != nil {
			log.Printf("[nba] Scoreboard fetch failed for %s: %v", target.Format("2006-01-02"), err)
			continue
		}

		if g := matchFor(games, teamID); g != nil {
			return &NextGame{
				Date:       target,
				Home:       g.HomeTeamID == teamID,
				OpponentID: opponentOf(g, teamID),
			}, nil
		}
	}

	return nil, fmt.Errorf("no upcoming game for team %d in next %d days", teamID, maxDaysAhead)
}

func matchFor(games []models.ScheduledGame, teamID int) *models.ScheduledGame {
	for i := range games {
		if games[i].HomeTeamID == teamID || games[i].VisitorTeamID == teamID {
			return &games[i]
		}
	}
	return nil
}

func opponentOf(g *models.ScheduledGame, teamID int) int {
	if g.HomeTeamID == teamID {
		return g.VisitorTeamID
	}
	return g.HomeTeamID
}
