package nba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Chaospandah/lakers-win-predictor/internal/gamelog"
	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

const (
	// BaseURL is the NBA stats API root.
	BaseURL = "https://stats.nba.com/stats"

	regularSeason = "Regular Season"
)

// Client handles NBA stats API requests
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New creates a new NBA stats API client
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   BaseURL,
		userAgent: "Mozilla/5.0 (compatible; LakersPredictorBot/1.0)",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statsResponse is the generic stats API envelope: named result sets, each a
// header list plus row tuples.
type statsResponse struct {
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

func (rs resultSet) columnIndex() map[string]int {
	idx := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		idx[h] = i
	}
	return idx
}

func cellString(row []interface{}, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func cellFloat(row []interface{}, idx map[string]int, name string) (float64, bool) {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return 0, false
	}
	if v, ok := row[i].(float64); ok {
		return v, true
	}
	return 0, false
}

// LeagueGameLog fetches the full-league team game log for a season label like
// "2023-24". One record is returned per team-game.
func (c *Client) LeagueGameLog(ctx context.Context, season string) ([]models.GameRecord, error) {
	params := url.Values{}
	params.Set("Counter", "0")
	params.Set("Direction", "ASC")
	params.Set("LeagueID", "00")
	params.Set("PlayerOrTeam", "T")
	params.Set("Season", season)
	params.Set("SeasonType", regularSeason)
	params.Set("Sorter", "DATE")

	resp, err := c.fetch(ctx, fmt.Sprintf("%s/leaguegamelog?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	rs, err := findResultSet(resp, "LeagueGameLog")
	if err != nil {
		return nil, err
	}

	idx := rs.columnIndex()
	games := make([]models.GameRecord, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		date, err := time.Parse("2006-01-02", cellString(row, idx, "GAME_DATE"))
		if err != nil {
			continue
		}

		teamID, _ := cellFloat(row, idx, "TEAM_ID")
		matchup := cellString(row, idx, "MATCHUP")

		stats := make(map[string]float64, len(models.StatColumns))
		for _, stat := range models.StatColumns {
			if v, ok := cellFloat(row, idx, stat); ok {
				stats[stat] = v
			}
		}

		games = append(games, models.GameRecord{
			TeamID:   int(teamID),
			Season:   season,
			GameDate: date.UTC(),
			Matchup:  matchup,
			Home:     gamelog.IsHomeMatchup(matchup),
			Win:      cellString(row, idx, "WL") == "W",
			Stats:    stats,
		})
	}

	gamelog.SortByDate(games)
	return games, nil
}

// SeasonLog fetches one team's game log for a season.
func (c *Client) SeasonLog(ctx context.Context, teamID int, season string) ([]models.GameRecord, error) {
	games, err := c.LeagueGameLog(ctx, season)
	if err != nil {
		return nil, err
	}
	return gamelog.FilterTeam(games, teamID), nil
}

// Scoreboard fetches the league scoreboard for one calendar date.
func (c *Client) Scoreboard(ctx context.Context, date time.Time) ([]models.ScheduledGame, error) {
	params := url.Values{}
	params.Set("DayOffset", "0")
	params.Set("GameDate", date.Format("01/02/2006"))
	params.Set("LeagueID", "00")

	resp, err := c.fetch(ctx, fmt.Sprintf("%s/scoreboardv2?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	rs, err := findResultSet(resp, "GameHeader")
	if err != nil {
		return nil, err
	}

	idx := rs.columnIndex()
	games := make([]models.ScheduledGame, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		homeID, _ := cellFloat(row, idx, "HOME_TEAM_ID")
		visitorID, _ := cellFloat(row, idx, "VISITOR_TEAM_ID")
		games = append(games, models.ScheduledGame{
			GameID:        cellString(row, idx, "GAME_ID"),
			Date:          date,
			HomeTeamID:    int(homeID),
			VisitorTeamID: int(visitorID),
		})
	}
	return games, nil
}

func findResultSet(resp *statsResponse, name string) (*resultSet, error) {
	for i := range resp.ResultSets {
		if resp.ResultSets[i].Name == name {
			return &resp.ResultSets[i], nil
		}
	}
	return nil, fmt.Errorf("result set %s not found in response", name)
}

// fetch makes an HTTP GET request and returns the parsed stats envelope
func (c *Client) fetch(ctx context.Context, url string) (*statsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("NBA stats API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}
