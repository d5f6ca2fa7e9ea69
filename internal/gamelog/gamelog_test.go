package gamelog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Chaospandah/lakers-win-predictor/internal/gamelog"
	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

func TestParseOpponentAbbr(t *testing.T) {
	tests := []struct {
		matchup string
		want    string
	}{
		{"LAL vs. BOS", "BOS"},
		{"LAL @ GSW", "GSW"},
		{"LAL vs BOS", "BOS"},
		{"lal @ phx", "PHX"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.matchup, func(t *testing.T) {
			if got := gamelog.ParseOpponentAbbr(tt.matchup); got != tt.want {
				t.Errorf("ParseOpponentAbbr(%q) = %q, want %q", tt.matchup, got, tt.want)
			}
		})
	}
}

func TestIsHomeMatchup(t *testing.T) {
	if !gamelog.IsHomeMatchup("LAL vs. BOS") {
		t.Error("vs. matchup should be home")
	}
	if gamelog.IsHomeMatchup("LAL @ BOS") {
		t.Error("@ matchup should be away")
	}
}

func TestFilterTeamSortsByDate(t *testing.T) {
	games := []models.GameRecord{
		{TeamID: 1, GameDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{TeamID: 2, GameDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{TeamID: 1, GameDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	got := gamelog.FilterTeam(games, 1)
	if len(got) != 2 {
		t.Fatalf("got %d games, want 2", len(got))
	}
	if !got[0].GameDate.Before(got[1].GameDate) {
		t.Error("filtered games not sorted ascending by date")
	}
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"SEASON,TEAM_ID,GAME_DATE,MATCHUP,WL,PTS,REB,AST,STL,BLK,FG_PCT,FG3_PCT,FT_PCT,TOV",
		"2023-24,1610612747,2024-01-03,LAL @ BOS,L,110,42,24,6,4,0.48,0.35,0.8,14",
		"2023-24,1610612747,2024-01-01,LAL vs. GSW,W,120,45,28,8,5,0.52,0.40,0.75,12",
		"2023-24,1610612747,not-a-date,LAL vs. PHX,W,100,40,20,5,3,0.5,0.3,0.7,10",
	}, "\n"))

	games, err := gamelog.LoadCSV(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(games) != 2 {
		t.Fatalf("got %d games, want 2 (unparseable date dropped)", len(games))
	}
	if !games[0].GameDate.Before(games[1].GameDate) {
		t.Error("games not sorted ascending by date")
	}

	first := games[0]
	if !first.Win || !first.Home || first.TeamID != 1610612747 {
		t.Errorf("first game parsed wrong: %+v", first)
	}
	if pts, _ := first.Stat("PTS"); pts != 120 {
		t.Errorf("PTS = %f, want 120", pts)
	}
	if tov, _ := first.Stat("TOV"); tov != 12 {
		t.Errorf("TOV = %f, want 12", tov)
	}
}

func TestLoadCSVMissingRequiredColumn(t *testing.T) {
	path := writeTempCSV(t, "SEASON,GAME_DATE,WL\n2023-24,2024-01-01,W\n")

	_, err := gamelog.LoadCSV(path)
	if err == nil {
		t.Fatal("expected error for missing TEAM_ID column")
	}
	if !strings.Contains(err.Error(), "TEAM_ID") {
		t.Errorf("error %q does not name the missing column", err.Error())
	}
}

func TestWriteAndLoadCSVRoundTrip(t *testing.T) {
	games := []models.GameRecord{
		{
			TeamID:   1610612747,
			Season:   "2023-24",
			GameDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Matchup:  "LAL vs. BOS",
			Home:     true,
			Win:      true,
			Stats:    map[string]float64{"PTS": 115, "REB": 44, "AST": 27, "STL": 9, "BLK": 4, "FG_PCT": 0.49, "FG3_PCT": 0.38, "FT_PCT": 0.81, "TOV": 11},
		},
	}

	path := filepath.Join(t.TempDir(), "roundtrip.csv")
	if err := gamelog.WriteCSV(path, games); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	loaded, err := gamelog.LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("got %d games, want 1", len(loaded))
	}

	got := loaded[0]
	if got.TeamID != games[0].TeamID || !got.Win || got.Matchup != games[0].Matchup || !got.GameDate.Equal(games[0].GameDate) {
		t.Errorf("round trip changed record: %+v", got)
	}
	for _, stat := range models.StatColumns {
		if got.Stats[stat] != games[0].Stats[stat] {
			t.Errorf("stat %s = %f, want %f", stat, got.Stats[stat], games[0].Stats[stat])
		}
	}
}
