package dataset_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Chaospandah/lakers-win-predictor/internal/dataset"
	"github.com/Chaospandah/lakers-win-predictor/internal/features"
	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

const (
	lakersID  = 1610612747
	celticsID = 1610612738
)

var teamIDs = map[string]int{"BOS": celticsID, "LAL": lakersID}

func resolve(abbr string) (int, bool) {
	id, ok := teamIDs[abbr]
	return id, ok
}

// fakeSource serves canned season logs and records lookups.
type fakeSource struct {
	logs  map[int][]models.GameRecord
	calls int
	err   error
}

func (f *fakeSource) SeasonLog(ctx context.Context, teamID int, season string) ([]models.GameRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.logs[teamID], nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func lakersGame(date, matchup string, win bool, pts float64) models.GameRecord {
	return models.GameRecord{
		TeamID:   lakersID,
		Season:   "2023-24",
		GameDate: day(date),
		Matchup:  matchup,
		Home:     matchup == "LAL vs. BOS",
		Win:      win,
		Stats:    map[string]float64{"PTS": pts, "REB": 40, "AST": 25, "STL": 7, "BLK": 5},
	}
}

func celticsLog() []models.GameRecord {
	return []models.GameRecord{
		{TeamID: celticsID, Season: "2023-24", GameDate: day("2024-01-01"), Stats: map[string]float64{"PTS": 120, "REB": 44, "AST": 26, "STL": 8, "BLK": 6}},
		{TeamID: celticsID, Season: "2023-24", GameDate: day("2024-01-03"), Stats: map[string]float64{"PTS": 130, "REB": 44, "AST": 26, "STL": 8, "BLK": 6}},
	}
}

func TestBuildReplaysHistoryChronologically(t *testing.T) {
	source := &fakeSource{logs: map[int][]models.GameRecord{celticsID: celticsLog()}}
	builder := dataset.NewBuilder(source, resolve)

	teamLog := []models.GameRecord{
		lakersGame("2024-01-02", "LAL vs. BOS", true, 100),
		lakersGame("2024-01-04", "LAL @ BOS", false, 110),
	}

	rows, err := builder.Build(context.Background(), teamLog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first, second := rows[0], rows[1]
	if !first.GameDate.Before(second.GameDate) {
		t.Error("rows not in chronological order")
	}
	if first.Label != 1 || second.Label != 0 {
		t.Errorf("labels = %d,%d, want 1,0", first.Label, second.Label)
	}
	if first.Features["HOME"] != 1 || second.Features["HOME"] != 0 {
		t.Errorf("HOME flags = %f,%f, want 1,0", first.Features["HOME"], second.Features["HOME"])
	}

	// First game has no prior own history: dataset sentinel, zero averages.
	if first.Features["L_PTS_ROLL5"] != 0 {
		t.Errorf("first game L_PTS_ROLL5 = %f, want 0 (no prior games)", first.Features["L_PTS_ROLL5"])
	}
	if first.Features["L_DAYS_REST"] != float64(features.NoHistoryRestDataset) {
		t.Errorf("first game L_DAYS_REST = %f, want %d", first.Features["L_DAYS_REST"], features.NoHistoryRestDataset)
	}

	// Second game sees exactly the first game, never itself.
	if second.Features["L_PTS_ROLL5"] != 100 {
		t.Errorf("second game L_PTS_ROLL5 = %f, want 100 (current game excluded)", second.Features["L_PTS_ROLL5"])
	}
	if second.Features["L_DAYS_REST"] != 2 {
		t.Errorf("second game L_DAYS_REST = %f, want 2", second.Features["L_DAYS_REST"])
	}

	// Opponent form as of each game date.
	if first.Features["O_PTS_ROLL5"] != 120 {
		t.Errorf("first game O_PTS_ROLL5 = %f, want 120", first.Features["O_PTS_ROLL5"])
	}
	if second.Features["O_PTS_ROLL5"] != 125 {
		t.Errorf("second game O_PTS_ROLL5 = %f, want 125", second.Features["O_PTS_ROLL5"])
	}
	if second.Features["O_BACK_TO_BACK"] != 1 {
		t.Errorf("second game O_BACK_TO_BACK = %f, want 1 (Celtics played 2024-01-03)", second.Features["O_BACK_TO_BACK"])
	}
}

func TestBuildUnknownOpponentZeroesFeatures(t *testing.T) {
	source := &fakeSource{logs: map[int][]models.GameRecord{}}
	builder := dataset.NewBuilder(source, resolve)

	teamLog := []models.GameRecord{lakersGame("2024-01-02", "LAL vs. XXX", true, 100)}

	rows, err := builder.Build(context.Background(), teamLog)
	if err != nil {
		t.Fatalf("unknown opponent must not abort the run: %v", err)
	}

	row := rows[0]
	if row.Features["O_PTS_ROLL5"] != 0 {
		t.Errorf("O_PTS_ROLL5 = %f, want 0", row.Features["O_PTS_ROLL5"])
	}
	if row.Features["O_DAYS_REST"] != float64(features.NoHistoryRestDataset) {
		t.Errorf("O_DAYS_REST = %f, want %d", row.Features["O_DAYS_REST"], features.NoHistoryRestDataset)
	}
	if source.calls != 0 {
		t.Errorf("source called %d times for an unresolvable opponent, want 0", source.calls)
	}
	if len(builder.UnknownOpponents) != 1 || builder.UnknownOpponents[0] != "XXX" {
		t.Errorf("UnknownOpponents = %v, want [XXX]", builder.UnknownOpponents)
	}
}

func TestBuildOpponentFetchFailureDegradesToDefaults(t *testing.T) {
	source := &fakeSource{err: errors.New("upstream down")}
	builder := dataset.NewBuilder(source, resolve)

	teamLog := []models.GameRecord{lakersGame("2024-01-02", "LAL vs. BOS", false, 100)}

	rows, err := builder.Build(context.Background(), teamLog)
	if err != nil {
		t.Fatalf("fetch failure must not abort the run: %v", err)
	}
	if rows[0].Features["O_PTS_ROLL5"] != 0 {
		t.Errorf("O_PTS_ROLL5 = %f, want 0 after fetch failure", rows[0].Features["O_PTS_ROLL5"])
	}
}

func TestBuildEmptyLogFails(t *testing.T) {
	builder := dataset.NewBuilder(&fakeSource{}, resolve)
	if _, err := builder.Build(context.Background(), nil); err == nil {
		t.Error("expected error for empty team log")
	}
}

func TestBuildRowHasFullFeatureShape(t *testing.T) {
	source := &fakeSource{logs: map[int][]models.GameRecord{celticsID: celticsLog()}}
	builder := dataset.NewBuilder(source, resolve)

	rows, err := builder.Build(context.Background(), []models.GameRecord{lakersGame("2024-01-02", "LAL vs. BOS", true, 100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, col := range features.FeatureColumns {
		if _, ok := rows[0].Features[col]; !ok {
			t.Errorf("row missing feature column %s", col)
		}
	}
}
