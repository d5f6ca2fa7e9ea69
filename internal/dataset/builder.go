// Package dataset replays a team's game history into a labeled training
// table, computing each game's features exactly as the serving path would
// have seen them on that game's date.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/Chaospandah/lakers-win-predictor/internal/features"
	"github.com/Chaospandah/lakers-win-predictor/internal/gamelog"
	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

// SeasonLogSource provides a team's game log for one season. Implemented by
// the season-log cache for real runs.
type SeasonLogSource interface {
	SeasonLog(ctx context.Context, teamID int, season string) ([]models.GameRecord, error)
}

// Row is one labeled training example: the matchup features for one historical
// game plus its outcome.
type Row struct {
	GameDate time.Time
	Season   string
	Home     int
	Label    int
	Features map[string]float64
}

// Columns is the training CSV header. GAME_DATE, SEASON and WL are metadata;
// the remainder matches the feature vector order the model is fit with.
var Columns = append([]string{"GAME_DATE", "SEASON", "WL"}, features.FeatureColumns...)

// Builder assembles the historical matchup dataset for one acting team.
type Builder struct {
	source SeasonLogSource
	// resolveTeamID maps an opponent abbreviation to its team ID.
	resolveTeamID func(abbr string) (int, bool)

	// UnknownOpponents collects abbreviations that could not be resolved
	// during the last Build, for reporting.
	UnknownOpponents []string
}

// NewBuilder creates a dataset builder.
func NewBuilder(source SeasonLogSource, resolveTeamID func(abbr string) (int, bool)) *Builder {
	return &Builder{
		source:        source,
		resolveTeamID: resolveTeamID,
	}
}

// Build produces one row per game of teamLog, in chronological order. The
// acting team's own features use its log strictly before each game; opponent
// features come from the opponent's season log via the source. An unknown
// opponent abbreviation or an unavailable opponent log zeroes that side's
// features rather than failing the row.
func (b *Builder) Build(ctx context.Context, teamLog []models.GameRecord) ([]Row, error) {
	if len(teamLog) == 0 {
		return nil, fmt.Errorf("empty team game log")
	}

	ordered := make([]models.GameRecord, len(teamLog))
	copy(ordered, teamLog)
	gamelog.SortByDate(ordered)

	opts := features.Options{NoHistoryRest: features.NoHistoryRestDataset}
	unknown := make(map[string]bool)

	rows := make([]Row, 0, len(ordered))
	for i, game := range ordered {
		feats := make(map[string]float64, len(features.FeatureColumns))

		feats["HOME"] = 0
		if game.Home {
			feats["HOME"] = 1
		}

		// Own form from the games before this one; the current game never
		// contributes to its own features.
		own := features.Compute(ordered, game.GameDate, features.RollingStats, opts)
		feats["L_BACK_TO_BACK"] = own["BACK_TO_BACK"]
		feats["L_DAYS_REST"] = own["DAYS_REST"]
		for _, stat := range features.RollingStats {
			feats["L_"+stat+"_ROLL5"] = own[stat+"_ROLL5"]
		}

		opp := b.opponentFeatures(ctx, game, opts)
		for _, stat := range features.RollingStats {
			feats["O_"+stat+"_ROLL5"] = opp[stat+"_ROLL5"]
		}
		feats["O_BACK_TO_BACK"] = opp["BACK_TO_BACK"]
		feats["O_DAYS_REST"] = opp["DAYS_REST"]

		if abbr := gamelog.ParseOpponentAbbr(game.Matchup); abbr != "" {
			if _, ok := b.resolveTeamID(abbr); !ok {
				unknown[abbr] = true
			}
		}

		rows = append(rows, Row{
			GameDate: game.GameDate,
			Season:   game.Season,
			Home:     int(feats["HOME"]),
			Label:    game.Label(),
			Features: feats,
		})

		if (i+1)%25 == 0 || i+1 == len(ordered) {
			log.Printf("[dataset] Processed %d/%d games", i+1, len(ordered))
		}
	}

	b.UnknownOpponents = b.UnknownOpponents[:0]
	for abbr := range unknown {
		b.UnknownOpponents = append(b.UnknownOpponents, abbr)
	}
	sort.Strings(b.UnknownOpponents)
	if len(b.UnknownOpponents) > 0 {
		log.Printf("[dataset] Warning: unknown opponent abbreviations: %v (their rows get zeroed opponent features)", b.UnknownOpponents)
	}

	return rows, nil
}

// opponentFeatures computes the opponent side of one game, degrading to the
// documented defaults when the opponent is unknown or its log is unavailable.
func (b *Builder) opponentFeatures(ctx context.Context, game models.GameRecord, opts features.Options) map[string]float64 {
	defaults := make(map[string]float64, len(features.RollingStats)+2)
	for _, stat := range features.RollingStats {
		defaults[stat+"_ROLL5"] = 0.0
	}
	defaults["BACK_TO_BACK"] = 0
	defaults["DAYS_REST"] = float64(features.NoHistoryRestDataset)

	abbr := gamelog.ParseOpponentAbbr(game.Matchup)
	oppID, ok := b.resolveTeamID(abbr)
	if !ok {
		return defaults
	}

	oppLog, err := b.source.SeasonLog(ctx, oppID, game.Season)
	if err != nil {
		log.Printf("[dataset] Opponent log unavailable for %s (%s): %v", abbr, game.Season, err)
		return defaults
	}
	if len(oppLog) == 0 {
		return defaults
	}

	return features.Compute(oppLog, game.GameDate, features.RollingStats, opts)
}

// WriteCSV writes rows to path in the Columns layout.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.GameDate.Format("2006-01-02"),
			row.Season,
			strconv.Itoa(row.Label),
		}
		for _, col := range features.FeatureColumns {
			record = append(record, strconv.FormatFloat(row.Features[col], 'f', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
