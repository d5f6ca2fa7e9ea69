package features

import (
	"time"

	"github.com/Chaospandah/lakers-win-predictor/internal/gamelog"
	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

// FeatureColumns is the canonical order of the 15-element matchup feature
// vector. This order is a hard contract with the trained model: changing it
// without retraining silently corrupts predictions.
var FeatureColumns = []string{
	"HOME",
	"L_BACK_TO_BACK",
	"L_DAYS_REST",
	"L_PTS_ROLL5",
	"L_REB_ROLL5",
	"L_AST_ROLL5",
	"L_STL_ROLL5",
	"L_BLK_ROLL5",
	"O_PTS_ROLL5",
	"O_REB_ROLL5",
	"O_AST_ROLL5",
	"O_STL_ROLL5",
	"O_BLK_ROLL5",
	"O_BACK_TO_BACK",
	"O_DAYS_REST",
}

// BuildMatchupFeatures assembles the feature vector for one game between
// teamID and opponentID on gameDate, using only games recorded strictly
// before gameDate on either side. allGames is the full multi-team historical
// log. Missing history degrades to the documented defaults, never an error.
// The returned slice follows FeatureColumns exactly.
func BuildMatchupFeatures(allGames []models.GameRecord, gameDate time.Time, teamID, opponentID int, home bool) []float64 {
	opts := Options{NoHistoryRest: NoHistoryRestServing}

	teamFeats := Compute(gamelog.FilterTeam(allGames, teamID), gameDate, RollingStats, opts)
	oppFeats := Compute(gamelog.FilterTeam(allGames, opponentID), gameDate, RollingStats, opts)

	homeFlag := 0.0
	if home {
		homeFlag = 1.0
	}

	return []float64{
		homeFlag,
		teamFeats["BACK_TO_BACK"],
		teamFeats["DAYS_REST"],
		teamFeats["PTS_ROLL5"],
		teamFeats["REB_ROLL5"],
		teamFeats["AST_ROLL5"],
		teamFeats["STL_ROLL5"],
		teamFeats["BLK_ROLL5"],
		oppFeats["PTS_ROLL5"],
		oppFeats["REB_ROLL5"],
		oppFeats["AST_ROLL5"],
		oppFeats["STL_ROLL5"],
		oppFeats["BLK_ROLL5"],
		oppFeats["BACK_TO_BACK"],
		oppFeats["DAYS_REST"],
	}
}
