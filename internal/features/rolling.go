// Package features computes rolling-form and schedule-fatigue features for a
// matchup. The same calculator backs both the serving path and the offline
// dataset replay so the two can never drift apart; only the no-history rest
// sentinel differs between them, and it is explicit configuration here.
package features

import (
	"fmt"
	"time"

	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

// RollWindow is the number of most recent games averaged for rolling form.
const RollWindow = 5

// RollingStats are the stats averaged over the rolling window.
var RollingStats = []string{"PTS", "REB", "AST", "STL", "BLK"}

// No-history rest sentinels. The serving path and the dataset replay were
// trained with different defaults; both are preserved as named configuration
// rather than unified, since the model artifacts were fit against them.
const (
	NoHistoryRestServing = 7
	NoHistoryRestDataset = 999
)

// Options configures a rolling-form computation.
type Options struct {
	// Window is the rolling window size. Zero means RollWindow.
	Window int
	// NoHistoryRest is the DAYS_REST value used when the team has no prior
	// games before the cutoff.
	NoHistoryRest int
}

func (o Options) window() int {
	if o.Window > 0 {
		return o.Window
	}
	return RollWindow
}

// Compute derives rolling averages and rest indicators for one team as they
// would have been known strictly before cutoff. The log must be sorted
// ascending by date. Only games dated before the cutoff contribute; the
// target game itself never does. With no prior games
// every average is 0.0, DAYS_REST is the configured sentinel and BACK_TO_BACK
// is 0. With fewer than Window prior games the window shrinks to what exists.
//
// The returned map holds "<STAT>_ROLL<Window>" for each requested stat, plus
// DAYS_REST and BACK_TO_BACK. Pure function of its inputs.
func Compute(log []models.GameRecord, cutoff time.Time, stats []string, opts Options) map[string]float64 {
	window := opts.window()

	var prior []models.GameRecord
	for _, g := range log {
		if g.GameDate.Before(cutoff) {
			prior = append(prior, g)
		}
	}

	out := make(map[string]float64, len(stats)+2)

	if len(prior) == 0 {
		for _, stat := range stats {
			out[rollKey(stat, window)] = 0.0
		}
		out["DAYS_REST"] = float64(opts.NoHistoryRest)
		out["BACK_TO_BACK"] = 0
		return out
	}

	lastN := prior
	if len(lastN) > window {
		lastN = lastN[len(lastN)-window:]
	}

	for _, stat := range stats {
		sum := 0.0
		n := 0
		for _, g := range lastN {
			if v, ok := g.Stat(stat); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			out[rollKey(stat, window)] = 0.0
		} else {
			out[rollKey(stat, window)] = sum / float64(n)
		}
	}

	lastDate := prior[len(prior)-1].GameDate
	daysRest := int(cutoff.Sub(lastDate).Hours() / 24)
	out["DAYS_REST"] = float64(daysRest)
	if daysRest == 1 {
		out["BACK_TO_BACK"] = 1
	} else {
		out["BACK_TO_BACK"] = 0
	}

	return out
}

func rollKey(stat string, window int) string {
	return fmt.Sprintf("%s_ROLL%d", stat, window)
}
