package gamelog

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

// Required columns for any historical log CSV. Stat columns beyond these are
// picked up automatically when they match models.StatColumns.
var requiredColumns = []string{"TEAM_ID", "GAME_DATE", "WL"}

const dateLayout = "2006-01-02"

var dateLayouts = []string{dateLayout, "2006-01-02T15:04:05", time.RFC3339}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// LoadCSV reads a historical log CSV into game records. The header must contain
// TEAM_ID, GAME_DATE and WL; rows with unparseable dates are dropped with a
// warning rather than failing the load. Records are returned sorted by date.
func LoadCSV(path string) ([]models.GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading log CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("log CSV %s is empty", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("log CSV %s missing required column %s", path, name)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var games []models.GameRecord
	dropped := 0
	for _, row := range rows[1:] {
		date, err := parseDate(field(row, "GAME_DATE"))
		if err != nil {
			dropped++
			continue
		}

		teamID, _ := strconv.Atoi(field(row, "TEAM_ID"))
		matchup := field(row, "MATCHUP")
		wl := field(row, "WL")

		stats := make(map[string]float64, len(models.StatColumns))
		for _, stat := range models.StatColumns {
			if raw := field(row, stat); raw != "" {
				if v, err := strconv.ParseFloat(raw, 64); err == nil {
					stats[stat] = v
				}
			}
		}

		games = append(games, models.GameRecord{
			TeamID:   teamID,
			Season:   field(row, "SEASON"),
			GameDate: date,
			Matchup:  matchup,
			Home:     IsHomeMatchup(matchup),
			Win:      wl == "W" || wl == "1",
			Stats:    stats,
		})
	}
	if dropped > 0 {
		log.Printf("[gamelog] Dropped %d rows with unparseable dates from %s", dropped, path)
	}

	SortByDate(games)
	return games, nil
}

// WriteCSV writes game records to path in the historical log layout.
func WriteCSV(path string, games []models.GameRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating log CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"SEASON", "TEAM_ID", "GAME_DATE", "MATCHUP", "WL"}, models.StatColumns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, g := range games {
		wl := "L"
		if g.Win {
			wl = "W"
		}
		row := []string{
			g.Season,
			strconv.Itoa(g.TeamID),
			g.GameDate.Format(dateLayout),
			g.Matchup,
			wl,
		}
		for _, stat := range models.StatColumns {
			row = append(row, strconv.FormatFloat(g.Stats[stat], 'f', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
