package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Chaospandah/lakers-win-predictor/internal/gamelog"
	"github.com/Chaospandah/lakers-win-predictor/internal/nba"
	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

// Config holds collector configuration
type Config struct {
	Seasons    []string
	TeamID     int // 0 collects every team
	OutputCSV  string
	FetchDelay time.Duration
}

func main() {
	cfg := loadConfig()

	log.Printf("Collecting %d seasons into %s...", len(cfg.Seasons), cfg.OutputCSV)

	client := nba.New()
	ctx := context.Background()

	var combined []models.GameRecord
	for i, season := range cfg.Seasons {
		log.Printf("Fetching season %s...", season)

		games, err := client.LeagueGameLog(ctx, season)
		if err != nil {
			log.Fatalf("Fetching season %s: %v", season, err)
		}
		if cfg.TeamID != 0 {
			games = gamelog.FilterTeam(games, cfg.TeamID)
		}
		log.Printf("Season %s: %d game records", season, len(games))
		combined = append(combined, games...)

		// Politeness delay between seasons; the stats API rate-limits hard.
		if i < len(cfg.Seasons)-1 {
			time.Sleep(cfg.FetchDelay)
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.OutputCSV), 0o755); err != nil {
		log.Fatalf("Creating output dir: %v", err)
	}
	if err := gamelog.WriteCSV(cfg.OutputCSV, combined); err != nil {
		log.Fatalf("Writing %s: %v", cfg.OutputCSV, err)
	}

	log.Printf("Saved %d game records to %s", len(combined), cfg.OutputCSV)
}

// loadConfig loads configuration from environment
func loadConfig() Config {
	return Config{
		Seasons:    splitList(getEnv("SEASONS", "2021-22,2022-23,2023-24,2024-25,2025-26")),
		TeamID:     getEnvInt("TEAM_ID", 0),
		OutputCSV:  getEnv("OUTPUT_CSV", "data/all_teams_past_seasons.csv"),
		FetchDelay: time.Duration(getEnvInt("FETCH_DELAY_MS", 1200)) * time.Millisecond,
	}
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
