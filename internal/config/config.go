package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/Chaospandah/lakers-win-predictor/internal/nba"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// DataConfig holds artifact and historical-log locations
type DataConfig struct {
	ArtifactsDir string
	HistoryCSV   string
}

// Config holds all prediction-service configuration
type Config struct {
	Server              ServerConfig
	Data                DataConfig
	TeamID              int
	ScheduleHorizonDays int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           getEnv("SERVER_ADDR", ":8080"),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		},
		Data: DataConfig{
			ArtifactsDir: getEnv("ARTIFACTS_DIR", "data"),
			HistoryCSV:   getEnv("HISTORY_CSV", "data/all_teams_past_seasons.csv"),
		},
		TeamID:              getEnvInt("TEAM_ID", nba.LakersTeamID),
		ScheduleHorizonDays: getEnvInt("SCHEDULE_HORIZON_DAYS", 30),
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

// getEnv gets an environment variable or returns a default value
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
