package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Chaospandah/lakers-win-predictor/internal/cache"
	"github.com/Chaospandah/lakers-win-predictor/internal/dataset"
	"github.com/Chaospandah/lakers-win-predictor/internal/gamelog"
	"github.com/Chaospandah/lakers-win-predictor/internal/nba"
)

// Config holds dataset-builder configuration
type Config struct {
	InputCSV   string
	OutputCSV  string
	CacheDir   string
	RedisURL   string // optional; empty disables the Redis cache tier
	TeamID     int
	FetchDelay time.Duration
}

func main() {
	cfg := loadConfig()

	log.Printf("Loading team game log from %s...", cfg.InputCSV)
	games, err := gamelog.LoadCSV(cfg.InputCSV)
	if err != nil {
		log.Fatalf("Loading input CSV: %v", err)
	}
	teamLog := gamelog.FilterTeam(games, cfg.TeamID)
	if len(teamLog) == 0 {
		log.Fatalf("No games for team %d in %s", cfg.TeamID, cfg.InputCSV)
	}
	log.Printf("Team %d: %d games", cfg.TeamID, len(teamLog))

	cacheOpts := []cache.Option{cache.WithFetchDelay(cfg.FetchDelay)}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("Warning: Redis unreachable, continuing without it: %v", err)
		} else {
			log.Println("Connected to Redis")
			cacheOpts = append(cacheOpts, cache.WithRedis(redisClient))
		}
	}

	logCache := cache.New(nba.New(), cfg.CacheDir, cacheOpts...)
	builder := dataset.NewBuilder(logCache, nba.TeamIDByAbbreviation)

	log.Println("Building matchup rows for each game...")
	rows, err := builder.Build(context.Background(), teamLog)
	if err != nil {
		log.Fatalf("Building dataset: %v", err)
	}

	if err := dataset.WriteCSV(cfg.OutputCSV, rows); err != nil {
		log.Fatalf("Writing %s: %v", cfg.OutputCSV, err)
	}

	log.Printf("Matchup dataset saved to %s (%d rows)", cfg.OutputCSV, len(rows))
	if len(builder.UnknownOpponents) > 0 {
		log.Printf("Unknown opponent abbreviations: %v", builder.UnknownOpponents)
	}
}

// loadConfig loads configuration from environment
func loadConfig() Config {
	return Config{
		InputCSV:   getEnv("INPUT_CSV", "data/lakers_past_seasons.csv"),
		OutputCSV:  getEnv("OUTPUT_CSV", "data/lakers_matchup_dataset.csv"),
		CacheDir:   getEnv("CACHE_DIR", "team_game_logs"),
		RedisURL:   getEnv("REDIS_URL", ""),
		TeamID:     getEnvInt("TEAM_ID", nba.LakersTeamID),
		FetchDelay: time.Duration(getEnvInt("FETCH_DELAY_MS", 800)) * time.Millisecond,
	}
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
