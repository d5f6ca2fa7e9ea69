// Package cache memoizes per-(team, season) game logs during batch dataset
// assembly so repeated opponents within a season are never re-fetched.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Chaospandah/lakers-win-predictor/internal/gamelog"
	"github.com/Chaospandah/lakers-win-predictor/internal/metrics"
	"github.com/Chaospandah/lakers-win-predictor/pkg/models"
)

// SeasonLogTTL bounds how long a season log lives in Redis.
const SeasonLogTTL = 24 * time.Hour

// Fetcher retrieves a team's season game log from the upstream API.
type Fetcher interface {
	SeasonLog(ctx context.Context, teamID int, season string) ([]models.GameRecord, error)
}

type cacheKey struct {
	teamID int
	season string
}

// SeasonLogCache resolves (team, season) game logs through tiers: in-memory
// map, per-pair CSV file, optional Redis, then the upstream fetcher. A hit at
// any tier short-circuits the rest. A failed fetch resolves to an empty log,
// which is itself cached in memory so the run degrades to default features
// instead of hammering the API. Sequential use only; no locking.
type SeasonLogCache struct {
	fetcher    Fetcher
	dir        string
	redis      *redis.Client
	fetchDelay time.Duration
	mem        map[cacheKey][]models.GameRecord
}

// Option configures a SeasonLogCache.
type Option func(*SeasonLogCache)

// WithRedis adds a Redis tier between the file cache and the fetcher.
func WithRedis(client *redis.Client) Option {
	return func(c *SeasonLogCache) { c.redis = client }
}

// WithFetchDelay sleeps after each upstream fetch to stay polite to the API.
func WithFetchDelay(d time.Duration) Option {
	return func(c *SeasonLogCache) { c.fetchDelay = d }
}

// New creates a season-log cache writing CSV files under dir. An empty dir
// disables the file tier.
func New(fetcher Fetcher, dir string, opts ...Option) *SeasonLogCache {
	c := &SeasonLogCache{
		fetcher: fetcher,
		dir:     dir,
		mem:     make(map[cacheKey][]models.GameRecord),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SeasonLog returns the game log for (teamID, season), fetching and storing
// it on first use. Never returns an error: upstream failures degrade to an
// empty log, logged but not fatal to the caller's run.
func (c *SeasonLogCache) SeasonLog(ctx context.Context, teamID int, season string) ([]models.GameRecord, error) {
	key := cacheKey{teamID: teamID, season: season}

	if games, ok := c.mem[key]; ok {
		metrics.SeasonLogLookups.WithLabelValues("memory").Inc()
		return games, nil
	}

	if games, ok := c.readFile(key); ok {
		metrics.SeasonLogLookups.WithLabelValues("file").Inc()
		c.mem[key] = games
		return games, nil
	}

	if games, ok := c.readRedis(ctx, key); ok {
		metrics.SeasonLogLookups.WithLabelValues("redis").Inc()
		c.mem[key] = games
		c.writeFile(key, games)
		return games, nil
	}

	log.Printf("[cache] Fetching team %d season %s from API...", teamID, season)
	games, err := c.fetcher.SeasonLog(ctx, teamID, season)
	if err != nil {
		log.Printf("[cache] Error fetching team %d season %s: %v", teamID, season, err)
		metrics.SeasonLogLookups.WithLabelValues("error").Inc()
		c.mem[key] = nil
		return nil, nil
	}
	metrics.SeasonLogLookups.WithLabelValues("fetch").Inc()

	c.mem[key] = games
	c.writeFile(key, games)
	c.writeRedis(ctx, key, games)

	if c.fetchDelay > 0 {
		time.Sleep(c.fetchDelay)
	}
	return games, nil
}

func (c *SeasonLogCache) filePath(key cacheKey) string {
	safeSeason := strings.ReplaceAll(key.season, "-", "_")
	return filepath.Join(c.dir, fmt.Sprintf("%d_%s.csv", key.teamID, safeSeason))
}

func (c *SeasonLogCache) readFile(key cacheKey) ([]models.GameRecord, bool) {
	if c.dir == "" {
		return nil, false
	}
	path := c.filePath(key)
	if _, err := os.Stat(path); err != nil {
		return nil, false
	}
	games, err := gamelog.LoadCSV(path)
	if err != nil {
		log.Printf("[cache] Error reading cache file %s: %v", path, err)
		return nil, false
	}
	return games, true
}

func (c *SeasonLogCache) writeFile(key cacheKey, games []models.GameRecord) {
	if c.dir == "" || len(games) == 0 {
		return
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		log.Printf("[cache] Error creating cache dir %s: %v", c.dir, err)
		return
	}
	if err := gamelog.WriteCSV(c.filePath(key), games); err != nil {
		log.Printf("[cache] Error writing cache file for team %d season %s: %v", key.teamID, key.season, err)
	}
}

func (c *SeasonLogCache) redisKey(key cacheKey) string {
	return fmt.Sprintf("gamelog:season:%d:%s", key.teamID, key.season)
}

func (c *SeasonLogCache) readRedis(ctx context.Context, key cacheKey) ([]models.GameRecord, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, c.redisKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[cache] Redis read failed for team %d season %s: %v", key.teamID, key.season, err)
		}
		return nil, false
	}
	var games []models.GameRecord
	if err := json.Unmarshal([]byte(data), &games); err != nil {
		log.Printf("[cache] Unmarshaling cached log: %v", err)
		return nil, false
	}
	return games, true
}

func (c *SeasonLogCache) writeRedis(ctx context.Context, key cacheKey, games []models.GameRecord) {
	if c.redis == nil || len(games) == 0 {
		return
	}
	data, err := json.Marshal(games)
	if err != nil {
		log.Printf("[cache] Marshaling log for team %d: %v", key.teamID, err)
		return
	}
	if err := c.redis.Set(ctx, c.redisKey(key), data, SeasonLogTTL).Err(); err != nil {
		log.Printf("[cache] Redis write failed for team %d season %s: %v", key.teamID, key.season, err)
	}
}
