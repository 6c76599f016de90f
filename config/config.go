package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"thaijobscraper/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Search configuration
	Keywords []string
	MaxPages int

	// Politeness delay applied between every pair of outbound requests
	RequestDelay time.Duration

	// How long a source stays skipped after repeated blocking
	BlockTTL time.Duration

	// Output directories for per-source and merged CSV snapshots
	EachDir string
	AllDir  string

	// Optional outbound proxy for the JobsDB source
	JobsDBProxyURL string

	// Memcache configuration (source block keys)
	MemcacheAddr string

	// Redis configuration (optional posting stream feed)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Worker configuration; zero interval means a single run
	CrawlInterval time.Duration

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "10"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	maxPages, _ := strconv.Atoi(getEnv("MAX_PAGES", "50"))
	delayMs, _ := strconv.Atoi(getEnv("REQUEST_DELAY_MS", "500"))
	blockTTL, _ := strconv.Atoi(getEnv("BLOCK_TTL_SECONDS", "1800"))
	crawlInterval, _ := strconv.Atoi(getEnv("CRAWL_INTERVAL_SECONDS", "0"))

	return Config{
		Keywords:             splitKeywords(getEnv("SEARCH_KEYWORDS", "Data Scientist,Data Analyst,Data Engineer")),
		MaxPages:             maxPages,
		RequestDelay:         time.Duration(delayMs) * time.Millisecond,
		BlockTTL:             time.Duration(blockTTL) * time.Second,
		EachDir:              getEnv("SCRAPED_EACH_DIR", "data/scraped_each"),
		AllDir:               getEnv("SCRAPED_ALL_DIR", "data/scraped_all"),
		JobsDBProxyURL:       strings.TrimSpace(os.Getenv("JOBSDB_PROXY_URL")),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "jobpostings"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,
		CrawlInterval:        time.Duration(crawlInterval) * time.Second,
		Environment:          getEnv("SCRAPER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if len(c.Keywords) == 0 {
		return errors.NewConfiguration("no search keywords configured", nil)
	}
	if c.MaxPages <= 0 {
		return errors.NewConfiguration("MAX_PAGES must be positive", nil)
	}
	if c.RequestDelay < 0 {
		return errors.NewConfiguration("REQUEST_DELAY_MS must not be negative", nil)
	}
	if c.RedisAddr != "" && c.RedisStreamCount <= 0 {
		return errors.NewConfiguration("REDIS_STREAM_COUNT must be positive when Redis is enabled", nil)
	}
	return nil
}

func splitKeywords(raw string) []string {
	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
