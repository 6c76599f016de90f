package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"thaijobscraper/config"
	"thaijobscraper/internal/crawler"
	"thaijobscraper/internal/textmatch"
	"thaijobscraper/logger"
	"thaijobscraper/services/cache"
	"thaijobscraper/services/publisher"
	"thaijobscraper/services/worker"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	logger.Init()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Default.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr == "" || cfg.MemcacheAddr == "none" {
		cacheSvc = cache.NewMemoryService()
		logger.Info("Using in-process cache for block keys")
	} else {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Using memcached at %s for block keys", cfg.MemcacheAddr)
	}

	var pub publisher.Publisher
	if cfg.RedisAddr != "" {
		redisPub, err := publisher.NewRedisPublisher(
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			int64(cfg.RedisStreamMaxLength),
		)
		if err != nil {
			logger.Default.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisPub.Close()
		pub = redisPub
	}

	extractor := textmatch.NewSkillExtractor(textmatch.DefaultSkills)
	matcher := textmatch.NewKeywordMatcher(textmatch.DefaultKeyVariants)

	sources, err := crawler.CreateSources(&cfg, extractor)
	if err != nil {
		logger.Default.Fatal().Err(err).Msg("Failed to create sources")
	}

	orch := crawler.NewOrchestrator(
		sources,
		cfg.Keywords,
		matcher,
		cfg.RequestDelay,
		cacheSvc,
		cfg.BlockTTL,
	)

	w := worker.NewWorker(
		orch,
		extractor.Keys(),
		cfg.EachDir,
		cfg.AllDir,
		pub,
		cfg.CrawlInterval,
	)

	logger.Info("Starting job scraper with %d sources and %d keywords", len(sources), len(cfg.Keywords))

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			logger.Error("Worker stopped: %v", err)
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("Received signal %v, shutting down", sig)
		cancel()
		<-done
	case <-done:
	}

	logger.Info("Shutdown complete")
}
