package publisher

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"thaijobscraper/logger"
)

// RedisPublisher publishes job postings to Redis streams. Postings are
// spread across streamCount streams under a common prefix so consumers can
// shard by stream key.
type RedisPublisher struct {
	client       *redis.Client
	streamPrefix string
	streamCount  int
	maxLength    int64
	log          *logger.Logger
}

// NewRedisPublisher creates a Redis stream publisher and verifies the
// connection.
func NewRedisPublisher(addr string, db int, streamPrefix string, streamCount int, maxLength int64) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	if streamCount < 1 {
		streamCount = 1
	}

	return &RedisPublisher{
		client:       client,
		streamPrefix: streamPrefix,
		streamCount:  streamCount,
		maxLength:    maxLength,
		log:          logger.ForPublisher(),
	}, nil
}

func (p *RedisPublisher) streamKey() string {
	return fmt.Sprintf("%s:%d", p.streamPrefix, rand.Intn(p.streamCount))
}

// Publish appends one posting to a randomly chosen stream.
func (p *RedisPublisher) Publish(source string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream := p.streamKey()
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"source":  source,
			"posting": payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish to stream %s: %w", stream, err)
	}

	p.log.Debug().Str("stream", stream).Str("source", source).Msg("Published job posting")
	return nil
}

// TrimStreams trims every stream under the prefix to the configured
// maximum length.
func (p *RedisPublisher) TrimStreams() error {
	if p.maxLength <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for i := 0; i < p.streamCount; i++ {
		stream := fmt.Sprintf("%s:%d", p.streamPrefix, i)
		if err := p.client.XTrimMaxLen(ctx, stream, p.maxLength).Err(); err != nil {
			return fmt.Errorf("failed to trim stream %s: %w", stream, err)
		}
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
