package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/verte-zerg/kanatype/internal/model"
)

const redisPingTimeout = 5 * time.Second

// saveMaxScript writes ARGV[1] unless KEYS[1] already holds a number at least
// as large, and returns the value left in place.
var saveMaxScript = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]))
local score = tonumber(ARGV[1])
if cur and cur >= score then
	return cur
end
redis.call('SET', KEYS[1], ARGV[1])
return score
`)

// RedisStore keeps the high score under a plain string key.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// OpenRedis connects and pings the configured server.
func OpenRedis(ctx context.Context, cfg model.HighScoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return NewRedisStore(client), nil
}

// LoadHighScore reads the stored score; a missing key is 0.
func (rs *RedisStore) LoadHighScore(ctx context.Context) (int, error) {
	raw, err := rs.client.Get(ctx, HighScoreKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return parseScore(raw)
}

// SaveHighScore stores the score without expiry unless a higher one is
// already stored. The compare and set run atomically as a script.
func (rs *RedisStore) SaveHighScore(ctx context.Context, score int) (int, error) {
	best, err := saveMaxScript.Run(ctx, rs.client, []string{HighScoreKey}, score).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to save high score: %w", err)
	}
	return best, nil
}

// ResetHighScore stores 0.
func (rs *RedisStore) ResetHighScore(ctx context.Context) error {
	return rs.client.Set(ctx, HighScoreKey, 0, 0).Err()
}

// Close closes the client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
