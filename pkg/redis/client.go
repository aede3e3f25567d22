// Package redis stores stems in Redis so that separate lexfreq runs can share
// the results of stemming.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/config"
)

const pingTimeout = 2 * time.Second

// Client is a stem store. Keys are "<prefix><language>:<word>" and expire
// after the configured TTL.
type Client struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewClient connects to Redis and verifies the connection with a PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		ClientName:   "lexfreq",
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return &Client{rdb: rdb, prefix: cfg.KeyPrefix, ttl: cfg.CacheTTL}, nil
}

// Key returns the Redis key holding the stem of word.
func Key(prefix, language, word string) string {
	return prefix + language + ":" + word
}

// GetStem returns the cached stem of word. A missing key is reported as
// found == false with a nil error.
func (c *Client) GetStem(ctx context.Context, language, word string) (stem string, found bool, err error) {
	stem, err = c.rdb.Get(ctx, Key(c.prefix, language, word)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return stem, true, nil
}

// PutStem caches the stem of word.
func (c *Client) PutStem(ctx context.Context, language, word, stem string) error {
	return c.rdb.Set(ctx, Key(c.prefix, language, word), stem, c.ttl).Err()
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
