package stemmer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/resilience"
)

// Store is a remote stem tier shared between runs, satisfied by
// *redis.Client.
type Store interface {
	GetStem(ctx context.Context, language, word string) (string, bool, error)
	PutStem(ctx context.Context, language, word, stem string) error
}

// CacheOptions configures the remote tier of a Cached stemmer.
type CacheOptions struct {
	Store   Store
	Timeout time.Duration
	Breaker *resilience.CircuitBreaker
	Metrics *metrics.Metrics
}

// Cached memoises a Stemmer in process and, when a Store is configured, in
// a remote cache. Remote failures never surface: the stem is computed
// locally instead.
type Cached struct {
	next     Stemmer
	language string
	opts     CacheOptions
	mu       sync.Mutex
	local    map[string]string
	logger   *slog.Logger
}

// NewCached wraps next. language labels cache keys and metrics.
func NewCached(next Stemmer, language string, opts CacheOptions) *Cached {
	if opts.Store != nil && opts.Breaker == nil {
		opts.Breaker = resilience.NewCircuitBreaker("stem-cache", resilience.CircuitBreakerConfig{})
	}
	return &Cached{
		next:     next,
		language: language,
		opts:     opts,
		local:    make(map[string]string),
		logger:   slog.Default().With("component", "stem-cache", "language", language),
	}
}

func (c *Cached) Stem(word string) string {
	c.mu.Lock()
	stem, ok := c.local[word]
	c.mu.Unlock()
	if ok {
		c.count("local_hit")
		return stem
	}

	stem, ok = c.remoteGet(word)
	if !ok {
		stem = c.next.Stem(word)
		c.remoteSet(word, stem)
	}

	c.mu.Lock()
	c.local[word] = stem
	c.mu.Unlock()
	return stem
}

// Len returns the number of words memoised in process.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.local)
}

func (c *Cached) remoteGet(word string) (string, bool) {
	if c.opts.Store == nil {
		c.count("miss")
		return "", false
	}
	var (
		stem  string
		found bool
	)
	err := c.opts.Breaker.Execute(func() error {
		return resilience.WithTimeout(context.Background(), c.opts.Timeout, "stem cache get", func(ctx context.Context) error {
			var err error
			stem, found, err = c.opts.Store.GetStem(ctx, c.language, word)
			return err
		})
	})
	if err != nil {
		c.count("error")
		c.logger.Debug("stem cache get failed", "word", word, "error", err)
		return "", false
	}
	if !found {
		c.count("miss")
		return "", false
	}
	c.count("remote_hit")
	return stem, true
}

func (c *Cached) remoteSet(word, stem string) {
	if c.opts.Store == nil {
		return
	}
	err := c.opts.Breaker.Execute(func() error {
		return resilience.WithTimeout(context.Background(), c.opts.Timeout, "stem cache set", func(ctx context.Context) error {
			return c.opts.Store.PutStem(ctx, c.language, word, stem)
		})
	})
	if err != nil {
		c.logger.Debug("stem cache set failed", "word", word, "error", err)
	}
}

func (c *Cached) count(result string) {
	if c.opts.Metrics == nil {
		return
	}
	c.opts.Metrics.StemCacheLookups.WithLabelValues(c.language, result).Inc()
}
