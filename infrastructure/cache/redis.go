// Package cache provides KeyValueStore implementations: a Redis adapter for
// production, an in-memory store for development and tests, a no-op store for
// degraded mode, and a fail-soft decorator applied at the adapter boundary.
package cache

import (
	"context"
	"time"

	"wayfarer-backend/application/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisConfig holds connection settings for the Redis adapter
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// OpTimeout bounds every cache operation so a slow Redis never stalls
	// the request path beyond direct-store latency
	OpTimeout time.Duration

	// MaxConnectAttempts bounds the startup retry loop
	MaxConnectAttempts int
}

const (
	defaultOpTimeout       = 150 * time.Millisecond
	defaultConnectAttempts = 5
	connectBackoffBase     = 250 * time.Millisecond
	connectBackoffCap      = 8 * time.Second

	// scanCount is the SCAN page size for pattern deletion
	scanCount = 100
)

// RedisStore implements ports.KeyValueStore over a shared go-redis client.
// The client is connection-pooled and safe for concurrent use; no external
// locking is needed.
type RedisStore struct {
	rdb       *redis.Client
	logger    *zap.Logger
	opTimeout time.Duration
}

var _ ports.KeyValueStore = (*RedisStore)(nil)

// ConnectRedis dials Redis with bounded exponential backoff. It returns an
// error only after exhausting every attempt; callers are expected to fall
// back to the no-op store and run without caching rather than fail startup.
func ConnectRedis(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = defaultOpTimeout
	}
	if cfg.MaxConnectAttempts <= 0 {
		cfg.MaxConnectAttempts = defaultConnectAttempts
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			logger.Debug("redis connection established", zap.String("addr", cfg.Addr))
			return nil
		},
	})

	var lastErr error
	backoff := connectBackoffBase
	for attempt := 1; attempt <= cfg.MaxConnectAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = rdb.Ping(pingCtx).Err()
		cancel()

		if lastErr == nil {
			logger.Info("connected to redis",
				zap.String("addr", cfg.Addr),
				zap.Int("attempt", attempt),
			)
			return &RedisStore{rdb: rdb, logger: logger, opTimeout: cfg.OpTimeout}, nil
		}

		logger.Warn("redis connection attempt failed",
			zap.String("addr", cfg.Addr),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)

		if attempt == cfg.MaxConnectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			rdb.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > connectBackoffCap {
			backoff = connectBackoffCap
		}
	}

	rdb.Close()
	return nil, lastErr
}

// Get retrieves the raw value for a key
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value with a TTL
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Delete removes keys. Missing keys are not an error.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.rdb.Del(ctx, keys...).Err()
}

// DeleteMatching scans for keys matching a glob pattern and deletes them in
// batches. The scan cursor snapshots the keyspace: keys created while the
// scan runs may be missed and will age out via TTL instead. Pattern deletion
// gets a longer leash than point operations since it visits many keys.
func (s *RedisStore) DeleteMatching(ctx context.Context, pattern string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*s.opTimeout)
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			s.logger.Debug("pattern delete batch",
				zap.String("pattern", pattern),
				zap.Int("deleted", len(keys)),
			)
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close releases the client's connection pool
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}
