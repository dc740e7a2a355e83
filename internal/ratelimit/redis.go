package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter shares counters across replicas. Each window is a key that
// is INCRed per request and expires after the window duration.
type RedisLimiter struct {
	client   rueidis.Client
	prefix   string
	limit    int64
	duration time.Duration
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, duration time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		prefix:   prefix,
		limit:    int64(limit),
		duration: duration,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key

	count, err := l.client.Do(ctx, l.client.B().Incr().Key(k).Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		cmd := l.client.B().Pexpire().Key(k).Milliseconds(l.duration.Milliseconds()).Build()
		if err := l.client.Do(ctx, cmd).Error(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return count <= l.limit, nil
}

func NewRedisClient(addr string) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
