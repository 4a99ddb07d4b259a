package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnhub/course-platform/internal/core/ports"
)

// Limiter is a fixed-window rate limiter backed by Redis, giving a shared
// ceiling across service instances. Counters live under
// ratelimit:<class>:<client>:<window_slot> and expire with their window.
type Limiter struct {
	client *redis.Client
	rules  map[ports.EndpointClass]ports.LimitRule
}

// NewLimiter creates a Limiter enforcing the given per-class rules.
func NewLimiter(client *redis.Client, rules map[ports.EndpointClass]ports.LimitRule) *Limiter {
	return &Limiter{client: client, rules: rules}
}

// Allow increments the counter for the client's current window and reports
// whether the request is within the class ceiling.
func (l *Limiter) Allow(ctx context.Context, clientKey string, class ports.EndpointClass) (bool, error) {
	rule, ok := l.rules[class]
	if !ok || rule.MaxRequests <= 0 || rule.WindowSecs <= 0 {
		return true, nil
	}

	slot := time.Now().Unix() / int64(rule.WindowSecs)
	key := fmt.Sprintf("ratelimit:%s:%s:%d", class, clientKey, slot)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, time.Duration(rule.WindowSecs)*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}

	return incr.Val() <= int64(rule.MaxRequests), nil
}
