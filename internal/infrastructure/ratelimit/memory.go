// Package ratelimit provides an in-process fixed-window rate limiter for
// single-node deployments and tests. Multi-instance deployments should use
// the Redis-backed limiter so the ceiling is enforced globally.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/learnhub/course-platform/internal/core/ports"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter counts requests per (class, client) in a fixed window.
// Expired windows are replaced on the next request; there is no manual
// reset path.
type MemoryLimiter struct {
	mu      sync.Mutex
	rules   map[ports.EndpointClass]ports.LimitRule
	windows map[string]*window

	now func() time.Time // overridable in tests
}

func NewMemoryLimiter(rules map[ports.EndpointClass]ports.LimitRule) *MemoryLimiter {
	return &MemoryLimiter{
		rules:   rules,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, clientKey string, class ports.EndpointClass) (bool, error) {
	rule, ok := l.rules[class]
	if !ok || rule.MaxRequests <= 0 || rule.WindowSecs <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := string(class) + ":" + clientKey

	w := l.windows[key]
	if w == nil || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(time.Duration(rule.WindowSecs) * time.Second)}
		l.windows[key] = w
	}

	w.count++
	return w.count <= rule.MaxRequests, nil
}
