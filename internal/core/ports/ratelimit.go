package ports

import "context"

// EndpointClass partitions routes into rate-limit buckets. Authentication
// endpoints get a short window and a low ceiling to blunt credential
// guessing; resource endpoints get a relaxed ceiling against scraping.
type EndpointClass string

const (
	LimitAuth     EndpointClass = "auth"
	LimitResource EndpointClass = "resource"
)

// LimitRule is the ceiling for one endpoint class, expressed as max
// requests per fixed window.
type LimitRule struct {
	MaxRequests int
	WindowSecs  int
}

// RateLimiter bounds request rate per client key and endpoint class.
// Counters expire with their window; there is no manual reset path.
type RateLimiter interface {
	Allow(ctx context.Context, clientKey string, class EndpointClass) (bool, error)
}
