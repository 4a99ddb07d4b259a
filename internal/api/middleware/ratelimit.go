package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/learnhub/course-platform/internal/api/metrics"
	"github.com/learnhub/course-platform/internal/core/ports"
)

// RateLimit rejects requests over the ceiling for the given endpoint class,
// keyed by client IP. A limiter backend failure lets the request through:
// losing a counter increment is cheaper than refusing legitimate traffic.
func RateLimit(limiter ports.RateLimiter, class ports.EndpointClass, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP(), class)
			if err != nil {
				log.Warn().Err(err).
					Str("class", string(class)).
					Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues(string(class)).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
