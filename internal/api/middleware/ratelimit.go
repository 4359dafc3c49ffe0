package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitExpiry is how long an idle client's bucket is kept.
const RateLimitExpiry = 3 * time.Minute

// NewRateLimitStore keeps one token bucket per client, dropping buckets idle
// for longer than expiresIn (RateLimitExpiry when zero).
func NewRateLimitStore(r rate.Limit, burst int, expiresIn time.Duration) *echomiddleware.RateLimiterMemoryStore {
	if expiresIn <= 0 {
		expiresIn = RateLimitExpiry
	}
	return echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      r,
		Burst:     burst,
		ExpiresIn: expiresIn,
	})
}

// RateLimit throttles requests per client IP against store.
func RateLimit(store echomiddleware.RateLimiterStore) echo.MiddlewareFunc {
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(_ echo.Context, _ string, err error) error {
			return &echo.HTTPError{
				Code:     http.StatusTooManyRequests,
				Message:  "too many requests, please try again later",
				Internal: err,
			}
		},
	})
}
