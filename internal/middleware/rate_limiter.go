package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"expense-tracker-api/internal/errors"
	"expense-tracker-api/internal/handlers"
)

// visitor pairs a client's token bucket with its last activity, so idle
// entries can be swept
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.RWMutex

	// 5 req/sec per IP keeps credential stuffing against /auth endpoints slow
	requestsPerSecond = 5
	burstSize         = 10

	sweepInterval = time.Minute
	visitorTTL    = 3 * time.Minute
)

// RateLimiter throttles requests per client IP with a token bucket at the
// default rate
func RateLimiter() echo.MiddlewareFunc {
	go sweepVisitors()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !visitorLimiter(getIP(c)).Allow() {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

// RateLimiterWithConfig overrides the default rate and burst before
// building the limiter
func RateLimiterWithConfig(rps int, burst int) echo.MiddlewareFunc {
	requestsPerSecond = rps
	burstSize = burst

	return RateLimiter()
}

func visitorLimiter(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	if v, ok := visitors[ip]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)
	visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

// getIP resolves the client address, trusting proxy headers when present
func getIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}

// sweepVisitors drops buckets that have been idle past the TTL so the map
// does not grow without bound
func sweepVisitors() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}
