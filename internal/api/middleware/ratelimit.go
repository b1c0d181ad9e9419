package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dom/riyadah-elite/internal/api/respond"
	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateLimitMessage = "Too many requests, please try again later"

// RateLimit limits requests per client IP. With a Redis client the
// counters are shared between server instances; otherwise they live in
// process.
func RateLimit(limit int, window time.Duration, rdb *redis.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	if rdb == nil {
		return httprate.Limit(limit, window,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				respond.ErrorMessage(w, r, http.StatusTooManyRequests, rateLimitMessage)
			}),
		)
	}
	return redisRateLimit(limit, window, rdb, logger)
}

// redisRateLimit is a fixed-window counter. Redis errors fail open.
func redisRateLimit(limit int, window time.Duration, rdb *redis.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := fmt.Sprintf("ratelimit:%s:%s", r.URL.Path, clientIP(r))

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				logger.Error("redis error during rate limiting", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(ctx, key, window)
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			if count > int64(limit) {
				ttl, _ := rdb.TTL(ctx, key).Result()
				if ttl < 0 {
					ttl = window
				}
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
				respond.ErrorMessage(w, r, http.StatusTooManyRequests, rateLimitMessage)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
