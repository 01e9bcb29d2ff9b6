// Package middleware provides the HTTP middleware used by the kernel.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/sheshine/backoffice/pkg/logger"
	"github.com/sheshine/backoffice/pkg/response"
)

const rateLimitPrefix = "backoffice:ratelimit"

// RateLimit limits each client IP to the formatted rate (e.g. "200-M" for
// 200 requests a minute). Counters live in Redis when rdb is non-nil so
// several instances share one budget; otherwise they stay in memory.
//
// The client IP is the connection's remote address unless trustProxy is
// set, in which case X-Forwarded-For and X-Real-IP are honoured. Only set
// it when a proxy in front of the server overwrites those headers.
func RateLimit(formatted string, rdb *redis.Client, trustProxy bool) (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("middleware: rate %q: %w", formatted, err)
	}

	var store limiter.Store
	if rdb != nil {
		store, err = redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
			Prefix:   rateLimitPrefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, fmt.Errorf("middleware: redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}

	instance := limiter.New(store, rate, limiter.WithTrustForwardHeader(trustProxy))

	mw := stdlibmw.NewMiddleware(instance,
		stdlibmw.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w)
		}),
		stdlibmw.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.WithCtx(r.Context()).Error("rate limit store failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		}),
	)
	return mw.Handler, nil
}
