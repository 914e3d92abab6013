package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"

	"dayflow/internal/transport/http/api"
	"dayflow/internal/transport/http/shared"
)

// RateLimit throttles per authenticated user, falling back to the client IP.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(actorOrIPKey),
		httprate.WithLimitHandler(limited(limit, window)),
	)
}

// AuthRateLimit guards credential endpoints at a quarter of the base limit,
// keyed by client IP since callers are not authenticated yet.
func AuthRateLimit(baseLimit int, window time.Duration) func(http.Handler) http.Handler {
	limit := max(baseLimit/4, 1)
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(clientIPKey),
		httprate.WithLimitHandler(limited(limit, window)),
	)
}

func actorOrIPKey(r *http.Request) (string, error) {
	if actor, ok := GetActor(r.Context()); ok {
		return "user:" + actor.UserID, nil
	}
	return clientIPKey(r)
}

func clientIPKey(r *http.Request) (string, error) {
	return "ip:" + strings.ToLower(shared.ClientIP(r)), nil
}

func limited(limit int, window time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("rate limit exceeded",
			"path", r.URL.Path,
			"method", r.Method,
			"limit", limit,
			"windowSec", int(window.Seconds()),
		)
		api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	}
}
