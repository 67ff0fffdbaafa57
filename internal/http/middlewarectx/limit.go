package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/magabrotheeeer/todo-api/internal/http/response"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
	"github.com/magabrotheeeer/todo-api/internal/ratelimit"
)

// RateLimitMiddleware ограничивает частоту запросов с одного IP.
// Ошибка лимитера не блокирует запрос.
func RateLimitMiddleware(limiter ratelimit.Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Warn("rate limiter unavailable", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				log.Info("too many requests", slog.String("ip", key))
				response.Write(w, r, http.StatusTooManyRequests, response.Error("too many requests, try again later"))
				return
			}
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
