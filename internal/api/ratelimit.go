package api

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/qlpapp/qlp-server/internal/errors"
	"github.com/qlpapp/qlp-server/internal/ratelimit"
)

// rateLimit returns a huma operation middleware that limits requests per client IP.
// Returns 429 Too Many Requests when the limit is exceeded.
func (s *Server) rateLimit(limiter *ratelimit.KeyedRateLimiter) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := clientIP(ctx.Header("X-Forwarded-For"), ctx.Header("X-Real-IP"), ctx.RemoteAddr())

		if !limiter.Allow(key) {
			s.logger.Warn("Rate limit exceeded",
				"ip", key,
				"path", ctx.URL().Path,
			)
			_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, "Too many requests",
				domainerrors.RateLimited("Muitas tentativas. Tente novamente em instantes."))
			return
		}

		next(ctx)
	}
}

// clientIP picks the client address from X-Forwarded-For (first hop),
// X-Real-IP, then the remote address with its port stripped.
func clientIP(forwardedFor, realIP, remoteAddr string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}

	if realIP != "" {
		return realIP
	}

	if i := strings.LastIndexByte(remoteAddr, ':'); i >= 0 {
		return remoteAddr[:i]
	}
	return remoteAddr
}
