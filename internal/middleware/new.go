package middleware

import (
	"travel-assistant-core/pkg/log"
)

// Middleware bundles the cross-cutting gin handlers.
type Middleware struct {
	l       log.Logger
	limiter *userRateLimiter
}

// RateLimitConfig tunes the per-user request budget.
type RateLimitConfig struct {
	RequestsPerMin int
	MaxUsers       int
}

func New(l log.Logger, cfg RateLimitConfig) Middleware {
	return Middleware{
		l:       l,
		limiter: newUserRateLimiter(cfg),
	}
}
