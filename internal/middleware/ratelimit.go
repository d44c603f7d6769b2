package middleware

import (
	"context"
	"errors"
	"sync"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"
)

var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiter hands out one token bucket per principal. Calls without a
// principal share a single anonymous bucket.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiter allows perSecond calls per principal with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether principal may make a call now.
func (r *RateLimiter) Allow(principal string) bool {
	r.mu.Lock()
	l, ok := r.limiters[principal]
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.limiters[principal] = l
	}
	r.mu.Unlock()
	return l.Allow()
}

// Interceptor rejects calls over the limit with CodeResourceExhausted.
// It must run inside the auth interceptor to see the principal.
func (r *RateLimiter) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if !r.Allow(GetPrincipal(ctx)) {
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
			}
			return next(ctx, req)
		}
	}
}
