package service

import "context"

// RateLimiter defines the interface for request rate limiting.
type RateLimiter interface {
	// Allow reports whether the caller identified by key may proceed within
	// the current window.
	Allow(ctx context.Context, key string) (bool, error)
}
