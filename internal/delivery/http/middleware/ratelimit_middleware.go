package middleware

import (
	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/domain/service"
	"novacommerce/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware throttles sensitive endpoints per client IP.
type RateLimitMiddleware struct {
	limiter service.RateLimiter
}

// NewRateLimitMiddleware is the constructor for RateLimitMiddleware.
func NewRateLimitMiddleware(limiter service.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// LimitLogin enforces the login rate limit. The key combines the endpoint
// with the client IP so one abusive client cannot exhaust another's budget.
func (m *RateLimitMiddleware) LimitLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		allowed, err := m.limiter.Allow(c.Request().Context(), "login:"+c.RealIP())
		if err != nil {
			return err
		}
		if !allowed {
			metrics.UserLoginsTotal.WithLabelValues(metrics.LoginResultRateLimited).Inc()

			return domainerrors.ErrTooManyRequests
		}

		return next(c)
	}
}
