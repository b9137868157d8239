package middleware

import (
	"strings"

	deliverycontext "novacommerce/internal/delivery/context"
	"novacommerce/internal/delivery/http/response"
	"novacommerce/internal/domain/entity"
	"novacommerce/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the claims on the
// request context for handlers to use.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		if _, err := claims.UserID(); err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
		}

		ctx := deliverycontext.WithClaims(c.Request().Context(), claims)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// AuthenticateOptional attaches claims when a bearer token is presented and
// lets the request through anonymously when none is. A presented token still
// has to be valid; silently downgrading a bad token to anonymous would hide
// expiry from clients.
func (m *AuthMiddleware) AuthenticateOptional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return next(c)
		}

		return m.Authenticate(next)(c)
	}
}

// RequireStaff allows only roles with catalog management rights (ADMIN or
// MANAGER). It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := deliverycontext.GetClaims(c.Request().Context())
		if claims == nil {
			return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
		}

		if !entity.Role(claims.Role).CanManageCatalog() {
			return response.Forbidden(c, "FORBIDDEN", "Permission denied: staff role required")
		}

		return next(c)
	}
}

// RequireRole allows only the given role. It must be used AFTER the
// Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := deliverycontext.GetClaims(c.Request().Context())
			if claims == nil {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			if entity.Role(claims.Role) != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}
