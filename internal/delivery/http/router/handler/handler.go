// Package handler contains the HTTP handlers for the application.
package handler

import (
	deliverycontext "novacommerce/internal/delivery/context"
	domainerrors "novacommerce/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated caller's user ID. The auth
// middleware guarantees the claims are present and well formed on protected
// routes; a missing claim here means the route was wired without it.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	claims := deliverycontext.GetClaims(c.Request().Context())
	if claims == nil {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	userID, err := claims.UserID()
	if err != nil {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return userID, nil
}
