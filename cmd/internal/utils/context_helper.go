package utils

import (
	"cloudnotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ContextKeyIdentity is where the auth middleware leaves the caller's *TokenData.
const ContextKeyIdentity = "identity"

func GetIdentityFromContext(c echo.Context) (*TokenData, apierror.ErrorResponse) {
	val := c.Get(ContextKeyIdentity)
	if val == nil {
		log.Warnf("route %s attempted to read nil identity from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	identity, ok := val.(*TokenData)
	if !ok {
		log.Warnf("expected identity type at '%s' context key, got %T", ContextKeyIdentity, val)
		return nil, apierror.InternalServerError
	}
	return identity, nil
}
