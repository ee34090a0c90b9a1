package middleware

import (
	"errors"
	"net/http"

	"cloudnotes/cmd/internal/utils"
	"cloudnotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type TokenValidator interface {
	ParseTokenDataCtx(c echo.Context) (*utils.TokenData, error)
}

type AuthMiddlewareConfig struct {
	Tokens TokenValidator
}

// NewAuthMiddleware creates the handler with dependencies injected.
// The token alone identifies the caller; the database is not consulted.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := cfg.Tokens.ParseTokenDataCtx(c)
			if errors.Is(err, utils.ErrMissingToken) {
				return c.JSON(http.StatusUnauthorized, apierror.UnauthorizedError)
			}

			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set(utils.ContextKeyIdentity, tokenData)
			return next(c)
		}
	}
}
