package middleware

import (
	"net/http"
	"time"

	"cloudnotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"
)

// visitorTTL is how long an idle client IP keeps its bucket.
const visitorTTL = 10 * time.Minute

// NewRateLimiter throttles each client IP to rps requests per second with
// the given burst.
func NewRateLimiter(rps float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: visitorTTL,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			log.Warnf("rate limiter could not identify client: %v", err)
			return c.JSON(http.StatusForbidden, apierror.NewSimple(http.StatusForbidden, "Forbidden"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, apierror.TooManyRequests)
		},
	})
}
