package middleware

import (
	"errors"
	"net/http"

	"cloudnotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// HTTPErrorHandler renders errors that escape handlers (unknown routes, wrong
// methods, oversized bodies, panics) with the same {"error": ...} shape the
// services use.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := apierror.InternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
		resp = apierror.NewSimple(he.Code, msg)
	}

	if resp.Code() >= http.StatusInternalServerError {
		log.Errorf("%s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(resp.Code())
	} else {
		werr = c.JSON(resp.Code(), resp)
	}

	if werr != nil {
		log.Errorf("failed to write error response: %v (original: %v)", werr, err)
	}
}
