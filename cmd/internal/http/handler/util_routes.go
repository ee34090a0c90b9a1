package handler

import (
	"net/http"

	"cloudnotes/cmd/internal/contract"

	"github.com/labstack/echo/v4"
)

// Health backs load balancer and compose healthchecks.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &contract.HealthResponse{
		Ok:      true,
		Service: contract.ServiceName,
	})
}
