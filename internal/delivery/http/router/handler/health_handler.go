// Package handler contains the HTTP handlers of the local storefront API.
package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}
