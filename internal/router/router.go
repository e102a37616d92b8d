// Package router defines how HTTP routes are registered for the API.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/handler"
)

// RegisterRoutes registers routes that carry no middleware at all.
// Currently it exposes only the health check, which doubles as the
// client's offline probe.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}
