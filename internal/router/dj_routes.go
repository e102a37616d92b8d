package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/middleware"
)

// RegisterDJ registers the dashboard endpoints under /api. All routes
// require a valid DJ session token; unauthenticated calls get 401.
func RegisterDJ(e *echo.Echo, h PublicHandlers, jwtSecret string) {
    g := e.Group("/api", middleware.DJAuth(jwtSecret))

    // System settings. Disabling requests triggers the event-off
    // cascade inside the gate.
    g.GET("/system/settings", h.System.ListSettings)
    g.POST("/system/setting", h.System.UpdateSetting)

    // Queue management.
    g.PUT("/requests/:id/status", h.Request.UpdateStatus)
    g.DELETE("/requests/completed", h.Request.ClearCompleted)
    g.DELETE("/requests/:id", h.Request.Delete)
    g.DELETE("/requests", h.Request.ClearAll)
    g.POST("/requests/:id/add-to-library", h.Request.AddToLibrary)

    // Ban management. The public ban check stays on the public router.
    g.GET("/bans", h.Ban.List)
    g.POST("/bans", h.Ban.Create)
    g.DELETE("/bans/:id", h.Ban.Delete)

    // Terms ledger reset.
    g.DELETE("/terms/clear", h.Terms.Clear)

    // Catalog management.
    g.POST("/songs", h.Song.Create)
    g.PUT("/songs/:id", h.Song.Update)
    g.DELETE("/songs/:id", h.Song.Delete)
}
