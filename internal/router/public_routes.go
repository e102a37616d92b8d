package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/handler"
)

// PublicHandlers bundles the handlers reachable without a DJ session.
type PublicHandlers struct {
    Auth    *handler.AuthHandler
    Request *handler.RequestHandler
    Ban     *handler.BanHandler
    Terms   *handler.TermsHandler
    System  *handler.SystemHandler
    Song    *handler.SongHandler
}

// RegisterPublic registers the guest-facing API under /api. The cache
// middleware absorbs the status/queue/stats polling; the rate limiter
// protects the submission endpoint. Either may be nil (disabled).
func RegisterPublic(e *echo.Echo, h PublicHandlers, cache, limit echo.MiddlewareFunc) {
    g := e.Group("/api")

    // Authentication status and DJ login. The override endpoint serves
    // the login form shown on the requests-disabled screen.
    g.GET("/auth/me", h.Auth.Me)
    g.POST("/auth/dj", h.Auth.DJLogin)
    g.POST("/system/override", h.Auth.Override)

    // Polled read endpoints, cached for a couple of seconds.
    statusGET := h.System.Status
    listGET := h.Request.List
    statsGET := h.Request.Stats
    if cache != nil {
        g.GET("/system/status", statusGET, cache)
        g.GET("/requests", listGET, cache)
        g.GET("/requests/stats", statsGET, cache)
    } else {
        g.GET("/system/status", statusGET)
        g.GET("/requests", listGET)
        g.GET("/requests/stats", statsGET)
    }

    // Guest submission, rate limited per IP.
    if limit != nil {
        g.POST("/requests", h.Request.Submit, limit)
    } else {
        g.POST("/requests", h.Request.Submit)
    }

    // Ban status poll and the terms acknowledgment gate.
    g.GET("/bans/check/:userId", h.Ban.Check)
    g.POST("/terms/accept", h.Terms.Accept)
    g.GET("/terms/check/:userId", h.Terms.Check)

    // Public catalog browse and search.
    g.GET("/songs", h.Song.List)
    g.GET("/songs/:id", h.Song.Get)
}
