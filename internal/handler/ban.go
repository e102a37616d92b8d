package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/gate"
)

// BanHandler serves ban management. The ban+purge policy lives in the
// gate; the handler translates HTTP.
type BanHandler struct {
    Gate *gate.Gate
    Bans BanStore
}

// NewBanHandler constructs a BanHandler.
func NewBanHandler(g *gate.Gate, bans BanStore) *BanHandler {
    return &BanHandler{Gate: g, Bans: bans}
}

// List handles GET /api/bans, newest first.
func (h *BanHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    bans, err := h.Bans.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch ban list"})
    }
    return c.JSON(http.StatusOK, bans)
}

type banReq struct {
    UserUUID          string     `json:"userUuid"`
    DeviceFingerprint *string    `json:"deviceFingerprint"`
    BanReason         string     `json:"banReason"`
    ExpiresAt         *time.Time `json:"expiresAt"`
}

// Create handles POST /api/bans. Banning a user also purges every
// request they have in the queue. Omitting expiresAt makes the ban
// permanent.
func (h *BanHandler) Create(c echo.Context) error {
    var req banReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "User UUID and ban reason are required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    _, err := h.Gate.BanUser(ctx, gate.BanInput{
        UserUUID:          req.UserUUID,
        DeviceFingerprint: req.DeviceFingerprint,
        Reason:            req.BanReason,
        ExpiresAt:         req.ExpiresAt,
    })
    if err != nil {
        var invalid *gate.ValidationError
        if errors.As(err, &invalid) {
            return c.JSON(http.StatusBadRequest, echo.Map{"message": "User UUID and ban reason are required"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to ban user"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "User banned successfully"})
}

// Delete handles DELETE /api/bans/:id (explicit unban).
func (h *BanHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid ban id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ok, err := h.Bans.Delete(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to remove ban"})
    }
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"message": "Ban not found"})
    }
    return c.NoContent(http.StatusNoContent)
}

// Check handles GET /api/bans/check/:userId. The client polls this on
// page load; an expired temporary ban is removed here as a side effect
// of the check.
func (h *BanHandler) Check(c echo.Context) error {
    userUUID := c.Param("userId")
    if userUUID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "User UUID is required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ban, err := h.Gate.CheckBan(ctx, userUUID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to check ban status"})
    }
    if ban == nil {
        return c.JSON(http.StatusOK, echo.Map{"status": "allowed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "status":       "banned",
        "message":      "Access to this service has been restricted due to violations of our Terms of Service. Please contact support if you believe this is an error.",
        "banReason":    ban.BanReason,
        "banTimestamp": ban.BanTimestamp,
        "ban":          ban,
    })
}
