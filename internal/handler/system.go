package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/gate"
)

// SystemHandler serves the global status flags, the dashboard settings
// panel and the DJ-only setting mutation, including the event-off
// cascade.
type SystemHandler struct {
    Gate     *gate.Gate
    Settings SettingStore
}

// NewSystemHandler constructs a SystemHandler.
func NewSystemHandler(g *gate.Gate, settings SettingStore) *SystemHandler {
    return &SystemHandler{Gate: g, Settings: settings}
}

// Status handles GET /api/system/status. Every client polls this;
// the response is cacheable for a couple of seconds.
func (h *SystemHandler) Status(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    status, err := h.Gate.Status(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to get system status"})
    }
    return c.JSON(http.StatusOK, status)
}

// ListSettings handles GET /api/system/settings (DJ-only): the raw
// key/value rows backing the dashboard's settings panel.
func (h *SystemHandler) ListSettings(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    settings, err := h.Settings.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch settings"})
    }
    return c.JSON(http.StatusOK, settings)
}

type settingReq struct {
    Key   string  `json:"key"`
    Value *string `json:"value"`
}

// UpdateSetting handles POST /api/system/setting (DJ-only). Setting
// requests_enabled to "false" ends the event: terms ledger and request
// queue are cleared before the flag is persisted.
func (h *SystemHandler) UpdateSetting(c echo.Context) error {
    var req settingReq
    if err := c.Bind(&req); err != nil || req.Key == "" || req.Value == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Key and value are required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    if err := h.Gate.UpdateSetting(ctx, req.Key, *req.Value); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update setting"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Setting updated successfully"})
}
