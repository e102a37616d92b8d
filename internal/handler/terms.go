package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/gate"
)

// TermsHandler serves the terms-of-service acceptance ledger.
type TermsHandler struct {
    Gate *gate.Gate
}

// NewTermsHandler constructs a TermsHandler.
func NewTermsHandler(g *gate.Gate) *TermsHandler { return &TermsHandler{Gate: g} }

type acceptReq struct {
    UserUUID          string  `json:"userUuid"`
    DeviceFingerprint *string `json:"deviceFingerprint"`
}

// Accept handles POST /api/terms/accept. Accepting twice returns the
// original acceptance row with a 200 instead of creating a duplicate.
func (h *TermsHandler) Accept(c echo.Context) error {
    var req acceptReq
    if err := c.Bind(&req); err != nil || req.UserUUID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "User UUID is required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    existing, err := h.Gate.CheckTerms(ctx, req.UserUUID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to record terms acceptance"})
    }
    if existing != nil {
        return c.JSON(http.StatusOK, echo.Map{"message": "Terms already accepted", "acceptance": existing})
    }

    acceptance, err := h.Gate.AcceptTerms(ctx, req.UserUUID, req.DeviceFingerprint)
    if err != nil {
        var invalid *gate.ValidationError
        if errors.As(err, &invalid) {
            return c.JSON(http.StatusBadRequest, echo.Map{"message": "User UUID is required"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to record terms acceptance"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "Terms accepted successfully", "acceptance": acceptance})
}

// Check handles GET /api/terms/check/:userId.
func (h *TermsHandler) Check(c echo.Context) error {
    userUUID := c.Param("userId")
    if userUUID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "User UUID is required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    acceptance, err := h.Gate.CheckTerms(ctx, userUUID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to check terms acceptance"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "hasAccepted": acceptance != nil,
        "acceptance":  acceptance,
    })
}

// Clear handles DELETE /api/terms/clear, removing every acceptance row.
func (h *TermsHandler) Clear(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Gate.Terms.ClearAll(ctx); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to clear terms acceptance records"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "All terms acceptance records cleared successfully"})
}
