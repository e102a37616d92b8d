package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/gate"
    "github.com/iliyamo/live-request-board/internal/model"
    "github.com/iliyamo/live-request-board/internal/repository"
)

// RequestHandler serves the request queue: public submission plus the
// DJ dashboard mutations. Submission policy (ban check, validation,
// side effects) lives in the gate; everything else talks to the stores
// directly.
type RequestHandler struct {
    Gate     *gate.Gate
    Requests RequestStore
    Songs    SongStore
}

// NewRequestHandler constructs a RequestHandler.
func NewRequestHandler(g *gate.Gate, requests RequestStore, songs SongStore) *RequestHandler {
    return &RequestHandler{Gate: g, Requests: requests, Songs: songs}
}

// queryType returns the optional ?type= filter, constrained to the two
// known request types; anything else means "no filter", matching the
// original API's tolerance for junk values.
func queryType(c echo.Context) string {
    t := c.QueryParam("type")
    if t == model.TypeDJ || t == model.TypeKaraoke {
        return t
    }
    return ""
}

// List handles GET /api/requests?type=.
func (h *RequestHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    reqs, err := h.Requests.List(ctx, queryType(c))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch requests"})
    }
    return c.JSON(http.StatusOK, reqs)
}

type submitReq struct {
    SongID            *uint64 `json:"songId"`
    SongTitle         string  `json:"songTitle"`
    SongArtist        string  `json:"songArtist"`
    SongVersion       string  `json:"songVersion"`
    RequestType       string  `json:"requestType"`
    RequesterName     string  `json:"requesterName"`
    Notes             *string `json:"notes"`
    IsManualRequest   bool    `json:"isManualRequest"`
    UserUUID          *string `json:"userUuid"`
    DeviceFingerprint *string `json:"deviceFingerprint"`
}

// Submit handles POST /api/requests. A banned submitter gets 403 with
// the ban reason before any validation runs; validation failures get
// 400 tagged with the offending field.
func (h *RequestHandler) Submit(c echo.Context) error {
    var req submitReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    created, err := h.Gate.SubmitRequest(ctx, gate.SubmitInput{
        SongID:            req.SongID,
        SongTitle:         req.SongTitle,
        SongArtist:        req.SongArtist,
        SongVersion:       req.SongVersion,
        RequestType:       req.RequestType,
        RequesterName:     req.RequesterName,
        Notes:             req.Notes,
        IsManualRequest:   req.IsManualRequest,
        UserUUID:          req.UserUUID,
        DeviceFingerprint: req.DeviceFingerprint,
    })
    if err != nil {
        var banned *gate.BannedError
        if errors.As(err, &banned) {
            return c.JSON(http.StatusForbidden, echo.Map{
                "status":       "banned",
                "message":      "You have been banned for violating Terms of Service.",
                "banReason":    banned.Reason(),
                "banTimestamp": banned.Timestamp(),
            })
        }
        var invalid *gate.ValidationError
        if errors.As(err, &invalid) {
            return c.JSON(http.StatusBadRequest, echo.Map{
                "message": invalid.Message,
                "field":   invalid.Field,
            })
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create request"})
    }
    return c.JSON(http.StatusCreated, created)
}

// UpdateStatus handles PUT /api/requests/:id/status. Only the four
// defined statuses are accepted; a missing id is 404. A request moves
// from pending to exactly one terminal status and then stays there, so
// a change away from a terminal status is rejected.
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request id"})
    }
    var body struct {
        Status string `json:"status"`
    }
    if err := c.Bind(&body); err != nil || !model.ValidStatus(body.Status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid status"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    current, err := h.Requests.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrRequestNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update request status"})
    }
    if current.Status != model.StatusPending && body.Status != current.Status {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Request status can no longer be changed"})
    }

    updated, err := h.Requests.UpdateStatus(ctx, id, body.Status)
    if err != nil {
        if errors.Is(err, repository.ErrRequestNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update request status"})
    }
    return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/requests/:id.
func (h *RequestHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ok, err := h.Requests.Delete(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete request"})
    }
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
    }
    return c.NoContent(http.StatusNoContent)
}

// ClearCompleted handles DELETE /api/requests/completed[?type=],
// removing played and skipped requests.
func (h *RequestHandler) ClearCompleted(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Requests.ClearCompleted(ctx, queryType(c)); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to clear completed requests"})
    }
    return c.NoContent(http.StatusNoContent)
}

// ClearAll handles DELETE /api/requests[?type=].
func (h *RequestHandler) ClearAll(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Requests.ClearAll(ctx, queryType(c)); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to clear all requests"})
    }
    return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /api/requests/stats?type=.
func (h *RequestHandler) Stats(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    st, err := h.Requests.Stats(ctx, queryType(c))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch request stats"})
    }
    return c.JSON(http.StatusOK, st)
}

// AddToLibrary handles POST /api/requests/:id/add-to-library. The DJ
// promotes a manual request into a catalog song; the request is linked
// to the new song and loses its manual flag.
func (h *RequestHandler) AddToLibrary(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    req, err := h.Requests.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrRequestNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load request"})
    }
    if !req.IsManualRequest {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Request is not a manual request"})
    }

    songType := model.TypeDJ
    if req.RequestType == model.TypeKaraoke {
        songType = model.TypeKaraoke
    }
    song := model.Song{Title: req.SongTitle, Artist: req.SongArtist, SongType: songType}
    if err := h.Songs.Create(ctx, &song); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create song"})
    }
    if err := h.Requests.LinkToSong(ctx, req.ID, song.ID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to link request to song"})
    }
    return c.JSON(http.StatusCreated, song)
}
