package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/model"
    "github.com/iliyamo/live-request-board/internal/repository"
)

// SongHandler serves the song catalog: public browse/search plus the
// DJ's library management.
type SongHandler struct {
    Songs SongStore
}

// NewSongHandler constructs a SongHandler.
func NewSongHandler(songs SongStore) *SongHandler { return &SongHandler{Songs: songs} }

// List handles GET /api/songs[?search=].
func (h *SongHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    var (
        songs []model.Song
        err   error
    )
    if term := c.QueryParam("search"); term != "" {
        songs, err = h.Songs.Search(ctx, term)
    } else {
        songs, err = h.Songs.List(ctx)
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch songs"})
    }
    return c.JSON(http.StatusOK, songs)
}

// Get handles GET /api/songs/:id.
func (h *SongHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid song id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    song, err := h.Songs.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrSongNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "Song not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch song"})
    }
    return c.JSON(http.StatusOK, song)
}

type songReq struct {
    Title    *string `json:"title"`
    Artist   *string `json:"artist"`
    Genre    *string `json:"genre"`
    Duration *string `json:"duration"`
    SongType *string `json:"songType"`
}

func validSongType(t string) bool {
    return t == model.TypeDJ || t == model.TypeKaraoke || t == "both"
}

// Create handles POST /api/songs (DJ-only).
func (h *SongHandler) Create(c echo.Context) error {
    var req songReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid song data"})
    }
    if req.Title == nil || strings.TrimSpace(*req.Title) == "" ||
        req.Artist == nil || strings.TrimSpace(*req.Artist) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title and artist are required"})
    }
    songType := model.TypeDJ
    if req.SongType != nil {
        if !validSongType(*req.SongType) {
            return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid song type"})
        }
        songType = *req.SongType
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    song := model.Song{
        Title:    strings.TrimSpace(*req.Title),
        Artist:   strings.TrimSpace(*req.Artist),
        Genre:    req.Genre,
        Duration: req.Duration,
        SongType: songType,
    }
    if err := h.Songs.Create(ctx, &song); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create song"})
    }
    return c.JSON(http.StatusCreated, song)
}

// Update handles PUT /api/songs/:id (DJ-only, partial update).
func (h *SongHandler) Update(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid song id"})
    }
    var req songReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid song data"})
    }
    if req.SongType != nil && !validSongType(*req.SongType) {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid song type"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    song, err := h.Songs.Update(ctx, id, repository.SongUpdate{
        Title:    req.Title,
        Artist:   req.Artist,
        Genre:    req.Genre,
        Duration: req.Duration,
        SongType: req.SongType,
    })
    if err != nil {
        if errors.Is(err, repository.ErrSongNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "Song not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update song"})
    }
    return c.JSON(http.StatusOK, song)
}

// Delete handles DELETE /api/songs/:id (DJ-only).
func (h *SongHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid song id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ok, err := h.Songs.Delete(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete song"})
    }
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"message": "Song not found"})
    }
    return c.NoContent(http.StatusNoContent)
}
