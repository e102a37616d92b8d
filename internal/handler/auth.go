package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/config"
    "github.com/iliyamo/live-request-board/internal/middleware"
    "github.com/iliyamo/live-request-board/internal/repository"
    "github.com/iliyamo/live-request-board/internal/utils"
)

// AuthHandler implements DJ authentication. There is a single DJ role;
// a successful login yields a short-lived HS256 session token carried
// as a Bearer token.
type AuthHandler struct {
    Cfg   config.Config
    Users DJUserStore
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg config.Config, users DJUserStore) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: users}
}

type loginReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

// verify checks credentials and issues a session token. Wrong username
// and wrong password are indistinguishable to the caller.
func (h *AuthHandler) verify(ctx context.Context, username, password string) (utils.SessionToken, uint64, error) {
    u, err := h.Users.GetByUsername(ctx, username)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return utils.SessionToken{}, 0, echo.ErrUnauthorized
        }
        return utils.SessionToken{}, 0, err
    }
    if !utils.VerifyPassword(u.PasswordHash, password) {
        return utils.SessionToken{}, 0, echo.ErrUnauthorized
    }
    tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, u.Username, h.Cfg.SessionTTLMin)
    if err != nil {
        return utils.SessionToken{}, 0, err
    }
    return tok, u.ID, nil
}

// DJLogin handles POST /api/auth/dj. Responds with the authenticated
// user and a session token, or 401 on bad credentials.
func (h *AuthHandler) DJLogin(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid credentials payload"})
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    tok, uid, err := h.verify(ctx, req.Username, req.Password)
    if err != nil {
        if err == echo.ErrUnauthorized {
            return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Authentication failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "authenticated": true,
        "user":          echo.Map{"id": uid, "username": req.Username},
        "token":         tok.Token,
        "expires":       tok.Exp,
    })
}

// Override handles POST /api/system/override: the DJ login offered on
// the requests-disabled screen. Credentials are checked exactly like a
// normal login; requests_enabled stays untouched. On success the
// session token travels in the X-Session-Token response header and the
// body is empty (204).
func (h *AuthHandler) Override(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
    }
    if strings.TrimSpace(req.Username) == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    tok, _, err := h.verify(ctx, req.Username, req.Password)
    if err != nil {
        if err == echo.ErrUnauthorized {
            return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Override failed"})
    }
    c.Response().Header().Set("X-Session-Token", tok.Token)
    return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/auth/me. It reports whether the caller holds a
// DJ session. Never errors for anonymous clients; they simply get
// isDJ=false. There is no persistent override mode, so overrideActive
// mirrors the DJ flag only while requests are disabled client-side and
// is reported false here.
func (h *AuthHandler) Me(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "isDJ":           middleware.IsDJ(c, h.Cfg.JWTSecret),
        "overrideActive": false,
    })
}
