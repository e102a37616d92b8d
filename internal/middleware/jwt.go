package middleware // reusable HTTP middleware for the request board

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/utils"
)

// DJAuth returns an Echo middleware that requires a valid DJ session
// token. The token is a Bearer JWT signed with the given secret; on
// success the DJ's user id and username are stored in the context under
// "dj_id" and "dj_username". Anything else is rejected with 401, which
// is the AuthRequired contract for DJ-only routes.
func DJAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            claims, ok := sessionFromHeader(c, secret)
            if !ok || claims.Role != "dj" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "DJ authentication required"})
            }
            c.Set("dj_id", claims.UserID)
            c.Set("dj_username", claims.Username)
            return next(c)
        }
    }
}

// sessionFromHeader parses the Authorization header into session
// claims. The second return is false when no valid bearer token is
// present. Shared with the /api/auth/me handler, which must not fail
// for anonymous clients.
func sessionFromHeader(c echo.Context, secret string) (utils.SessionClaims, bool) {
    auth := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(auth, "Bearer ") {
        return utils.SessionClaims{}, false
    }
    claims, err := utils.ParseSessionToken(secret, strings.TrimPrefix(auth, "Bearer "))
    if err != nil {
        return utils.SessionClaims{}, false
    }
    return claims, true
}

// IsDJ reports whether the request carries a valid DJ session token.
// Unlike DJAuth it never rejects the request.
func IsDJ(c echo.Context, secret string) bool {
    claims, ok := sessionFromHeader(c, secret)
    return ok && claims.Role == "dj"
}
