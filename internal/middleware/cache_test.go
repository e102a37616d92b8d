package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/config"
)

func passThrough(t *testing.T, mw echo.MiddlewareFunc) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    h := mw(func(c echo.Context) error {
        return c.String(http.StatusOK, "ok")
    })
    if err := h(c); err != nil {
        t.Fatalf("middleware returned error: %v", err)
    }
    if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
        t.Fatalf("request not passed through: %d %q", rec.Code, rec.Body.String())
    }
    if rec.Header().Get("X-Cache") != "" {
        t.Error("disabled cache set X-Cache header")
    }
}

func TestResponseCachePassThroughWithoutRedis(t *testing.T) {
    cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: 2 * time.Second}
    passThrough(t, NewResponseCache(cfg, nil))

    cfg.Enabled = false
    passThrough(t, NewResponseCache(cfg, nil))
}

func TestTokenBucketPassThroughWithoutRedis(t *testing.T) {
    cfg := config.RateLimitConfig{Enabled: true, Capacity: 10, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute, Prefix: "rl"}
    passThrough(t, NewTokenBucket(cfg, nil))

    cfg.Enabled = false
    passThrough(t, NewTokenBucket(cfg, nil))
}

func TestCacheEntryCodec(t *testing.T) {
    entry := encodeEntry("application/json", []byte(`{"requestsEnabled":true}`))
    ct, body, ok := decodeEntry(entry)
    if !ok {
        t.Fatal("round trip failed")
    }
    if ct != "application/json" || string(body) != `{"requestsEnabled":true}` {
        t.Fatalf("decoded %q / %q", ct, body)
    }

    if _, _, ok := decodeEntry([]byte{0, 0}); ok {
        t.Error("short payload decoded")
    }
    if _, _, ok := decodeEntry([]byte{0, 0, 0, 200, 'x'}); ok {
        t.Error("overlong content-type length decoded")
    }
}
