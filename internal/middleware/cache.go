package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/live-request-board/internal/config"
)

// The queue view and the status banner poll every few seconds from
// every guest's phone. This cache absorbs those polls in Redis for a
// short TTL so the polling load never reaches MySQL.

// bodyCapture duplicates the response body into a buffer while
// forwarding it to the client, up to a size limit.
type bodyCapture struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    limit  int
}

func (w *bodyCapture) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
    if w.buf.Len() < w.limit {
        n := w.limit - w.buf.Len()
        if n > len(b) {
            n = len(b)
        }
        w.buf.Write(b[:n])
    }
    return w.ResponseWriter.Write(b)
}

// cacheKey derives a stable Redis key from the route and query string.
func cacheKey(prefix string, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// payload layout: [4 bytes content type length][content type][body].
func encodeEntry(contentType string, body []byte) []byte {
    out := make([]byte, 4+len(contentType)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(len(contentType)))
    copy(out[4:], contentType)
    copy(out[4+len(contentType):], body)
    return out
}

func decodeEntry(bs []byte) (contentType string, body []byte, ok bool) {
    if len(bs) < 4 {
        return "", nil, false
    }
    n := int(binary.BigEndian.Uint32(bs[0:4]))
    if n < 0 || 4+n > len(bs) {
        return "", nil, false
    }
    return string(bs[4 : 4+n]), bs[4+n:], true
}

// NewResponseCache returns a middleware caching 200 responses of the
// configured methods in Redis. Disabled (pass-through) when the config
// says so or no Redis client is available.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 3 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }
            ctx := c.Request().Context()
            key := cacheKey(cfg.Prefix, c)

            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
                if ct, body, ok := decodeEntry(bs); ok {
                    c.Response().Header().Set("X-Cache", "HIT")
                    return c.Blob(http.StatusOK, ct, body)
                }
            }

            w := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = w
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if w.status == http.StatusOK {
                entry := encodeEntry(c.Response().Header().Get(echo.HeaderContentType), w.buf.Bytes())
                // Detached context: the request may already be done.
                _ = rdb.SetEx(context.Background(), key, entry, ttl).Err()
            }
            return nil
        }
    }
}
