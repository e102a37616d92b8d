package utils // helpers for session token creation and password hashing

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// SessionToken is a signed HS256 JWT establishing a DJ session, along
// with its expiry. The token travels in the Authorization header as a
// Bearer token; there is no refresh flow because a DJ simply logs in
// again when the session lapses.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs a DJ session token. Claims: sub
// (user id), username, role (always "dj"), exp and iat.
func NewSessionToken(secret string, userID uint64, username string, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":      userID,
        "username": username,
        "role":     "dj",
        "exp":      exp.Unix(),
        "iat":      time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ErrInvalidToken is returned by ParseSessionToken for malformed,
// expired or wrongly-signed tokens.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims is the decoded view of a DJ session token.
type SessionClaims struct {
    UserID   uint64
    Username string
    Role     string
}

// ParseSessionToken validates a serialized session token against the
// signing secret and extracts its claims. Only HMAC-signed tokens are
// accepted; any other signing method is rejected.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return SessionClaims{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return SessionClaims{}, ErrInvalidToken
    }
    var out SessionClaims
    if sub, ok := claims["sub"].(float64); ok {
        out.UserID = uint64(sub)
    }
    if u, ok := claims["username"].(string); ok {
        out.Username = u
    }
    if r, ok := claims["role"].(string); ok {
        out.Role = r
    }
    if out.Role == "" {
        return SessionClaims{}, ErrInvalidToken
    }
    return out, nil
}
