package utils

import (
    "errors"
    "testing"
    "time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
    st, err := NewSessionToken("test-secret", 42, "dj_nova", 60)
    if err != nil {
        t.Fatalf("issue: %v", err)
    }
    if st.Token == "" {
        t.Fatal("empty token")
    }
    if remaining := time.Until(st.Exp); remaining < 55*time.Minute || remaining > 60*time.Minute {
        t.Errorf("expiry %v not about an hour out", st.Exp)
    }

    claims, err := ParseSessionToken("test-secret", st.Token)
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    if claims.UserID != 42 {
        t.Errorf("sub = %d, want 42", claims.UserID)
    }
    if claims.Username != "dj_nova" {
        t.Errorf("username = %q, want dj_nova", claims.Username)
    }
    if claims.Role != "dj" {
        t.Errorf("role = %q, want dj", claims.Role)
    }
}

func TestParseSessionTokenRejects(t *testing.T) {
    st, err := NewSessionToken("test-secret", 1, "dj", 60)
    if err != nil {
        t.Fatalf("issue: %v", err)
    }

    cases := []struct {
        name   string
        secret string
        raw    string
    }{
        {"wrong secret", "other-secret", st.Token},
        {"garbage", "test-secret", "not.a.jwt"},
        {"empty", "test-secret", ""},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if _, err := ParseSessionToken(tc.secret, tc.raw); !errors.Is(err, ErrInvalidToken) {
                t.Fatalf("err = %v, want ErrInvalidToken", err)
            }
        })
    }
}

func TestParseSessionTokenExpired(t *testing.T) {
    st, err := NewSessionToken("test-secret", 1, "dj", -1)
    if err != nil {
        t.Fatalf("issue: %v", err)
    }
    if _, err := ParseSessionToken("test-secret", st.Token); !errors.Is(err, ErrInvalidToken) {
        t.Fatalf("expired token accepted: %v", err)
    }
}
