package model

import (
    "testing"
    "time"
)

func TestValidStatus(t *testing.T) {
    for _, s := range []string{StatusPending, StatusPlayed, StatusSkipped, StatusRemoved} {
        if !ValidStatus(s) {
            t.Errorf("%q rejected", s)
        }
    }
    for _, s := range []string{"", "queued", "PENDING", "done"} {
        if ValidStatus(s) {
            t.Errorf("%q accepted", s)
        }
    }
}

func TestBanExpired(t *testing.T) {
    now := time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC)
    past := now.Add(-time.Hour)
    future := now.Add(time.Hour)

    cases := []struct {
        name string
        ban  Ban
        want bool
    }{
        {"permanent", Ban{IsPermanent: true}, false},
        {"permanent with stale expiry", Ban{IsPermanent: true, ExpiresAt: &past}, false},
        {"temporary active", Ban{ExpiresAt: &future}, false},
        {"temporary expired", Ban{ExpiresAt: &past}, true},
        {"temporary without expiry", Ban{}, false},
        {"expires exactly now", Ban{ExpiresAt: &now}, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := tc.ban.Expired(now); got != tc.want {
                t.Fatalf("Expired = %v, want %v", got, tc.want)
            }
        })
    }
}
