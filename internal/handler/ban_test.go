package handler

import (
    "net/http"
    "testing"

    "github.com/iliyamo/live-request-board/internal/model"
)

func TestBanCreatePurgesAndLists(t *testing.T) {
    env := newTestEnv()
    h := NewBanHandler(env.gate, env.bans)

    uuid := "u-1"
    env.requests.rows = []model.Request{
        {ID: 1, UserUUID: &uuid},
        {ID: 2},
    }
    env.requests.nextID = 2

    rec := call(t, h.Create, http.MethodPost, "/api/bans",
        `{"userUuid":"u-1","banReason":"hostile requests"}`)
    wantStatus(t, rec, http.StatusCreated)
    if decode(t, rec)["message"] != "User banned successfully" {
        t.Errorf("unexpected body: %s", rec.Body.String())
    }
    if len(env.requests.rows) != 1 || env.requests.rows[0].ID != 2 {
        t.Errorf("banned user's requests not purged: %+v", env.requests.rows)
    }

    rec = call(t, h.List, http.MethodGet, "/api/bans", "")
    wantStatus(t, rec, http.StatusOK)
    var bans []model.Ban
    if err := jsonUnmarshal(rec.Body.String(), &bans); err != nil {
        t.Fatalf("bad list body: %v", err)
    }
    if len(bans) != 1 || bans[0].UserUUID != "u-1" || !bans[0].IsPermanent {
        t.Fatalf("unexpected ban list: %+v", bans)
    }
}

func TestBanCreateValidation(t *testing.T) {
    env := newTestEnv()
    h := NewBanHandler(env.gate, env.bans)

    for _, body := range []string{
        `{"banReason":"no uuid"}`,
        `{"userUuid":"u-1"}`,
        `{"userUuid":"u-1","banReason":"   "}`,
    } {
        rec := call(t, h.Create, http.MethodPost, "/api/bans", body)
        wantStatus(t, rec, http.StatusBadRequest)
        if decode(t, rec)["message"] != "User UUID and ban reason are required" {
            t.Errorf("body %s: unexpected message %s", body, rec.Body.String())
        }
    }
}

func TestBanDelete(t *testing.T) {
    env := newTestEnv()
    h := NewBanHandler(env.gate, env.bans)
    env.bans.rows = []model.Ban{{ID: 1, UserUUID: "u-1", BanReason: "spam"}}
    env.bans.nextID = 1

    rec := call(t, h.Delete, http.MethodDelete, "/api/bans/1", "", "id", "1")
    wantStatus(t, rec, http.StatusNoContent)

    rec = call(t, h.Delete, http.MethodDelete, "/api/bans/1", "", "id", "1")
    wantStatus(t, rec, http.StatusNotFound)

    rec = call(t, h.Delete, http.MethodDelete, "/api/bans/x", "", "id", "x")
    wantStatus(t, rec, http.StatusBadRequest)
}

func TestBanCheck(t *testing.T) {
    env := newTestEnv()
    h := NewBanHandler(env.gate, env.bans)

    rec := call(t, h.Check, http.MethodGet, "/api/bans/check/u-1", "", "userId", "u-1")
    wantStatus(t, rec, http.StatusOK)
    if decode(t, rec)["status"] != "allowed" {
        t.Errorf("unbanned user not allowed: %s", rec.Body.String())
    }

    env.bans.rows = []model.Ban{{ID: 1, UserUUID: "u-1", BanReason: "spam", IsPermanent: true}}
    env.bans.nextID = 1

    rec = call(t, h.Check, http.MethodGet, "/api/bans/check/u-1", "", "userId", "u-1")
    wantStatus(t, rec, http.StatusOK)
    body := decode(t, rec)
    if body["status"] != "banned" || body["banReason"] != "spam" {
        t.Errorf("banned payload wrong: %s", rec.Body.String())
    }
    if _, ok := body["ban"]; !ok {
        t.Error("full ban row missing from payload")
    }
}
