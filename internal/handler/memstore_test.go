package handler

import (
    "context"
    "encoding/json"
    "net/http/httptest"
    "sort"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/gate"
    "github.com/iliyamo/live-request-board/internal/model"
    "github.com/iliyamo/live-request-board/internal/repository"
)

// In-memory stores shared by the handler tests. Each fake satisfies
// both the handler-side and the gate-side interface for its entity so
// one instance can back a whole test environment.

type fakeRequests struct {
    rows   []model.Request
    nextID uint64
}

func (f *fakeRequests) Create(_ context.Context, r *model.Request) error {
    f.nextID++
    r.ID = f.nextID
    r.CreatedAt = time.Now()
    f.rows = append(f.rows, *r)
    return nil
}

func (f *fakeRequests) List(_ context.Context, reqType string) ([]model.QueueRequest, error) {
    out := []model.QueueRequest{}
    for _, r := range f.rows {
        if reqType != "" && r.RequestType != reqType {
            continue
        }
        out = append(out, model.QueueRequest{Request: r})
    }
    return out, nil
}

func (f *fakeRequests) GetByID(_ context.Context, id uint64) (model.Request, error) {
    for _, r := range f.rows {
        if r.ID == id {
            return r, nil
        }
    }
    return model.Request{}, repository.ErrRequestNotFound
}

func (f *fakeRequests) UpdateStatus(_ context.Context, id uint64, status string) (model.Request, error) {
    for i := range f.rows {
        if f.rows[i].ID == id {
            f.rows[i].Status = status
            return f.rows[i], nil
        }
    }
    return model.Request{}, repository.ErrRequestNotFound
}

func (f *fakeRequests) Delete(_ context.Context, id uint64) (bool, error) {
    for i, r := range f.rows {
        if r.ID == id {
            f.rows = append(f.rows[:i], f.rows[i+1:]...)
            return true, nil
        }
    }
    return false, nil
}

func (f *fakeRequests) DeleteByUser(_ context.Context, userUUID string) error {
    kept := f.rows[:0]
    for _, r := range f.rows {
        if r.UserUUID == nil || *r.UserUUID != userUUID {
            kept = append(kept, r)
        }
    }
    f.rows = kept
    return nil
}

func (f *fakeRequests) ClearCompleted(_ context.Context, reqType string) error {
    kept := f.rows[:0]
    for _, r := range f.rows {
        done := r.Status == model.StatusPlayed || r.Status == model.StatusSkipped
        if done && (reqType == "" || r.RequestType == reqType) {
            continue
        }
        kept = append(kept, r)
    }
    f.rows = kept
    return nil
}

func (f *fakeRequests) ClearAll(_ context.Context, reqType string) error {
    if reqType == "" {
        f.rows = nil
        return nil
    }
    kept := f.rows[:0]
    for _, r := range f.rows {
        if r.RequestType != reqType {
            kept = append(kept, r)
        }
    }
    f.rows = kept
    return nil
}

func (f *fakeRequests) Stats(_ context.Context, reqType string) (model.RequestStats, error) {
    var st model.RequestStats
    for _, r := range f.rows {
        if reqType != "" && r.RequestType != reqType {
            continue
        }
        st.TotalRequests++
        switch r.Status {
        case model.StatusPending:
            st.Pending++
        case model.StatusPlayed:
            st.Completed++
        }
        if r.IsManualRequest {
            st.Manual++
        }
    }
    return st, nil
}

func (f *fakeRequests) LinkToSong(_ context.Context, id, songID uint64) error {
    for i := range f.rows {
        if f.rows[i].ID == id {
            sid := songID
            f.rows[i].SongID = &sid
            f.rows[i].IsManualRequest = false
            return nil
        }
    }
    return repository.ErrRequestNotFound
}

type fakeBans struct {
    rows   []model.Ban
    nextID uint64
}

func (f *fakeBans) Find(_ context.Context, userUUID string) (model.Ban, error) {
    for i := len(f.rows) - 1; i >= 0; i-- {
        if f.rows[i].UserUUID == userUUID {
            return f.rows[i], nil
        }
    }
    return model.Ban{}, repository.ErrBanNotFound
}

func (f *fakeBans) Create(_ context.Context, b *model.Ban) error {
    f.nextID++
    b.ID = f.nextID
    b.BanTimestamp = time.Now()
    f.rows = append(f.rows, *b)
    return nil
}

func (f *fakeBans) List(_ context.Context) ([]model.Ban, error) {
    out := make([]model.Ban, 0, len(f.rows))
    for i := len(f.rows) - 1; i >= 0; i-- {
        out = append(out, f.rows[i])
    }
    return out, nil
}

func (f *fakeBans) Delete(_ context.Context, id uint64) (bool, error) {
    for i, b := range f.rows {
        if b.ID == id {
            f.rows = append(f.rows[:i], f.rows[i+1:]...)
            return true, nil
        }
    }
    return false, nil
}

type fakeTerms struct {
    rows   []model.TermsAcceptance
    nextID uint64
}

func (f *fakeTerms) Find(_ context.Context, userUUID string) (model.TermsAcceptance, error) {
    for _, t := range f.rows {
        if t.UserUUID == userUUID {
            return t, nil
        }
    }
    return model.TermsAcceptance{}, repository.ErrTermsNotFound
}

func (f *fakeTerms) Record(ctx context.Context, userUUID string, fp *string) (model.TermsAcceptance, error) {
    if t, err := f.Find(ctx, userUUID); err == nil {
        return t, nil
    }
    f.nextID++
    t := model.TermsAcceptance{ID: f.nextID, UserUUID: userUUID, DeviceFingerprint: fp, AcceptedAt: time.Now()}
    f.rows = append(f.rows, t)
    return t, nil
}

func (f *fakeTerms) ClearAll(context.Context) error {
    f.rows = nil
    return nil
}

type fakeSettings struct{ values map[string]string }

func (f *fakeSettings) Get(_ context.Context, key string) (string, error) {
    v, ok := f.values[key]
    if !ok {
        return "", repository.ErrSettingNotFound
    }
    return v, nil
}

func (f *fakeSettings) Set(_ context.Context, key, value string) error {
    f.values[key] = value
    return nil
}

func (f *fakeSettings) List(_ context.Context) ([]model.SystemSetting, error) {
    keys := make([]string, 0, len(f.values))
    for k := range f.values {
        keys = append(keys, k)
    }
    sort.Strings(keys)
    out := make([]model.SystemSetting, 0, len(keys))
    for i, k := range keys {
        out = append(out, model.SystemSetting{ID: uint64(i + 1), Key: k, Value: f.values[k]})
    }
    return out, nil
}

type fakeSongs struct {
    rows   []model.Song
    nextID uint64
}

func (f *fakeSongs) List(_ context.Context) ([]model.Song, error) {
    return append([]model.Song{}, f.rows...), nil
}

func (f *fakeSongs) Search(_ context.Context, term string) ([]model.Song, error) {
    term = strings.ToLower(term)
    out := []model.Song{}
    for _, s := range f.rows {
        if strings.Contains(strings.ToLower(s.Title), term) || strings.Contains(strings.ToLower(s.Artist), term) {
            out = append(out, s)
        }
    }
    return out, nil
}

func (f *fakeSongs) GetByID(_ context.Context, id uint64) (model.Song, error) {
    for _, s := range f.rows {
        if s.ID == id {
            return s, nil
        }
    }
    return model.Song{}, repository.ErrSongNotFound
}

func (f *fakeSongs) Create(_ context.Context, s *model.Song) error {
    f.nextID++
    s.ID = f.nextID
    s.CreatedAt = time.Now()
    s.UpdatedAt = s.CreatedAt
    f.rows = append(f.rows, *s)
    return nil
}

func (f *fakeSongs) Update(_ context.Context, id uint64, upd repository.SongUpdate) (model.Song, error) {
    for i := range f.rows {
        if f.rows[i].ID != id {
            continue
        }
        if upd.Title != nil {
            f.rows[i].Title = *upd.Title
        }
        if upd.Artist != nil {
            f.rows[i].Artist = *upd.Artist
        }
        if upd.Genre != nil {
            f.rows[i].Genre = upd.Genre
        }
        if upd.Duration != nil {
            f.rows[i].Duration = upd.Duration
        }
        if upd.SongType != nil {
            f.rows[i].SongType = *upd.SongType
        }
        f.rows[i].UpdatedAt = time.Now()
        return f.rows[i], nil
    }
    return model.Song{}, repository.ErrSongNotFound
}

func (f *fakeSongs) Delete(_ context.Context, id uint64) (bool, error) {
    for i, s := range f.rows {
        if s.ID == id {
            f.rows = append(f.rows[:i], f.rows[i+1:]...)
            return true, nil
        }
    }
    return false, nil
}

func (f *fakeSongs) IncrementRequestCount(_ context.Context, id uint64) error {
    for i := range f.rows {
        if f.rows[i].ID == id {
            f.rows[i].RequestCount++
            return nil
        }
    }
    return nil
}

type fakeUsers struct{ users []model.DJUser }

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (model.DJUser, error) {
    for _, u := range f.users {
        if u.Username == username {
            return u, nil
        }
    }
    return model.DJUser{}, repository.ErrUserNotFound
}

// testEnv wires a full handler set over fresh fakes.
type testEnv struct {
    gate     *gate.Gate
    requests *fakeRequests
    bans     *fakeBans
    terms    *fakeTerms
    settings *fakeSettings
    songs    *fakeSongs
    users    *fakeUsers
}

func newTestEnv() *testEnv {
    env := &testEnv{
        requests: &fakeRequests{},
        bans:     &fakeBans{},
        terms:    &fakeTerms{},
        settings: &fakeSettings{values: map[string]string{}},
        songs:    &fakeSongs{},
        users:    &fakeUsers{},
    }
    env.gate = gate.New(env.bans, env.terms, env.settings, env.requests, env.songs, false)
    return env
}

// call runs a handler against a synthetic request and returns the
// recorder. Path params are set positionally from names/values.
func call(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if len(params) > 0 {
        names := make([]string, 0, len(params)/2)
        values := make([]string, 0, len(params)/2)
        for i := 0; i+1 < len(params); i += 2 {
            names = append(names, params[i])
            values = append(values, params[i+1])
        }
        c.SetParamNames(names...)
        c.SetParamValues(values...)
    }
    if err := h(c); err != nil {
        t.Fatalf("handler returned error: %v", err)
    }
    return rec
}

// decode unmarshals a recorded JSON body into a map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
    t.Helper()
    var m map[string]any
    if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
        t.Fatalf("bad JSON body %q: %v", rec.Body.String(), err)
    }
    return m
}

// callWithAuth is call with a Bearer token attached.
func callWithAuth(t *testing.T, h echo.HandlerFunc, method, target, body, token string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
    rec := httptest.NewRecorder()
    if err := h(e.NewContext(req, rec)); err != nil {
        t.Fatalf("handler returned error: %v", err)
    }
    return rec
}

func jsonUnmarshal(s string, v any) error { return json.Unmarshal([]byte(s), v) }

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
    t.Helper()
    if rec.Code != code {
        t.Fatalf("status = %d, want %d (body: %s)", rec.Code, code, rec.Body.String())
    }
}
