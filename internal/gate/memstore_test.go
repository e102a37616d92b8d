package gate

import (
    "context"
    "time"

    "github.com/iliyamo/live-request-board/internal/model"
    "github.com/iliyamo/live-request-board/internal/repository"
)

// In-memory store implementations backing the gate tests. They mirror
// the repository semantics, including the sentinel errors, with an
// optional journal that records mutation order for cascade tests.

type journal struct{ ops []string }

func (j *journal) log(op string) {
    if j != nil {
        j.ops = append(j.ops, op)
    }
}

type memBans struct {
    bans   []model.Ban
    nextID uint64
    now    func() time.Time
}

func newMemBans(now func() time.Time) *memBans {
    return &memBans{nextID: 1, now: now}
}

func (m *memBans) Find(_ context.Context, userUUID string) (model.Ban, error) {
    for i := len(m.bans) - 1; i >= 0; i-- {
        if m.bans[i].UserUUID == userUUID {
            return m.bans[i], nil
        }
    }
    return model.Ban{}, repository.ErrBanNotFound
}

func (m *memBans) Create(_ context.Context, b *model.Ban) error {
    b.ID = m.nextID
    m.nextID++
    b.BanTimestamp = m.now()
    m.bans = append(m.bans, *b)
    return nil
}

func (m *memBans) Delete(_ context.Context, id uint64) (bool, error) {
    for i, b := range m.bans {
        if b.ID == id {
            m.bans = append(m.bans[:i], m.bans[i+1:]...)
            return true, nil
        }
    }
    return false, nil
}

type memTerms struct {
    rows   []model.TermsAcceptance
    nextID uint64
    j      *journal
}

func newMemTerms(j *journal) *memTerms { return &memTerms{nextID: 1, j: j} }

func (m *memTerms) Find(_ context.Context, userUUID string) (model.TermsAcceptance, error) {
    for _, t := range m.rows {
        if t.UserUUID == userUUID {
            return t, nil
        }
    }
    return model.TermsAcceptance{}, repository.ErrTermsNotFound
}

func (m *memTerms) Record(ctx context.Context, userUUID string, fp *string) (model.TermsAcceptance, error) {
    if t, err := m.Find(ctx, userUUID); err == nil {
        return t, nil
    }
    t := model.TermsAcceptance{ID: m.nextID, UserUUID: userUUID, DeviceFingerprint: fp, AcceptedAt: time.Now()}
    m.nextID++
    m.rows = append(m.rows, t)
    return t, nil
}

func (m *memTerms) ClearAll(context.Context) error {
    m.j.log("terms.clear")
    m.rows = nil
    return nil
}

type memSettings struct {
    values map[string]string
    j      *journal
}

func newMemSettings(j *journal) *memSettings {
    return &memSettings{values: map[string]string{}, j: j}
}

func (m *memSettings) Get(_ context.Context, key string) (string, error) {
    v, ok := m.values[key]
    if !ok {
        return "", repository.ErrSettingNotFound
    }
    return v, nil
}

func (m *memSettings) Set(_ context.Context, key, value string) error {
    m.j.log("settings.set:" + key + "=" + value)
    m.values[key] = value
    return nil
}

type memRequests struct {
    rows   []model.Request
    nextID uint64
    j      *journal
}

func newMemRequests(j *journal) *memRequests { return &memRequests{nextID: 1, j: j} }

func (m *memRequests) Create(_ context.Context, r *model.Request) error {
    r.ID = m.nextID
    m.nextID++
    r.CreatedAt = time.Now()
    m.rows = append(m.rows, *r)
    return nil
}

func (m *memRequests) DeleteByUser(_ context.Context, userUUID string) error {
    kept := m.rows[:0]
    for _, r := range m.rows {
        if r.UserUUID == nil || *r.UserUUID != userUUID {
            kept = append(kept, r)
        }
    }
    m.rows = kept
    return nil
}

func (m *memRequests) ClearAll(_ context.Context, reqType string) error {
    m.j.log("requests.clear")
    if reqType == "" {
        m.rows = nil
        return nil
    }
    kept := m.rows[:0]
    for _, r := range m.rows {
        if r.RequestType != reqType {
            kept = append(kept, r)
        }
    }
    m.rows = kept
    return nil
}

func (m *memRequests) byUser(userUUID string) []model.Request {
    var out []model.Request
    for _, r := range m.rows {
        if r.UserUUID != nil && *r.UserUUID == userUUID {
            out = append(out, r)
        }
    }
    return out
}

type memSongs struct {
    counts map[uint64]int
}

func newMemSongs() *memSongs { return &memSongs{counts: map[uint64]int{}} }

func (m *memSongs) IncrementRequestCount(_ context.Context, id uint64) error {
    m.counts[id]++
    return nil
}

// newTestGate assembles a gate over fresh in-memory stores.
func newTestGate(karaoke bool) (*Gate, *memBans, *memTerms, *memSettings, *memRequests, *memSongs, *journal) {
    j := &journal{}
    bans := newMemBans(time.Now)
    terms := newMemTerms(j)
    settings := newMemSettings(j)
    requests := newMemRequests(j)
    songs := newMemSongs()
    g := New(bans, terms, settings, requests, songs, karaoke)
    return g, bans, terms, settings, requests, songs, j
}
