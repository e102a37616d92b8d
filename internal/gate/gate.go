package gate

import (
    "context"
    "errors"
    "log"
    "strings"
    "time"
    "unicode/utf8"

    "github.com/iliyamo/live-request-board/internal/model"
    "github.com/iliyamo/live-request-board/internal/repository"
)

// BanStore is the slice of the ban registry the gate needs.
type BanStore interface {
    Find(ctx context.Context, userUUID string) (model.Ban, error)
    Create(ctx context.Context, b *model.Ban) error
    Delete(ctx context.Context, id uint64) (bool, error)
}

// TermsStore is the slice of the terms ledger the gate needs.
type TermsStore interface {
    Find(ctx context.Context, userUUID string) (model.TermsAcceptance, error)
    Record(ctx context.Context, userUUID string, fingerprint *string) (model.TermsAcceptance, error)
    ClearAll(ctx context.Context) error
}

// SettingStore is the slice of the system settings store the gate needs.
type SettingStore interface {
    Get(ctx context.Context, key string) (string, error)
    Set(ctx context.Context, key, value string) error
}

// RequestStore is the slice of the request queue the gate needs for
// policy side effects. Plain reads stay on the repository.
type RequestStore interface {
    Create(ctx context.Context, r *model.Request) error
    DeleteByUser(ctx context.Context, userUUID string) error
    ClearAll(ctx context.Context, reqType string) error
}

// SongStore lets the gate bump a catalog song's request counter.
type SongStore interface {
    IncrementRequestCount(ctx context.Context, id uint64) error
}

// Notifier receives successful submissions for out-of-band delivery
// (desktop notification feed). Implementations must be best-effort:
// failures are theirs to log, never the submitter's problem.
type Notifier interface {
    RequestSubmitted(ctx context.Context, r model.Request)
}

// Gate bundles the stores and policy flags. All dependencies are
// injected; KaraokeEnabled is a deployment feature flag, not a runtime
// setting.
type Gate struct {
    Bans           BanStore
    Terms          TermsStore
    Settings       SettingStore
    Requests       RequestStore
    Songs          SongStore
    Notifier       Notifier // may be nil
    KaraokeEnabled bool

    now func() time.Time
}

// New constructs a Gate over the given stores.
func New(bans BanStore, terms TermsStore, settings SettingStore, requests RequestStore, songs SongStore, karaokeEnabled bool) *Gate {
    return &Gate{
        Bans:           bans,
        Terms:          terms,
        Settings:       settings,
        Requests:       requests,
        Songs:          songs,
        KaraokeEnabled: karaokeEnabled,
        now:            time.Now,
    }
}

// SetClock overrides the gate's time source. Tests use it to exercise
// ban expiry without sleeping.
func (g *Gate) SetClock(now func() time.Time) { g.now = now }

// CheckBan returns the user's active ban, or nil when the user is not
// banned. A temporary ban whose expiry has passed is deleted here, as
// part of the read, so expired bans vanish from the list without a
// background sweeper.
func (g *Gate) CheckBan(ctx context.Context, userUUID string) (*model.Ban, error) {
    b, err := g.Bans.Find(ctx, userUUID)
    if err != nil {
        if errors.Is(err, repository.ErrBanNotFound) {
            return nil, nil
        }
        return nil, err
    }
    if b.Expired(g.now()) {
        if _, err := g.Bans.Delete(ctx, b.ID); err != nil {
            return nil, err
        }
        return nil, nil
    }
    return &b, nil
}

// SubmitInput carries a guest's submission before validation.
type SubmitInput struct {
    SongID            *uint64
    SongTitle         string
    SongArtist        string
    SongVersion       string
    RequestType       string
    RequesterName     string
    Notes             *string
    IsManualRequest   bool
    UserUUID          *string
    DeviceFingerprint *string
}

// SubmitRequest runs the canonical submission flow: ban check first
// (short-circuits everything else), then per-field validation in a
// fixed order, then defaults, insert, and side effects (song counter,
// notification event).
func (g *Gate) SubmitRequest(ctx context.Context, in SubmitInput) (model.Request, error) {
    if in.UserUUID != nil && *in.UserUUID != "" {
        ban, err := g.CheckBan(ctx, *in.UserUUID)
        if err != nil {
            return model.Request{}, err
        }
        if ban != nil {
            return model.Request{}, &BannedError{Ban: *ban}
        }
    }

    name := strings.TrimSpace(in.RequesterName)
    title := strings.TrimSpace(in.SongTitle)
    artist := strings.TrimSpace(in.SongArtist)
    if utf8.RuneCountInString(name) < 2 {
        return model.Request{}, &ValidationError{Field: "requesterName",
            Message: "Requester name is required and must be at least 2 characters"}
    }
    if utf8.RuneCountInString(title) < 2 {
        return model.Request{}, &ValidationError{Field: "songTitle",
            Message: "Song title is required and must be at least 2 characters"}
    }
    if utf8.RuneCountInString(artist) < 2 {
        return model.Request{}, &ValidationError{Field: "songArtist",
            Message: "Artist name is required and must be at least 2 characters"}
    }

    req := model.Request{
        SongID:            in.SongID,
        SongTitle:         title,
        SongArtist:        artist,
        SongVersion:       in.SongVersion,
        RequestType:       in.RequestType,
        RequesterName:     name,
        Notes:             in.Notes,
        Status:            model.StatusPending,
        IsManualRequest:   in.IsManualRequest,
        UserUUID:          in.UserUUID,
        DeviceFingerprint: in.DeviceFingerprint,
    }
    if req.RequestType == "" {
        req.RequestType = model.TypeDJ
    }
    if req.SongVersion == "" {
        req.SongVersion = model.VersionStandard
    }

    if err := g.Requests.Create(ctx, &req); err != nil {
        return model.Request{}, err
    }

    if req.SongID != nil {
        if err := g.Songs.IncrementRequestCount(ctx, *req.SongID); err != nil {
            // The request is already in the queue; a stale counter is
            // not worth failing the submission over.
            log.Printf("gate: increment request count for song %d failed: %v", *req.SongID, err)
        }
    }
    if g.Notifier != nil {
        g.Notifier.RequestSubmitted(ctx, req)
    }
    return req, nil
}

// BanInput carries the fields of a ban action. A nil ExpiresAt makes
// the ban permanent.
type BanInput struct {
    UserUUID          string
    DeviceFingerprint *string
    Reason            string
    ExpiresAt         *time.Time
}

// BanUser creates a ban and purges every request the banned user has
// in the queue. The ban row is made durable before the purge starts:
// a failure between the two steps leaves a consistent "banned but not
// yet purged" state that a retry completes, since purging an already
// empty set is a no-op.
func (g *Gate) BanUser(ctx context.Context, in BanInput) (model.Ban, error) {
    if strings.TrimSpace(in.UserUUID) == "" {
        return model.Ban{}, &ValidationError{Field: "userUuid", Message: "User UUID is required"}
    }
    if strings.TrimSpace(in.Reason) == "" {
        return model.Ban{}, &ValidationError{Field: "banReason", Message: "Ban reason is required"}
    }
    b := model.Ban{
        UserUUID:          in.UserUUID,
        DeviceFingerprint: in.DeviceFingerprint,
        BanReason:         strings.TrimSpace(in.Reason),
        IsPermanent:       in.ExpiresAt == nil,
        ExpiresAt:         in.ExpiresAt,
    }
    if err := g.Bans.Create(ctx, &b); err != nil {
        return model.Ban{}, err
    }
    if err := g.Requests.DeleteByUser(ctx, in.UserUUID); err != nil {
        log.Printf("gate: purge requests for banned user %s failed: %v", in.UserUUID, err)
        return b, err
    }
    return b, nil
}

// Status reads the global flags. requests_enabled defaults to true
// unless the stored value is exactly "false"; maintenance_mode defaults
// to false unless the stored value is exactly "true".
func (g *Gate) Status(ctx context.Context) (model.SystemStatus, error) {
    re, err := g.setting(ctx, model.SettingRequestsEnabled)
    if err != nil {
        return model.SystemStatus{}, err
    }
    mm, err := g.setting(ctx, model.SettingMaintenanceMode)
    if err != nil {
        return model.SystemStatus{}, err
    }
    return model.SystemStatus{
        RequestsEnabled: re != "false",
        MaintenanceMode: mm == "true",
        KaraokeEnabled:  g.KaraokeEnabled,
    }, nil
}

func (g *Gate) setting(ctx context.Context, key string) (string, error) {
    v, err := g.Settings.Get(ctx, key)
    if errors.Is(err, repository.ErrSettingNotFound) {
        return "", nil
    }
    return v, err
}

// UpdateSetting upserts a system setting. Disabling requests ends the
// event: the terms ledger and the request queue are cleared before the
// setting itself is persisted, in that order, so a crash mid-cascade
// leaves the event still on and the next attempt redoes the (idempotent)
// clears.
func (g *Gate) UpdateSetting(ctx context.Context, key, value string) error {
    if key == model.SettingRequestsEnabled && value == "false" {
        log.Printf("gate: event turned off, clearing terms ledger and request queue")
        if err := g.Terms.ClearAll(ctx); err != nil {
            return err
        }
        if err := g.Requests.ClearAll(ctx, ""); err != nil {
            return err
        }
    }
    return g.Settings.Set(ctx, key, value)
}

// AcceptTerms records a user's terms acceptance; idempotent per user.
func (g *Gate) AcceptTerms(ctx context.Context, userUUID string, fingerprint *string) (model.TermsAcceptance, error) {
    if strings.TrimSpace(userUUID) == "" {
        return model.TermsAcceptance{}, &ValidationError{Field: "userUuid", Message: "User UUID is required"}
    }
    return g.Terms.Record(ctx, userUUID, fingerprint)
}

// CheckTerms returns the user's acceptance row, or nil when absent.
func (g *Gate) CheckTerms(ctx context.Context, userUUID string) (*model.TermsAcceptance, error) {
    t, err := g.Terms.Find(ctx, userUUID)
    if err != nil {
        if errors.Is(err, repository.ErrTermsNotFound) {
            return nil, nil
        }
        return nil, err
    }
    return &t, nil
}
