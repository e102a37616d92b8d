package handler

import (
    "context"

    "github.com/iliyamo/live-request-board/internal/model"
    "github.com/iliyamo/live-request-board/internal/repository"
)

// Store interfaces consumed by the handlers. The SQL repositories
// satisfy them; tests substitute in-memory implementations. Policy
// operations (submit, ban+purge, setting cascade) go through the gate
// instead and are not repeated here.

// RequestStore covers the queue reads and DJ mutations.
type RequestStore interface {
    List(ctx context.Context, reqType string) ([]model.QueueRequest, error)
    GetByID(ctx context.Context, id uint64) (model.Request, error)
    UpdateStatus(ctx context.Context, id uint64, status string) (model.Request, error)
    Delete(ctx context.Context, id uint64) (bool, error)
    ClearCompleted(ctx context.Context, reqType string) error
    ClearAll(ctx context.Context, reqType string) error
    Stats(ctx context.Context, reqType string) (model.RequestStats, error)
    LinkToSong(ctx context.Context, id, songID uint64) error
}

// BanStore covers the ban list views and explicit unban.
type BanStore interface {
    List(ctx context.Context) ([]model.Ban, error)
    Delete(ctx context.Context, id uint64) (bool, error)
}

// SongStore covers the catalog CRUD.
type SongStore interface {
    List(ctx context.Context) ([]model.Song, error)
    Search(ctx context.Context, term string) ([]model.Song, error)
    GetByID(ctx context.Context, id uint64) (model.Song, error)
    Create(ctx context.Context, s *model.Song) error
    Update(ctx context.Context, id uint64, upd repository.SongUpdate) (model.Song, error)
    Delete(ctx context.Context, id uint64) (bool, error)
}

// SettingStore covers the dashboard's settings panel read. Writes go
// through the gate because of the event-off cascade.
type SettingStore interface {
    List(ctx context.Context) ([]model.SystemSetting, error)
}

// DJUserStore covers credential lookup for login.
type DJUserStore interface {
    GetByUsername(ctx context.Context, username string) (model.DJUser, error)
}
