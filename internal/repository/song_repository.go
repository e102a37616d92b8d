package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/live-request-board/internal/model"
)

// SongRepo provides CRUD and search over the song catalog.
type SongRepo struct {
    db *sql.DB
}

// NewSongRepo returns a new SongRepo bound to the given database.
func NewSongRepo(db *sql.DB) *SongRepo { return &SongRepo{db: db} }

const songCols = `id, title, artist, genre, duration, request_count, song_type, created_at, updated_at`

func scanSong(s interface{ Scan(...any) error }, sg *model.Song) error {
    var genre, dur sql.NullString
    if err := s.Scan(&sg.ID, &sg.Title, &sg.Artist, &genre, &dur,
        &sg.RequestCount, &sg.SongType, &sg.CreatedAt, &sg.UpdatedAt); err != nil {
        return err
    }
    if genre.Valid {
        v := genre.String
        sg.Genre = &v
    }
    if dur.Valid {
        v := dur.String
        sg.Duration = &v
    }
    return nil
}

// List returns the full catalog ordered by title.
func (r *SongRepo) List(ctx context.Context) ([]model.Song, error) {
    return r.query(ctx, `SELECT `+songCols+` FROM songs ORDER BY title`)
}

// Search matches title, artist or genre case-insensitively.
func (r *SongRepo) Search(ctx context.Context, term string) ([]model.Song, error) {
    like := "%" + term + "%"
    return r.query(ctx,
        `SELECT `+songCols+` FROM songs WHERE title LIKE ? OR artist LIKE ? OR genre LIKE ? ORDER BY title`,
        like, like, like)
}

func (r *SongRepo) query(ctx context.Context, q string, args ...any) ([]model.Song, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Song, 0)
    for rows.Next() {
        var s model.Song
        if err := scanSong(rows, &s); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// GetByID fetches a song by id, or ErrSongNotFound.
func (r *SongRepo) GetByID(ctx context.Context, id uint64) (model.Song, error) {
    var s model.Song
    err := scanSong(r.db.QueryRowContext(ctx,
        `SELECT `+songCols+` FROM songs WHERE id = ? LIMIT 1`, id), &s)
    if err == sql.ErrNoRows {
        return model.Song{}, ErrSongNotFound
    }
    return s, err
}

// Create inserts a catalog song and populates generated fields.
func (r *SongRepo) Create(ctx context.Context, s *model.Song) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO songs (title, artist, genre, duration, song_type) VALUES (?,?,?,?,?)`,
        s.Title, s.Artist, s.Genre, s.Duration, s.SongType)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    return scanSong(r.db.QueryRowContext(ctx,
        `SELECT `+songCols+` FROM songs WHERE id = ?`, s.ID), s)
}

// SongUpdate carries the mutable song fields for a partial update.
// Nil pointers leave the column untouched.
type SongUpdate struct {
    Title    *string
    Artist   *string
    Genre    *string
    Duration *string
    SongType *string
}

// Update applies a partial update and returns the updated song, or
// ErrSongNotFound when the id does not exist.
func (r *SongRepo) Update(ctx context.Context, id uint64, upd SongUpdate) (model.Song, error) {
    set := ""
    args := []any{}
    add := func(col string, v any) {
        if set != "" {
            set += ", "
        }
        set += col + " = ?"
        args = append(args, v)
    }
    if upd.Title != nil {
        add("title", *upd.Title)
    }
    if upd.Artist != nil {
        add("artist", *upd.Artist)
    }
    if upd.Genre != nil {
        add("genre", *upd.Genre)
    }
    if upd.Duration != nil {
        add("duration", *upd.Duration)
    }
    if upd.SongType != nil {
        add("song_type", *upd.SongType)
    }
    if set != "" {
        args = append(args, id)
        if _, err := r.db.ExecContext(ctx, `UPDATE songs SET `+set+` WHERE id = ?`, args...); err != nil {
            return model.Song{}, err
        }
    }
    return r.GetByID(ctx, id)
}

// Delete removes a song by id and reports whether a row was removed.
// Requests referencing the song keep their denormalized title/artist;
// the foreign key nulls out on delete.
func (r *SongRepo) Delete(ctx context.Context, id uint64) (bool, error) {
    res, err := r.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    return n > 0, err
}

// IncrementRequestCount bumps the lifetime request counter for a song.
func (r *SongRepo) IncrementRequestCount(ctx context.Context, id uint64) error {
    _, err := r.db.ExecContext(ctx,
        `UPDATE songs SET request_count = request_count + 1 WHERE id = ?`, id)
    return err
}
