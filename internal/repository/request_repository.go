package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/live-request-board/internal/model"
)

// RequestRepo provides CRUD operations for the request queue. Requests
// are ordered by insertion time when listed and may reference a catalog
// song. All timestamp fields are stored in UTC.
type RequestRepo struct {
    db *sql.DB
}

// NewRequestRepo returns a new RequestRepo bound to the given database.
func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{db: db} }

const requestCols = `id, song_id, song_title, song_artist, song_version, request_type,
 requester_name, notes, status, is_manual_request, user_uuid, device_fingerprint, created_at`

// scanRequest reads one requests row into a model.Request. The row must
// have been selected with requestCols in order.
func scanRequest(s interface{ Scan(...any) error }, r *model.Request) error {
    var (
        songID sql.NullInt64
        notes  sql.NullString
        uuid   sql.NullString
        fp     sql.NullString
    )
    if err := s.Scan(&r.ID, &songID, &r.SongTitle, &r.SongArtist, &r.SongVersion,
        &r.RequestType, &r.RequesterName, &notes, &r.Status, &r.IsManualRequest,
        &uuid, &fp, &r.CreatedAt); err != nil {
        return err
    }
    if songID.Valid {
        v := uint64(songID.Int64)
        r.SongID = &v
    }
    if notes.Valid {
        v := notes.String
        r.Notes = &v
    }
    if uuid.Valid {
        v := uuid.String
        r.UserUUID = &v
    }
    if fp.Valid {
        v := fp.String
        r.DeviceFingerprint = &v
    }
    return nil
}

// Create inserts a new request and populates the generated ID and the
// database-assigned creation timestamp on the provided record.
func (r *RequestRepo) Create(ctx context.Context, req *model.Request) error {
    const q = `INSERT INTO requests
 (song_id, song_title, song_artist, song_version, request_type, requester_name,
  notes, status, is_manual_request, user_uuid, device_fingerprint)
 VALUES (?,?,?,?,?,?,?,?,?,?,?)`
    res, err := r.db.ExecContext(ctx, q,
        req.SongID, req.SongTitle, req.SongArtist, req.SongVersion, req.RequestType,
        req.RequesterName, req.Notes, req.Status, req.IsManualRequest,
        req.UserUUID, req.DeviceFingerprint)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    req.ID = uint64(id)
    // Query back the full row to pick up created_at.
    const sel = `SELECT ` + requestCols + ` FROM requests WHERE id = ?`
    return scanRequest(r.db.QueryRowContext(ctx, sel, req.ID), req)
}

// GetByID fetches a single request by id.
func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (model.Request, error) {
    const q = `SELECT ` + requestCols + ` FROM requests WHERE id = ? LIMIT 1`
    var req model.Request
    if err := scanRequest(r.db.QueryRowContext(ctx, q, id), &req); err != nil {
        if err == sql.ErrNoRows {
            return model.Request{}, ErrRequestNotFound
        }
        return model.Request{}, err
    }
    return req, nil
}

// List returns the queue in insertion order, each request joined with
// its catalog song when one is linked. Passing a non-empty reqType
// restricts the result to that request type. An empty queue yields an
// empty slice, never an error.
func (r *RequestRepo) List(ctx context.Context, reqType string) ([]model.QueueRequest, error) {
    q := `SELECT r.id, r.song_id, r.song_title, r.song_artist, r.song_version, r.request_type,
 r.requester_name, r.notes, r.status, r.is_manual_request, r.user_uuid, r.device_fingerprint, r.created_at,
 s.id, s.title, s.artist, s.genre, s.duration, s.request_count, s.song_type, s.created_at, s.updated_at
 FROM requests r LEFT JOIN songs s ON r.song_id = s.id`
    args := []any{}
    if reqType != "" {
        q += ` WHERE r.request_type = ?`
        args = append(args, reqType)
    }
    q += ` ORDER BY r.created_at ASC, r.id ASC`

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.QueueRequest, 0)
    for rows.Next() {
        var (
            qr     model.QueueRequest
            songID sql.NullInt64
            notes  sql.NullString
            uuid   sql.NullString
            fp     sql.NullString

            sID    sql.NullInt64
            sTitle sql.NullString
            sArt   sql.NullString
            sGenre sql.NullString
            sDur   sql.NullString
            sCount sql.NullInt64
            sType  sql.NullString
            sCre   sql.NullTime
            sUpd   sql.NullTime
        )
        if err := rows.Scan(&qr.ID, &songID, &qr.SongTitle, &qr.SongArtist, &qr.SongVersion,
            &qr.RequestType, &qr.RequesterName, &notes, &qr.Status, &qr.IsManualRequest,
            &uuid, &fp, &qr.CreatedAt,
            &sID, &sTitle, &sArt, &sGenre, &sDur, &sCount, &sType, &sCre, &sUpd); err != nil {
            return nil, err
        }
        if songID.Valid {
            v := uint64(songID.Int64)
            qr.SongID = &v
        }
        if notes.Valid {
            v := notes.String
            qr.Notes = &v
        }
        if uuid.Valid {
            v := uuid.String
            qr.UserUUID = &v
        }
        if fp.Valid {
            v := fp.String
            qr.DeviceFingerprint = &v
        }
        if sID.Valid {
            song := model.Song{
                ID:           uint64(sID.Int64),
                Title:        sTitle.String,
                Artist:       sArt.String,
                RequestCount: int(sCount.Int64),
                SongType:     sType.String,
                CreatedAt:    sCre.Time,
                UpdatedAt:    sUpd.Time,
            }
            if sGenre.Valid {
                g := sGenre.String
                song.Genre = &g
            }
            if sDur.Valid {
                d := sDur.String
                song.Duration = &d
            }
            qr.Song = &song
        }
        out = append(out, qr)
    }
    return out, rows.Err()
}

// UpdateStatus sets the status of a request and returns the updated
// row. ErrRequestNotFound is returned when the id does not exist.
// Status validity is enforced by the caller.
func (r *RequestRepo) UpdateStatus(ctx context.Context, id uint64, status string) (model.Request, error) {
    if _, err := r.db.ExecContext(ctx, `UPDATE requests SET status = ? WHERE id = ?`, status, id); err != nil {
        return model.Request{}, err
    }
    // RowsAffected is 0 both for a missing row and for a no-op update, so
    // the re-read below decides whether the id exists.
    return r.GetByID(ctx, id)
}

// Delete removes a request by id and reports whether a row was removed.
func (r *RequestRepo) Delete(ctx context.Context, id uint64) (bool, error) {
    res, err := r.db.ExecContext(ctx, `DELETE FROM requests WHERE id = ?`, id)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    return n > 0, err
}

// DeleteByUser removes every request submitted by the given anonymous
// user. Used by the ban cascade; deleting an empty set is a no-op, so
// the operation is safe to retry.
func (r *RequestRepo) DeleteByUser(ctx context.Context, userUUID string) error {
    _, err := r.db.ExecContext(ctx, `DELETE FROM requests WHERE user_uuid = ?`, userUUID)
    return err
}

// ClearCompleted removes all played and skipped requests, optionally
// scoped to one request type.
func (r *RequestRepo) ClearCompleted(ctx context.Context, reqType string) error {
    q := `DELETE FROM requests WHERE status IN (?, ?)`
    args := []any{model.StatusPlayed, model.StatusSkipped}
    if reqType != "" {
        q += ` AND request_type = ?`
        args = append(args, reqType)
    }
    _, err := r.db.ExecContext(ctx, q, args...)
    return err
}

// ClearAll removes every request, optionally scoped to one request type.
func (r *RequestRepo) ClearAll(ctx context.Context, reqType string) error {
    q := `DELETE FROM requests`
    args := []any{}
    if reqType != "" {
        q += ` WHERE request_type = ?`
        args = append(args, reqType)
    }
    _, err := r.db.ExecContext(ctx, q, args...)
    return err
}

// Stats summarizes the queue in a single aggregate query. Completed
// counts played requests only.
func (r *RequestRepo) Stats(ctx context.Context, reqType string) (model.RequestStats, error) {
    q := `SELECT COUNT(*),
 COALESCE(SUM(status = ?), 0),
 COALESCE(SUM(status = ?), 0),
 COALESCE(SUM(is_manual_request), 0)
 FROM requests`
    args := []any{model.StatusPending, model.StatusPlayed}
    if reqType != "" {
        q += ` WHERE request_type = ?`
        args = append(args, reqType)
    }
    var st model.RequestStats
    err := r.db.QueryRowContext(ctx, q, args...).Scan(
        &st.TotalRequests, &st.Pending, &st.Completed, &st.Manual)
    return st, err
}

// LinkToSong points a manual request at a catalog song and clears its
// manual flag. Used when the DJ promotes a manual request into the
// library.
func (r *RequestRepo) LinkToSong(ctx context.Context, id, songID uint64) error {
    _, err := r.db.ExecContext(ctx,
        `UPDATE requests SET song_id = ?, is_manual_request = FALSE WHERE id = ?`, songID, id)
    return err
}
