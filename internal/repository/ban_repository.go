package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/live-request-board/internal/model"
)

// BanRepo provides data access to the ban_list table. Expiry of
// temporary bans is decided by the access gate; this repository only
// stores and retrieves rows.
type BanRepo struct {
    db *sql.DB
}

// NewBanRepo returns a new BanRepo bound to the given database.
func NewBanRepo(db *sql.DB) *BanRepo { return &BanRepo{db: db} }

const banCols = `id, user_uuid, device_fingerprint, ban_reason, ban_timestamp, is_permanent, expires_at`

func scanBan(s interface{ Scan(...any) error }, b *model.Ban) error {
    var (
        fp  sql.NullString
        exp sql.NullTime
    )
    if err := s.Scan(&b.ID, &b.UserUUID, &fp, &b.BanReason, &b.BanTimestamp,
        &b.IsPermanent, &exp); err != nil {
        return err
    }
    if fp.Valid {
        v := fp.String
        b.DeviceFingerprint = &v
    }
    if exp.Valid {
        t := exp.Time
        b.ExpiresAt = &t
    }
    return nil
}

// Create inserts a ban row and populates the generated ID and the
// database-assigned timestamp on the provided record.
func (r *BanRepo) Create(ctx context.Context, b *model.Ban) error {
    const q = `INSERT INTO ban_list (user_uuid, device_fingerprint, ban_reason, is_permanent, expires_at)
 VALUES (?,?,?,?,?)`
    res, err := r.db.ExecContext(ctx, q, b.UserUUID, b.DeviceFingerprint, b.BanReason,
        b.IsPermanent, b.ExpiresAt)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    const sel = `SELECT ` + banCols + ` FROM ban_list WHERE id = ?`
    return scanBan(r.db.QueryRowContext(ctx, sel, b.ID), b)
}

// Find returns the ban row for a user, or ErrBanNotFound. When several
// rows exist for the same user the most recent one wins.
func (r *BanRepo) Find(ctx context.Context, userUUID string) (model.Ban, error) {
    const q = `SELECT ` + banCols + ` FROM ban_list WHERE user_uuid = ?
 ORDER BY ban_timestamp DESC, id DESC LIMIT 1`
    var b model.Ban
    if err := scanBan(r.db.QueryRowContext(ctx, q, userUUID), &b); err != nil {
        if err == sql.ErrNoRows {
            return model.Ban{}, ErrBanNotFound
        }
        return model.Ban{}, err
    }
    return b, nil
}

// List returns all bans, newest first.
func (r *BanRepo) List(ctx context.Context) ([]model.Ban, error) {
    const q = `SELECT ` + banCols + ` FROM ban_list ORDER BY ban_timestamp DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Ban, 0)
    for rows.Next() {
        var b model.Ban
        if err := scanBan(rows, &b); err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

// Delete removes a ban by id and reports whether a row was removed.
func (r *BanRepo) Delete(ctx context.Context, id uint64) (bool, error) {
    res, err := r.db.ExecContext(ctx, `DELETE FROM ban_list WHERE id = ?`, id)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    return n > 0, err
}
