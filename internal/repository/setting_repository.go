package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/live-request-board/internal/model"
)

// SettingRepo stores global key/value system settings with upsert
// semantics keyed on the unique `key` column.
type SettingRepo struct {
    db *sql.DB
}

// NewSettingRepo returns a new SettingRepo bound to the given database.
func NewSettingRepo(db *sql.DB) *SettingRepo { return &SettingRepo{db: db} }

// Get returns the stored value for a key, or ErrSettingNotFound when
// the key has never been written.
func (r *SettingRepo) Get(ctx context.Context, key string) (string, error) {
    var v string
    err := r.db.QueryRowContext(ctx,
        `SELECT value FROM system_settings WHERE `+"`key`"+` = ? LIMIT 1`, key).Scan(&v)
    if err == sql.ErrNoRows {
        return "", ErrSettingNotFound
    }
    return v, err
}

// Set upserts a setting by key.
func (r *SettingRepo) Set(ctx context.Context, key, value string) error {
    const q = "INSERT INTO system_settings (`key`, value) VALUES (?,?)" +
        " ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = CURRENT_TIMESTAMP"
    _, err := r.db.ExecContext(ctx, q, key, value)
    return err
}

// List returns all settings, for the dashboard's settings panel.
func (r *SettingRepo) List(ctx context.Context) ([]model.SystemSetting, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT id, `key`, value, updated_at FROM system_settings ORDER BY `key`")
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.SystemSetting, 0)
    for rows.Next() {
        var s model.SystemSetting
        if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}
