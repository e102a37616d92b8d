package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/live-request-board/internal/model"
    "github.com/iliyamo/live-request-board/internal/utils"
)

// DJUserRepo provides access to DJ management accounts.
type DJUserRepo struct{ DB *sql.DB }

// NewDJUserRepo returns a new DJUserRepo bound to the given database.
func NewDJUserRepo(db *sql.DB) *DJUserRepo { return &DJUserRepo{DB: db} }

// Create inserts a DJ account with a bcrypt-hashed password and returns
// its ID.
func (r *DJUserRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
    username = strings.TrimSpace(username)
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO dj_users (username, password_hash) VALUES (?,?)`, username, hash)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, ErrUsernameExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByUsername fetches a DJ account by username, or ErrUserNotFound.
func (r *DJUserRepo) GetByUsername(ctx context.Context, username string) (model.DJUser, error) {
    var u model.DJUser
    err := r.DB.QueryRowContext(ctx,
        `SELECT id, username, password_hash, created_at, updated_at FROM dj_users WHERE username = ? LIMIT 1`,
        strings.TrimSpace(username)).
        Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
    if err == sql.ErrNoRows {
        return model.DJUser{}, ErrUserNotFound
    }
    return u, err
}

// Count reports how many DJ accounts exist. Used at boot to decide
// whether to seed the initial account.
func (r *DJUserRepo) Count(ctx context.Context) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM dj_users`).Scan(&n)
    return n, err
}
