package model

import "time"

// DJUser is a management account able to operate the dashboard. There
// is normally exactly one, seeded from deployment configuration the
// first time the service boots against an empty table.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type DJUser struct {
    ID           uint64    // dj_users.id
    Username     string    // dj_users.username
    PasswordHash string    // dj_users.password_hash
    CreatedAt    time.Time // dj_users.created_at
    UpdatedAt    time.Time // dj_users.updated_at
}
