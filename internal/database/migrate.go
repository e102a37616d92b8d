package database

import (
    "context"
    "database/sql"
    "log"

    "github.com/iliyamo/live-request-board/internal/repository"
)

// schema holds the idempotent table definitions for the request board.
// Statements run in order on every boot; CREATE TABLE IF NOT EXISTS
// keeps restarts cheap without a migration tool.
var schema = []string{
    `CREATE TABLE IF NOT EXISTS dj_users (
        id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        username      VARCHAR(50)  NOT NULL UNIQUE,
        password_hash TEXT         NOT NULL,
        created_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS songs (
        id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        title         TEXT         NOT NULL,
        artist        TEXT         NOT NULL,
        genre         TEXT         NULL,
        duration      VARCHAR(16)  NULL,
        request_count INT          NOT NULL DEFAULT 0,
        song_type     VARCHAR(16)  NOT NULL DEFAULT 'dj',
        created_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS requests (
        id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        song_id            BIGINT UNSIGNED NULL,
        song_title         TEXT         NOT NULL,
        song_artist        TEXT         NOT NULL,
        song_version       VARCHAR(16)  NOT NULL DEFAULT 'Standard',
        request_type       VARCHAR(16)  NOT NULL DEFAULT 'dj',
        requester_name     VARCHAR(50)  NOT NULL,
        notes              TEXT         NULL,
        status             VARCHAR(16)  NOT NULL DEFAULT 'pending',
        is_manual_request  BOOLEAN      NOT NULL DEFAULT FALSE,
        user_uuid          VARCHAR(64)  NULL,
        device_fingerprint VARCHAR(64)  NULL,
        created_at         TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
        KEY idx_requests_user (user_uuid),
        KEY idx_requests_type (request_type),
        CONSTRAINT fk_requests_song FOREIGN KEY (song_id) REFERENCES songs(id) ON DELETE SET NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS ban_list (
        id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        user_uuid          VARCHAR(64)  NOT NULL,
        device_fingerprint VARCHAR(64)  NULL,
        ban_reason         TEXT         NOT NULL,
        ban_timestamp      TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
        is_permanent       BOOLEAN      NOT NULL DEFAULT TRUE,
        expires_at         TIMESTAMP    NULL,
        KEY idx_ban_user (user_uuid)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS terms_acceptance (
        id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        user_uuid          VARCHAR(64)  NOT NULL UNIQUE,
        device_fingerprint VARCHAR(64)  NULL,
        accepted_at        TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    "CREATE TABLE IF NOT EXISTS system_settings (" +
        " id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY," +
        " `key`      VARCHAR(64) NOT NULL UNIQUE," +
        " value      TEXT        NOT NULL," +
        " updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" +
        ") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
}

// Migrate creates all tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
    for _, stmt := range schema {
        if _, err := db.ExecContext(ctx, stmt); err != nil {
            return err
        }
    }
    return nil
}

// SeedInitialDJ creates the first DJ account from deployment
// configuration when no account exists yet. Seeding is skipped with a
// warning when no password is configured, so a fresh deployment is
// never reachable with a known default credential.
func SeedInitialDJ(ctx context.Context, db *sql.DB, username, password string, bcryptCost int) error {
    repo := repository.NewDJUserRepo(db)
    n, err := repo.Count(ctx)
    if err != nil {
        return err
    }
    if n > 0 {
        return nil
    }
    if password == "" {
        log.Printf("database: no DJ users exist and INITIAL_DJ_PASSWORD is unset; create an account manually")
        return nil
    }
    if _, err := repo.Create(ctx, username, password, bcryptCost); err != nil {
        return err
    }
    log.Printf("database: initial DJ account created: %s", username)
    return nil
}
