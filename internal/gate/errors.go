// Package gate implements the request lifecycle and access-control
// policy: ban enforcement at submission time, submission validation,
// the event-off cascade and the global screen-state resolution. It
// operates over small store interfaces so tests can substitute
// in-memory implementations for the SQL repositories.
package gate

import (
    "fmt"
    "time"

    "github.com/iliyamo/live-request-board/internal/model"
)

// ValidationError reports a single invalid or missing field. Handlers
// translate it to HTTP 400 with the offending field name so the client
// can highlight the input.
type ValidationError struct {
    Field   string
    Message string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// BannedError rejects a submission from a banned user. It carries the
// ban so handlers can surface the reason and timestamp; HTTP 403.
type BannedError struct {
    Ban model.Ban
}

func (e *BannedError) Error() string {
    return fmt.Sprintf("user %s is banned: %s", e.Ban.UserUUID, e.Ban.BanReason)
}

// Reason returns the human-readable ban reason.
func (e *BannedError) Reason() string { return e.Ban.BanReason }

// Timestamp returns when the ban was created.
func (e *BannedError) Timestamp() time.Time { return e.Ban.BanTimestamp }
