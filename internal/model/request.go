package model

import "time"

// Request lifecycle statuses. A request is created as StatusPending and
// moves to exactly one of the terminal statuses below; it never returns
// to pending.
const (
    StatusPending = "pending"
    StatusPlayed  = "played"
    StatusSkipped = "skipped"
    StatusRemoved = "removed"
)

// Request types distinguish the DJ queue from the karaoke queue.
const (
    TypeDJ      = "dj"
    TypeKaraoke = "karaoke"
)

// Song versions a guest can ask for.
const (
    VersionStandard = "Standard"
    VersionKaraoke  = "Karaoke"
)

// ValidStatus reports whether s is one of the four defined request statuses.
func ValidStatus(s string) bool {
    switch s {
    case StatusPending, StatusPlayed, StatusSkipped, StatusRemoved:
        return true
    }
    return false
}

// Request represents a guest's song request as stored in the `requests`
// table. Title/artist are denormalized onto the row so a request survives
// catalog edits; SongID links back to the catalog when the guest picked
// a library song rather than typing a manual request.
//
// Fields:
//  ID                – primary key identifier.
//  SongID            – catalog song reference (null for manual requests).
//  SongTitle         – requested title as submitted.
//  SongArtist        – requested artist as submitted.
//  SongVersion       – "Standard" or "Karaoke".
//  RequestType       – "dj" or "karaoke".
//  RequesterName     – display name of the guest.
//  Notes             – optional free-text note to the DJ.
//  Status            – lifecycle status (see constants above).
//  IsManualRequest   – true when the guest typed the song by hand.
//  UserUUID          – anonymous submitter identifier (client-generated).
//  DeviceFingerprint – best-effort device correlation signal.
//  CreatedAt         – submission timestamp.
type Request struct {
    ID                uint64    `json:"id"`                // requests.id
    SongID            *uint64   `json:"songId"`            // requests.song_id (nullable)
    SongTitle         string    `json:"songTitle"`         // requests.song_title
    SongArtist        string    `json:"songArtist"`        // requests.song_artist
    SongVersion       string    `json:"songVersion"`       // requests.song_version
    RequestType       string    `json:"requestType"`       // requests.request_type
    RequesterName     string    `json:"requesterName"`     // requests.requester_name
    Notes             *string   `json:"notes"`             // requests.notes (nullable)
    Status            string    `json:"status"`            // requests.status
    IsManualRequest   bool      `json:"isManualRequest"`   // requests.is_manual_request
    UserUUID          *string   `json:"userUuid"`          // requests.user_uuid (nullable)
    DeviceFingerprint *string   `json:"deviceFingerprint"` // requests.device_fingerprint (nullable)
    CreatedAt         time.Time `json:"timestamp"`         // requests.created_at
}

// QueueRequest is a Request joined with its catalog song, as served to
// the queue views. Song is nil for manual requests.
type QueueRequest struct {
    Request
    Song *Song `json:"song,omitempty"`
}

// RequestStats summarizes the queue for the dashboard header.
// Completed counts played requests only; skipped requests are excluded
// from both pending and completed on purpose.
type RequestStats struct {
    TotalRequests int `json:"totalRequests"`
    Pending       int `json:"pending"`
    Completed     int `json:"completed"`
    Manual        int `json:"manual"`
}
