// Package queue defines message payloads exchanged over the message broker.
package queue

// RequestSubmittedEvent is published whenever a guest's request is
// accepted into the queue. The DJ's desktop notifier consumes these
// without touching the primary database.
type RequestSubmittedEvent struct {
    RequestID       uint64 `json:"request_id"`
    RequesterName   string `json:"requester_name"`
    SongTitle       string `json:"song_title"`
    SongArtist      string `json:"song_artist"`
    SongVersion     string `json:"song_version"`
    RequestType     string `json:"request_type"`
    IsManualRequest bool   `json:"is_manual_request"`
    SubmittedAt     string `json:"submitted_at"`
}
