package model

import "time"

// Song is a catalog entry guests can pick from when requesting.
// RequestCount tracks how often the song has been requested across
// events and is incremented as a side effect of submission.
//
// Fields:
//  ID           – primary key identifier.
//  Title        – song title.
//  Artist       – performing artist.
//  Genre        – optional genre label.
//  Duration     – optional display duration ("3:45").
//  RequestCount – lifetime request counter.
//  SongType     – "dj", "karaoke" or "both".
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Song struct {
    ID           uint64    `json:"id"`           // songs.id
    Title        string    `json:"title"`        // songs.title
    Artist       string    `json:"artist"`       // songs.artist
    Genre        *string   `json:"genre"`        // songs.genre (nullable)
    Duration     *string   `json:"duration"`     // songs.duration (nullable)
    RequestCount int       `json:"requestCount"` // songs.request_count
    SongType     string    `json:"songType"`     // songs.song_type
    CreatedAt    time.Time `json:"createdAt"`    // songs.created_at
    UpdatedAt    time.Time `json:"updatedAt"`    // songs.updated_at
}
