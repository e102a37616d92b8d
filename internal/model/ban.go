package model

import "time"

// Ban restricts a specific anonymous user from submitting requests.
// A ban is either permanent or carries an expiry; expired temporary
// bans are removed lazily the next time the user is checked.
//
// Fields:
//  ID                – primary key identifier.
//  UserUUID          – banned anonymous user identifier.
//  DeviceFingerprint – fingerprint recorded at ban time, if known.
//  BanReason         – required human-readable reason.
//  BanTimestamp      – when the ban was created.
//  IsPermanent       – true for permanent bans.
//  ExpiresAt         – expiry for temporary bans (null when permanent).
type Ban struct {
    ID                uint64     `json:"id"`                // ban_list.id
    UserUUID          string     `json:"userUuid"`          // ban_list.user_uuid
    DeviceFingerprint *string    `json:"deviceFingerprint"` // ban_list.device_fingerprint (nullable)
    BanReason         string     `json:"banReason"`         // ban_list.ban_reason
    BanTimestamp      time.Time  `json:"banTimestamp"`      // ban_list.ban_timestamp
    IsPermanent       bool       `json:"isPermanent"`       // ban_list.is_permanent
    ExpiresAt         *time.Time `json:"expiresAt"`         // ban_list.expires_at (nullable)
}

// Expired reports whether the ban is a temporary ban whose expiry has
// passed at the given instant. Permanent bans never expire.
func (b Ban) Expired(now time.Time) bool {
    return !b.IsPermanent && b.ExpiresAt != nil && now.After(*b.ExpiresAt)
}
