package model

import "time"

// TermsAcceptance records that an anonymous user acknowledged the terms
// of service. At most one row exists per user UUID; re-accepting is a
// no-op that returns the original row.
//
// Fields:
//  ID                – primary key identifier.
//  UserUUID          – accepting anonymous user identifier (unique).
//  DeviceFingerprint – fingerprint at acceptance time, if known.
//  AcceptedAt        – acceptance timestamp.
type TermsAcceptance struct {
    ID                uint64    `json:"id"`                // terms_acceptance.id
    UserUUID          string    `json:"userUuid"`          // terms_acceptance.user_uuid
    DeviceFingerprint *string   `json:"deviceFingerprint"` // terms_acceptance.device_fingerprint (nullable)
    AcceptedAt        time.Time `json:"acceptedAt"`        // terms_acceptance.accepted_at
}
