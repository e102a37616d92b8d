package model

import "time"

// Well-known system setting keys.
const (
    SettingRequestsEnabled = "requests_enabled"
    SettingMaintenanceMode = "maintenance_mode"
)

// SystemSetting is a single key/value row in the `system_settings`
// table. Settings are upserted by key.
type SystemSetting struct {
    ID        uint64    `json:"id"`        // system_settings.id
    Key       string    `json:"key"`       // system_settings.key (unique)
    Value     string    `json:"value"`     // system_settings.value
    UpdatedAt time.Time `json:"updatedAt"` // system_settings.updated_at
}

// SystemStatus is the aggregate flag view served to every client on
// page load and on the status poll. RequestsEnabled and MaintenanceMode
// come from mutable settings; KaraokeEnabled is a deployment feature
// flag and cannot be toggled at runtime.
type SystemStatus struct {
    RequestsEnabled bool `json:"requestsEnabled"`
    MaintenanceMode bool `json:"maintenanceMode"`
    KaraokeEnabled  bool `json:"karaokeEnabled"`
}
