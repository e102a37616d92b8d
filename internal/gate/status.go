package gate

import (
    "context"

    "github.com/iliyamo/live-request-board/internal/model"
)

// State is the screen-level access state a client lands in. States are
// evaluated in strict priority order; the first match wins. Offline is
// purely a client condition (no backend connectivity) and therefore has
// no representation here.
type State string

const (
    // StateMaintenance hides the public screens behind a maintenance
    // notice. DJ sessions bypass it.
    StateMaintenance State = "maintenance"
    // StateBanned blocks all mutating actions for the user. The server
    // enforces this in SubmitRequest regardless of what the client shows.
    StateBanned State = "banned"
    // StateRequestsDisabled blocks public submission; a DJ override
    // login is offered.
    StateRequestsDisabled State = "requests_disabled"
    // StateNormal shows the public request screens, gated by terms
    // acceptance for users who have not yet acknowledged them.
    StateNormal State = "normal"
)

// Resolve evaluates the access state for one client: maintenance before
// ban, ban before requests-disabled, then normal. A DJ session bypasses
// maintenance and requests-disabled but not a ban on its anonymous id
// (a DJ never submits as a guest, so the case is theoretical).
func (g *Gate) Resolve(ctx context.Context, status model.SystemStatus, userUUID string, isDJ bool) (State, error) {
    if status.MaintenanceMode && !isDJ {
        return StateMaintenance, nil
    }
    if userUUID != "" {
        ban, err := g.CheckBan(ctx, userUUID)
        if err != nil {
            return "", err
        }
        if ban != nil {
            return StateBanned, nil
        }
    }
    if !status.RequestsEnabled && !isDJ {
        return StateRequestsDisabled, nil
    }
    return StateNormal, nil
}

// NeedsTermsGate reports whether the client must acknowledge the terms
// before interacting. The gate applies only in the normal state with
// requests enabled, and never to DJ sessions.
func (g *Gate) NeedsTermsGate(ctx context.Context, state State, status model.SystemStatus, userUUID string, isDJ bool) (bool, error) {
    if isDJ || state != StateNormal || !status.RequestsEnabled {
        return false, nil
    }
    t, err := g.CheckTerms(ctx, userUUID)
    if err != nil {
        return false, err
    }
    return t == nil, nil
}
