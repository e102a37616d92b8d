package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/live-request-board/internal/model"
)

// TermsRepo tracks terms-of-service acceptance per anonymous user. The
// user_uuid column carries a unique constraint, which makes Record
// naturally idempotent.
type TermsRepo struct {
    db *sql.DB
}

// NewTermsRepo returns a new TermsRepo bound to the given database.
func NewTermsRepo(db *sql.DB) *TermsRepo { return &TermsRepo{db: db} }

const termsCols = `id, user_uuid, device_fingerprint, accepted_at`

func scanTerms(s interface{ Scan(...any) error }, t *model.TermsAcceptance) error {
    var fp sql.NullString
    if err := s.Scan(&t.ID, &t.UserUUID, &fp, &t.AcceptedAt); err != nil {
        return err
    }
    if fp.Valid {
        v := fp.String
        t.DeviceFingerprint = &v
    }
    return nil
}

// Find returns the acceptance row for a user, or ErrTermsNotFound.
func (r *TermsRepo) Find(ctx context.Context, userUUID string) (model.TermsAcceptance, error) {
    const q = `SELECT ` + termsCols + ` FROM terms_acceptance WHERE user_uuid = ? LIMIT 1`
    var t model.TermsAcceptance
    if err := scanTerms(r.db.QueryRowContext(ctx, q, userUUID), &t); err != nil {
        if err == sql.ErrNoRows {
            return model.TermsAcceptance{}, ErrTermsNotFound
        }
        return model.TermsAcceptance{}, err
    }
    return t, nil
}

// Record inserts an acceptance row for the user, or returns the existing
// one unchanged when the user has already accepted. The original
// timestamp is preserved on re-accept.
func (r *TermsRepo) Record(ctx context.Context, userUUID string, fingerprint *string) (model.TermsAcceptance, error) {
    if t, err := r.Find(ctx, userUUID); err == nil {
        return t, nil
    } else if err != ErrTermsNotFound {
        return model.TermsAcceptance{}, err
    }
    const q = `INSERT INTO terms_acceptance (user_uuid, device_fingerprint) VALUES (?,?)`
    if _, err := r.db.ExecContext(ctx, q, userUUID, fingerprint); err != nil {
        // A concurrent accept may have won the unique-key race (MySQL 1062);
        // fall back to the row it created.
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return r.Find(ctx, userUUID)
        }
        return model.TermsAcceptance{}, err
    }
    return r.Find(ctx, userUUID)
}

// ClearAll removes every acceptance row. Used by the explicit DJ action
// and by the event-off cascade.
func (r *TermsRepo) ClearAll(ctx context.Context) error {
    _, err := r.db.ExecContext(ctx, `DELETE FROM terms_acceptance`)
    return err
}
