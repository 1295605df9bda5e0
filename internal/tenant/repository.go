// internal/tenant/repository.go
//
// Query helpers for the `models` table.
package tenant

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a slug has no matching tenant row.
var ErrNotFound = errors.New("tenant not found")

// BySlug fetches a single tenant row by its unique slug.  All three
// lifecycle statuses are addressable; unknown statuses and missing rows
// collapse to ErrNotFound.  The caller supplies a context so the lookup
// respects request deadlines.
func BySlug(ctx context.Context, db *sqlx.DB, slug string) (*Record, error) {
	const q = `
        SELECT id, slug, display_name, email, status,
               theme_id, palette_id, calendar_enabled, upcoming_events,
               created_at, updated_at
        FROM   models
        WHERE  slug = ?
          AND  status IN ('active', 'trial', 'inactive')
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
