// internal/theme/model.go
//
// Theme row structures and query helpers.
//
// Context
// -------
// Theme definitions are immutable from the engine's perspective: name,
// display name, default palette reference, and active flag.  Per-theme
// per-page template overrides live in `theme_templates` and are
// consulted by the resolver before falling back to the conventional
// path.
package theme

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Record mirrors one row in the `themes` table.
type Record struct {
	ID               uint64  `db:"id"`
	Name             string  `db:"name"`
	DisplayName      string  `db:"display_name"`
	DefaultPaletteID *uint64 `db:"default_palette_id"`
	Active           bool    `db:"active"`
}

// ByID fetches one active theme row.
func ByID(ctx context.Context, db *sqlx.DB, id uint64) (*Record, error) {
	const q = `
        SELECT id, name, display_name, default_palette_id, active
        FROM   themes
        WHERE  id = ? AND active = 1
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ByName fetches one active theme row by its storage name.
func ByName(ctx context.Context, db *sqlx.DB, name string) (*Record, error) {
	const q = `
        SELECT id, name, display_name, default_palette_id, active
        FROM   themes
        WHERE  name = ? AND active = 1
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, name); err != nil {
		return nil, err
	}
	return &rec, nil
}

// templateOverride looks up an explicit template path for one theme key
// and page.  Empty string means "no override".
func templateOverride(ctx context.Context, db *sqlx.DB, themeKey, pageName string) (string, error) {
	const q = `
        SELECT template_path
        FROM   theme_templates
        WHERE  theme_key = ? AND page = ?
        LIMIT  1`
	var path string
	err := db.GetContext(ctx, &path, q, themeKey, pageName)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
