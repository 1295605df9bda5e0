// internal/content/about.go
//
// About page loader with lazy default-row initialization.
//
// Context
// -------
// The about page auto-creates a default content row on first access
// instead of returning empty content — a lazy-initialization contract,
// not an error path.  Concurrent first requests may race to insert;
// the unique (model_id) key makes the insert idempotent, and a
// duplicate-key rejection is treated as success.
package content

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/atelier-sites/atelier/internal/page"
	"github.com/atelier-sites/atelier/internal/tenant"
)

func (l *Loader) loadAbout(ctx context.Context, ten *tenant.Record) map[string]any {
	m, found := l.primary(ctx, page.About, ten.ID)
	if found {
		return m
	}

	if err := l.insertAboutDefaults(ctx, ten); err != nil {
		zap.S().Warnw("about defaults insert failed, rendering empty",
			"model_id", ten.ID, "err", err)
		return m
	}

	if fresh, ok := l.primary(ctx, page.About, ten.ID); ok {
		return fresh
	}
	return m
}

// insertAboutDefaults writes the default about row.  "Row already
// exists" is success: another request won the race.
func (l *Loader) insertAboutDefaults(ctx context.Context, ten *tenant.Record) error {
	const q = `
        INSERT INTO about_content (model_id, published, headline, bio)
        VALUES (?, 1, ?, ?)`
	_, err := l.DB.ExecContext(ctx, q, ten.ID,
		"About "+ten.DisplayName,
		"Welcome!  This page has not been written yet.")
	if err != nil && isDuplicateKey(err) {
		return nil
	}
	return err
}

// isDuplicateKey recognises the MySQL/MariaDB duplicate-entry error
// (1062) without importing driver-specific types.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") || strings.Contains(msg, "Duplicate entry")
}
