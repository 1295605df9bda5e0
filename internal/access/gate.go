// internal/access/gate.go
//
// Access gate: tenant existence, per-page publication, and feature
// entitlement.
//
// Context
// -------
// The pipeline calls Resolve first on every request because it is cheap
// and short-circuits to a 404.  Beyond the yes/no answer for the
// requested page, Resolve also returns the full per-page publication
// map so the navigation builder can hide unpublished or unentitled
// links without re-querying.
//
// Publication flags live on each page's dedicated content table.  A
// flag that cannot be fetched (storage error) fails OPEN — the page is
// treated as published — so a partial content-table issue never blanks
// the whole site.  A page with no content row at all is also treated as
// published; content loading later degrades to defaults.
package access

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/atelier-sites/atelier/internal/page"
	"github.com/atelier-sites/atelier/internal/tenant"
)

// ErrTenantNotFound mirrors tenant.ErrNotFound at the gate level.
var ErrTenantNotFound = tenant.ErrNotFound

// PageError reports an existing tenant whose requested page may not be
// served.  It renders as a 404 naming the page.
type PageError struct {
	Page page.Type
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %q is not available", e.Page)
}

// Decision carries everything downstream stages need from the gate.
type Decision struct {
	Tenant    *tenant.Record
	Published map[page.Type]bool
}

// Resolve looks up the tenant by slug, builds the publication map, and
// checks the requested page against publication state and feature
// entitlement.  The calendar page is gated on the tenant's entitlement
// flag independent of its publication flag.
func Resolve(ctx context.Context, db *sqlx.DB, slug string, requested page.Type) (*Decision, error) {
	rec, err := tenant.BySlug(ctx, db, slug)
	if err != nil {
		return nil, err
	}

	if requested == page.Calendar && !rec.CalendarEnabled {
		return nil, &PageError{Page: requested}
	}

	pub := publicationMap(ctx, db, rec.ID)

	if !pub[requested] {
		return nil, &PageError{Page: requested}
	}

	return &Decision{Tenant: rec, Published: pub}, nil
}

// publicationMap fetches each page type's published flag.  Storage
// errors fail open per page; only an explicit published = 0 hides a
// page.
func publicationMap(ctx context.Context, db *sqlx.DB, modelID uint64) map[page.Type]bool {
	pub := make(map[page.Type]bool, len(page.NavOrder))
	for _, p := range page.NavOrder {
		pub[p] = pagePublished(ctx, db, p, modelID)
	}
	return pub
}

func pagePublished(ctx context.Context, db *sqlx.DB, p page.Type, modelID uint64) bool {
	q := fmt.Sprintf(`SELECT published FROM %s WHERE model_id = ? LIMIT 1`, p.ContentTable())

	var published bool
	err := db.GetContext(ctx, &published, q, modelID)
	switch {
	case err == nil:
		return published
	case errors.Is(err, sql.ErrNoRows):
		// No content row yet; the loader will fill in defaults.
		return true
	default:
		zap.S().Warnw("publication flag unavailable, failing open",
			"page", p, "model_id", modelID, "err", err)
		return true
	}
}
