// internal/content/loader.go
//
// Page-content loading: dispatch, degradation, and casing.
//
// Context
// -------
// Each page type has a dedicated loader strategy registered in the
// table below — a tagged-variant dispatch, not a conditional chain.
// Every strategy returns a normalized content map in the page's casing
// convention.  Loaders never fail the request: a storage error on the
// primary row degrades to an empty map (logged and counted), and the
// caller renders the page with defaults.
package content

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/atelier-sites/atelier/internal/metrics"
	"github.com/atelier-sites/atelier/internal/page"
	"github.com/atelier-sites/atelier/internal/tenant"
)

// Loader fetches and normalizes page content for one tenant site.
type Loader struct {
	DB *sqlx.DB
}

// strategy loads one page type's content.
type strategy func(*Loader, context.Context, *tenant.Record) map[string]any

// strategies is the per-page dispatch table.
var strategies = map[page.Type]strategy{
	page.Home:      (*Loader).loadHome,
	page.About:     (*Loader).loadAbout,
	page.Contact:   loadSimplePage(page.Contact),
	page.Rates:     (*Loader).loadRates,
	page.Etiquette: loadSimplePage(page.Etiquette),
	page.Calendar:  loadSimplePage(page.Calendar),
	page.Gallery:   (*Loader).loadGallery,
}

// Load dispatches to the page's strategy and applies its casing
// convention.  The result is never nil.
func (l *Loader) Load(ctx context.Context, ten *tenant.Record, p page.Type) map[string]any {
	s, ok := strategies[p]
	if !ok {
		return map[string]any{}
	}
	m := s(l, ctx, ten)
	if m == nil {
		m = map[string]any{}
	}
	return applyCasing(p, m)
}

// primary loads the page's single content row, degrading to an empty
// map on storage errors and to nil on "no row yet".
func (l *Loader) primary(ctx context.Context, p page.Type, modelID uint64) (map[string]any, bool) {
	m, err := primaryRow(ctx, l.DB, p.ContentTable(), modelID)
	switch {
	case err == nil:
		return m, true
	case err == errNoRow:
		return map[string]any{}, false
	default:
		zap.S().Warnw("primary content unavailable, rendering defaults",
			"page", p, "model_id", modelID, "err", err)
		metrics.ContentDegradedTotal.Inc()
		return map[string]any{}, false
	}
}

// loadSimple builds a strategy for pages whose content is just their
// primary row (contact, etiquette, calendar).
func loadSimplePage(p page.Type) strategy {
	return func(l *Loader, ctx context.Context, ten *tenant.Record) map[string]any {
		m, _ := l.primary(ctx, p, ten.ID)
		return m
	}
}
