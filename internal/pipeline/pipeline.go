// internal/pipeline/pipeline.go
//
// Site request pipeline: (tenant slug, page name, preview params) → 200
// HTML, 404, or 500.
//
// Context
// -------
// Stages run strictly in order with early exit:
//
//	ResolveTenant → CheckAccess → ResolveTheme/Preview → ResolvePalette
//	→ LoadContent → BuildNavigation → ResolveTemplatePath → Render
//
// Identity and access failures surface as plain-text 404s.  Content and
// palette resolution never fail the request — they degrade to defaults
// inside their packages.  Only a template engine failure produces a
// 500, and there is deliberately no fallback render for it: template
// bugs should be loud.  The error is logged with tenant, theme key, and
// page so it can be diagnosed.
package pipeline

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/atelier-sites/atelier/internal/access"
	"github.com/atelier-sites/atelier/internal/content"
	"github.com/atelier-sites/atelier/internal/head"
	"github.com/atelier-sites/atelier/internal/metrics"
	"github.com/atelier-sites/atelier/internal/page"
	"github.com/atelier-sites/atelier/internal/palette"
	"github.com/atelier-sites/atelier/internal/requestinfo"
	"github.com/atelier-sites/atelier/internal/tenant"
	"github.com/atelier-sites/atelier/internal/theme"
	"github.com/atelier-sites/atelier/internal/view"
)

// Pipeline wires the resolution stages together.  One instance serves
// all requests; it holds no per-request state.
type Pipeline struct {
	db       *sqlx.DB
	themes   *theme.Resolver
	palettes *palette.Resolver
	loader   *content.Loader
	views    *view.Renderer
}

// New constructs the pipeline over the shared DB and view renderer.
func New(db *sqlx.DB, views *view.Renderer, defaultTheme string) *Pipeline {
	return &Pipeline{
		db:       db,
		themes:   &theme.Resolver{DB: db, DefaultName: defaultTheme},
		palettes: &palette.Resolver{DB: db},
		loader:   &content.Loader{DB: db},
		views:    views,
	}
}

// Routes mounts the site paths on a chi router.
func (p *Pipeline) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{tenant}", p.ServePage)
	r.Get("/{tenant}/{page}", p.ServePage)
	return r
}

// ServePage runs the full pipeline for one request.
func (p *Pipeline) ServePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "tenant")

	pageName := chi.URLParam(r, "page")
	if pageName == "" {
		pageName = string(page.Home)
	}
	if !page.Valid(pageName) {
		notFound(w, "page not found")
		return
	}
	pg := page.Type(pageName)

	preview := ParsePreview(r.URL.Query())

	// ResolveTenant + CheckAccess.
	decision, err := access.Resolve(ctx, p.db, slug, pg)
	if err != nil {
		var pageErr *access.PageError
		switch {
		case errors.Is(err, tenant.ErrNotFound):
			metrics.TenantLookupMissTotal.Inc()
			notFound(w, "site not found")
		case errors.As(err, &pageErr):
			notFound(w, pageErr.Error())
		default:
			zap.S().Errorw("access resolution failed",
				"tenant", slug, "page", pg, "err", err)
			notFound(w, "site not found")
		}
		return
	}
	ten := decision.Tenant

	// ResolveTheme (preview-aware) and palette id tiering: the active
	// theme's default palette wins, else the tenant's own palette.
	themeRes := p.themes.Resolve(ctx, ten.ThemeID, preview.Theme)
	paletteID := ten.PaletteID
	if themeRes.Record != nil && themeRes.Record.DefaultPaletteID != nil {
		paletteID = themeRes.Record.DefaultPaletteID
	}

	colors := p.palettes.Resolve(ctx, paletteID, preview.Colors)

	// LoadContent (gallery expansion happens inside the loader).
	body := p.loader.Load(ctx, ten, pg)

	nav := buildNavigation(slug, decision.Published, ten.CalendarEnabled, pg)

	viewPath := p.themes.TemplatePath(ctx, themeRes.Key, pageName)
	layoutPath := p.themes.LayoutPath(themeRes.Key)

	hd := head.New()
	hd.SetTitle(ten.DisplayName + " — " + page.Labels[pg])
	hd.Meta(`<meta charset="utf-8">`)
	hd.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	hd.Link(`<link rel="icon" href="/favicon.ico">`)

	data := map[string]any{
		"Tenant":          ten,
		"Page":            pg,
		"Body":            body,
		"Colors":          colors,
		"Nav":             nav,
		"Head":            hd,
		"CalendarEnabled": ten.CalendarEnabled,
		"Info":            requestinfo.FromContext(ctx),
		"Title":           ten.DisplayName,
	}

	// Render to a buffer so a mid-template failure never leaks a
	// half-written page before the 500.
	var buf bytes.Buffer
	if err := p.views.Render(&buf, themeRes.Key, viewPath, layoutPath, data); err != nil {
		metrics.PageRenderErrorsTotal.Inc()
		zap.S().Errorw("template render failed",
			"tenant", slug, "theme", themeRes.Key, "page", pg, "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	metrics.PageRenderTotal.WithLabelValues(pageName).Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func notFound(w http.ResponseWriter, msg string) {
	http.Error(w, msg, http.StatusNotFound)
}
