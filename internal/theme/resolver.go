// internal/theme/resolver.go
//
// Active-theme and template-path resolution.
//
// Context
// -------
// Resolve answers two questions for every request:
//
//  1. Which theme record is active?  Preview theme first (when it names
//     an existing, active theme), then the tenant's assigned theme,
//     then the configured default.  A malformed or unknown preview
//     value degrades silently to the next tier — previews must never
//     hard-fail a page.
//  2. Which template files serve this page?  An explicit row in
//     `theme_templates` wins over the conventional
//     `{themeKey}/pages/{pageName}` path, never the reverse.  Override
//     paths are normalized first: any storage-specific "views/" prefix
//     and file extension are stripped.
package theme

import (
	"context"
	"path"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Resolution carries the active theme and the derived canonical key.
type Resolution struct {
	Record *Record // nil when even the default theme row is absent
	Key    string  // canonical theme key, always set
}

// Resolver resolves themes and template paths against the shared DB.
type Resolver struct {
	DB          *sqlx.DB
	DefaultName string // configured default theme name
}

// Resolve picks the active theme record.  previewTheme is the raw
// `preview_theme` query value: a numeric id or a theme name, or empty.
func (r *Resolver) Resolve(ctx context.Context, assignedID *uint64, previewTheme string) Resolution {
	if previewTheme != "" {
		if rec := r.lookupPreview(ctx, previewTheme); rec != nil {
			return Resolution{Record: rec, Key: CanonicalKey(rec.Name)}
		}
		zap.S().Debugw("preview theme not resolvable, ignoring", "preview", previewTheme)
	}

	if assignedID != nil {
		if rec, err := ByID(ctx, r.DB, *assignedID); err == nil {
			return Resolution{Record: rec, Key: CanonicalKey(rec.Name)}
		}
	}

	if rec, err := ByName(ctx, r.DB, r.DefaultName); err == nil {
		return Resolution{Record: rec, Key: CanonicalKey(rec.Name)}
	}

	// No theme rows at all; serve the baseline template set.
	return Resolution{Key: BaselineKey}
}

// lookupPreview resolves a preview value as id first, then as name.
func (r *Resolver) lookupPreview(ctx context.Context, preview string) *Record {
	if id, err := strconv.ParseUint(preview, 10, 64); err == nil {
		if rec, err := ByID(ctx, r.DB, id); err == nil {
			return rec
		}
		return nil
	}
	rec, err := ByName(ctx, r.DB, preview)
	if err != nil {
		return nil
	}
	return rec
}

// TemplatePath returns the view path for (themeKey, pageName): the
// normalized override when one exists, else the conventional path.
// Override lookup errors degrade to the convention.
func (r *Resolver) TemplatePath(ctx context.Context, themeKey, pageName string) string {
	override, err := templateOverride(ctx, r.DB, themeKey, pageName)
	if err != nil {
		zap.S().Warnw("template override lookup failed, using convention",
			"theme", themeKey, "page", pageName, "err", err)
	}
	if override != "" {
		return NormalizePath(override)
	}
	return path.Join(themeKey, "pages", pageName)
}

// LayoutPath returns the layout view path for a canonical theme key.
func (r *Resolver) LayoutPath(themeKey string) string {
	return path.Join(themeKey, "layout")
}

// NormalizePath strips storage-specific decoration from an override
// path: a leading "views/" prefix and any file extension.
func NormalizePath(p string) string {
	p = strings.TrimPrefix(strings.TrimSpace(p), "/")
	p = strings.TrimPrefix(p, "views/")
	if ext := path.Ext(p); ext != "" {
		p = strings.TrimSuffix(p, ext)
	}
	return p
}
