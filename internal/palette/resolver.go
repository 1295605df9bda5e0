// internal/palette/resolver.go
//
// Color token resolution: raw palette rows → one flat, total token map.
//
// Context
// -------
// Resolution layers, in order:
//
//  1. Load raw token rows for the resolved palette id.  No id or no
//     rows → the five baseline defaults seed the map instead.
//  2. Alias normalization (aliases.go).  Canonical names present in
//     the raw set are never overwritten.
//  3. Defaulting chains (tokens.go).  After this pass every canonical
//     token is defined; the pass is idempotent and total.
//  4. Preview override layer.  A non-empty inline color map replaces
//     the compatibility subset {primary, secondary, accent,
//     background, text} used by legacy templates.  Values must be
//     6-digit `#RRGGBB` after URL decoding; invalid entries are
//     dropped one by one, never wholesale.
//
// The output map additionally carries `background` as a mirror of `bg`
// because the legacy compatibility subset spells it out.
//
// Failures here never propagate: a broken palette degrades to defaults
// and the page still renders.
package palette

import (
	"context"
	"net/url"
	"regexp"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/atelier-sites/atelier/internal/metrics"
)

// compatTokens is the legacy subset preview overrides may replace.
var compatTokens = []string{"primary", "secondary", "accent", "background", "text"}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type tokenRow struct {
	Token string `db:"token"`
	Value string `db:"value"`
}

// Resolver loads and resolves palette tokens.
type Resolver struct {
	DB *sqlx.DB
}

// Resolve produces the flat token map for paletteID (nil meaning "no
// palette resolvable") plus an optional inline preview override map.
func (r *Resolver) Resolve(ctx context.Context, paletteID *uint64, overrides map[string]string) map[string]string {
	tokens := r.load(ctx, paletteID)

	applyChains(tokens)
	tokens["background"] = tokens["bg"]

	applyOverrides(tokens, overrides)
	return tokens
}

// load fetches raw rows and alias-normalizes them, degrading to the
// baseline defaults when nothing is loadable.
func (r *Resolver) load(ctx context.Context, paletteID *uint64) map[string]string {
	if paletteID == nil {
		metrics.PaletteDegradedTotal.Inc()
		return baseline()
	}

	const q = `
        SELECT token, value
        FROM   palette_colors
        WHERE  palette_id = ?
        ORDER  BY id`
	var rows []tokenRow
	if err := r.DB.SelectContext(ctx, &rows, q, *paletteID); err != nil {
		zap.S().Warnw("palette rows unavailable, using baseline",
			"palette_id", *paletteID, "err", err)
		metrics.PaletteDegradedTotal.Inc()
		return baseline()
	}
	if len(rows) == 0 {
		metrics.PaletteDegradedTotal.Inc()
		return baseline()
	}
	return normalizeAliases(rows)
}

// applyChains fills every canonical token still absent after alias
// normalization: first from related tokens, finally from the literal.
func applyChains(tokens map[string]string) {
	for _, c := range canonicalChains {
		if _, ok := tokens[c.token]; ok {
			continue
		}
		val := c.fallback
		for _, rel := range c.derive {
			if v, ok := tokens[rel]; ok {
				val = v
				break
			}
		}
		tokens[c.token] = val
	}
}

// applyOverrides replaces compatibility tokens with valid preview
// values.  One bad token never invalidates the others.
func applyOverrides(tokens map[string]string, overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}
	for _, name := range compatTokens {
		raw, ok := overrides[name]
		if !ok {
			continue
		}
		val := raw
		if decoded, err := url.QueryUnescape(raw); err == nil {
			val = decoded
		}
		if !hexColor.MatchString(val) {
			zap.S().Debugw("invalid palette override dropped",
				"token", name, "value", raw)
			continue
		}
		tokens[name] = val
	}
}
