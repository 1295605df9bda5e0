// internal/pipeline/preview.go
//
// Request-scoped preview overrides.
//
// Context
// -------
// A preview lets a tenant eye an alternate theme or palette without
// persisting anything: `preview_theme` carries a theme id or name, and
// `palette_{primary,secondary,accent,background,text}` carry hex
// colors.  Values live only inside one request's render context and
// are never written back to theme or palette state.
package pipeline

import "net/url"

// paletteParams maps query parameter names to override token names.
var paletteParams = map[string]string{
	"palette_primary":    "primary",
	"palette_secondary":  "secondary",
	"palette_accent":     "accent",
	"palette_background": "background",
	"palette_text":       "text",
}

// Preview carries the parsed overrides for one request.
type Preview struct {
	Theme  string            // raw preview_theme value, possibly empty
	Colors map[string]string // token → raw color value
}

// ParsePreview extracts preview overrides from the query string.
// Values are passed through raw; validation happens in the palette
// resolver, where a bad token is dropped individually.
func ParsePreview(q url.Values) Preview {
	p := Preview{Theme: q.Get("preview_theme")}
	for param, token := range paletteParams {
		if v := q.Get(param); v != "" {
			if p.Colors == nil {
				p.Colors = make(map[string]string, len(paletteParams))
			}
			p.Colors[token] = v
		}
	}
	return p
}
