// internal/content/casing.go
//
// Per-page-type key-casing conventions.
//
// Context
// -------
// Content tables store underscore-separated column names.  Most page
// templates consume those keys as-is, but the oldest theme templates
// (about and contact predate the template rewrite) expect camelCase.
// Which page uses which convention is a fixed table, never inferred at
// runtime.
package content

import (
	"strings"

	"github.com/atelier-sites/atelier/internal/page"
)

type keyCasing int

const (
	snakeKeys keyCasing = iota // stored convention, passed through
	camelKeys                  // legacy template convention
)

// pageCasing is the fixed inventory of conventions per page type.
var pageCasing = map[page.Type]keyCasing{
	page.Home:      snakeKeys,
	page.About:     camelKeys,
	page.Contact:   camelKeys,
	page.Rates:     snakeKeys,
	page.Etiquette: snakeKeys,
	page.Calendar:  snakeKeys,
	page.Gallery:   snakeKeys,
}

// applyCasing converts map keys to the page's convention.  Snake-keyed
// pages pass through untouched.
func applyCasing(p page.Type, m map[string]any) map[string]any {
	if pageCasing[p] != camelKeys {
		return m
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[toCamel(k)] = v
	}
	return out
}

// toCamel converts "portrait_image_id" to "portraitImageId".
func toCamel(s string) string {
	parts := strings.Split(s, "_")
	if len(parts) == 1 {
		return s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
