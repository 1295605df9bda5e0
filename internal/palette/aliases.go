// internal/palette/aliases.go
//
// Token-name alias table.
//
// Context
// -------
// Palette rows accumulate historical and theme-specific token names
// over the years: `theme-primary`, `brand-primary`, and `primary` all
// mean the same concept.  The static table below maps every known
// alias to its canonical token.  A canonical token already present in
// the raw set is never overwritten by an alias.
package palette

var tokenAliases = map[string]string{
	"theme-primary":   "primary",
	"brand-primary":   "primary",
	"main-color":      "primary",
	"theme-secondary": "secondary",
	"brand-secondary": "secondary",
	"theme-accent":    "accent",
	"highlight":       "accent",

	"background":      "bg",
	"page-background": "bg",
	"body-bg":         "bg",
	"card-background": "surface",
	"panel-bg":        "surface",

	"body-text":    "text",
	"text-color":   "text",
	"foreground":   "text",
	"muted":        "text-muted",
	"muted-text":   "text-muted",
	"border-color": "border",
	"hero-overlay": "overlay",

	"link-color":   "link",
	"anchor":       "link",
	"button-bg":    "btn-bg",
	"button-text":  "btn-text",
	"button-hover": "btn-bg-hover",

	"header-bg":   "nav-bg",
	"header-text": "nav-text",
	"menu-active": "nav-active",
}

// normalizeAliases folds aliased names into canonical ones.  Existing
// canonical entries win; among competing aliases the first one seen in
// the raw row order wins.
func normalizeAliases(raw []tokenRow) map[string]string {
	out := make(map[string]string, len(raw))

	// Canonical names first so aliases can never clobber them.
	for _, row := range raw {
		if _, aliased := tokenAliases[row.Token]; !aliased {
			if _, dup := out[row.Token]; !dup {
				out[row.Token] = row.Value
			}
		}
	}
	for _, row := range raw {
		if canon, aliased := tokenAliases[row.Token]; aliased {
			if _, present := out[canon]; !present {
				out[canon] = row.Value
			}
		}
	}
	return out
}
