// internal/palette/tokens.go
//
// Canonical color tokens and their defaulting chains.
//
// Context
// -------
// Templates consume one flat token→value map.  The canonical token set
// below must be fully populated after every resolution: each token has
// a deterministic fallback chain — first any related tokens already
// present, finally a hardcoded literal — so resolution never yields an
// undefined value.  The chains are data, not control flow; extend the
// table to add tokens.
package palette

// chain describes one canonical token: the related tokens it may derive
// from (checked in order) and the literal of last resort.
type chain struct {
	token    string
	derive   []string
	fallback string
}

// Baseline defaults for the five legacy compatibility tokens.
const (
	DefaultPrimary    = "#3B82F6"
	DefaultSecondary  = "#6B7280"
	DefaultAccent     = "#10B981"
	DefaultBackground = "#FFFFFF"
	DefaultText       = "#1F2937"
)

// canonicalChains is ordered: tokens that others derive from come
// first, so a single pass resolves every entry.
var canonicalChains = []chain{
	{"primary", nil, DefaultPrimary},
	{"secondary", nil, DefaultSecondary},
	{"accent", nil, DefaultAccent},
	{"surface", []string{"bg"}, DefaultBackground},
	{"bg", []string{"surface"}, DefaultBackground},
	{"text", nil, DefaultText},
	{"text-muted", []string{"secondary"}, DefaultSecondary},
	{"border", nil, "#E5E7EB"},
	{"overlay", nil, "#000000"},
	{"link", []string{"primary"}, DefaultPrimary},
	{"link-hover", []string{"accent"}, DefaultAccent},
	{"card-bg", []string{"surface"}, DefaultBackground},
	{"card-border", []string{"border"}, "#E5E7EB"},
	{"card-text", []string{"text"}, DefaultText},
	{"btn-bg", []string{"primary"}, DefaultPrimary},
	{"btn-text", nil, "#FFFFFF"},
	{"btn-bg-hover", []string{"accent"}, DefaultAccent},
	{"nav-bg", []string{"surface"}, DefaultBackground},
	{"nav-text", []string{"text"}, DefaultText},
	{"nav-active", []string{"primary"}, DefaultPrimary},
	{"footer-bg", nil, "#111827"},
	{"footer-text", nil, "#F9FAFB"},
}

// Canonical returns the canonical token names in resolution order.
func Canonical() []string {
	names := make([]string, len(canonicalChains))
	for i, c := range canonicalChains {
		names[i] = c.token
	}
	return names
}

// baseline returns the five-token default map used when no palette id
// is resolvable or the palette has no rows.
func baseline() map[string]string {
	return map[string]string{
		"primary":   DefaultPrimary,
		"secondary": DefaultSecondary,
		"accent":    DefaultAccent,
		"bg":        DefaultBackground,
		"text":      DefaultText,
	}
}
