// internal/theme/aliases.go
//
// Theme-name alias table.
//
// Context
// -------
// Theme names accumulate variants over time: reskins, seasonal forks,
// and renames all live in the `themes` table under their historical
// names, but template sets on disk exist only under canonical keys.
// The table below collapses every known name to its canonical key.
// It is a static, versioned lookup injected into the resolver — extend
// the map, never the control flow.
package theme

// canonicalKeys are the template-set directories that exist on disk.
const (
	KeyClassic = "classic"
	KeyGlamour = "glamour"
	KeyNoir    = "noir"
	KeyMinimal = "minimal"
	KeyRoyal   = "royal"
)

// BaselineKey is used when a theme name matches no alias.
const BaselineKey = KeyClassic

// nameAliases maps every known storage name to its canonical key.
// Canonical keys map to themselves so lookups need no special case.
var nameAliases = map[string]string{
	KeyClassic: KeyClassic,
	KeyGlamour: KeyGlamour,
	KeyNoir:    KeyNoir,
	KeyMinimal: KeyMinimal,
	KeyRoyal:   KeyRoyal,

	"classic-elegance": KeyClassic,
	"timeless":         KeyClassic,

	"glamour-dark": KeyGlamour,
	"glamour-luxe": KeyGlamour,
	"old-glamour":  KeyGlamour,

	"noir-midnight": KeyNoir,
	"after-dark":    KeyNoir,

	"minimal-light": KeyMinimal,
	"clean-slate":   KeyMinimal,

	"royal-gem":    KeyRoyal,
	"royal-velvet": KeyRoyal,
}

// CanonicalKey maps a storage theme name to its canonical key, falling
// back to BaselineKey for unknown names.
func CanonicalKey(name string) string {
	if key, ok := nameAliases[name]; ok {
		return key
	}
	return BaselineKey
}
