// internal/config/model.go
//
// Typed configuration model for Atelier.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `ATELIER_`-prefixed environment overrides – highest precedence.
//
// A database password whose string begins with `vault:` is resolved
// through the Vault client after unmarshalling (see ResolveSecrets in
// loader.go), so the running config only ever holds plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
// • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//   unless configured otherwise.
// • The `Paths` block is filled at runtime; YAML must not try to set it.
package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the DSN template and its secret.  The template stays in
// YAML so operators can tweak host, port, or flags without touching
// Vault; the password may be a literal or a `vault:<path>#<key>` URI.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password"`
}

//
// Themes section
//

// Themes locates template sets on disk and names the fallbacks used when
// a tenant's assigned theme cannot be resolved.
type Themes struct {
	Dir          string   `koanf:"dir"           validate:"required"`
	Default      string   `koanf:"default"       validate:"required"`
	PartialsDirs []string `koanf:"partials_dirs"`
}

//
// Geo section
//

// Geo points at an optional MaxMind GeoLite2-City database used by the
// request-info middleware.  Empty path disables geo lookups.
type Geo struct {
	CityDB string `koanf:"city_db"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or ATELIER_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Themes   Themes   `koanf:"themes"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"`
}
