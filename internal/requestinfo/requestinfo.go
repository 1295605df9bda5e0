// internal/requestinfo/requestinfo.go
//
// Per-request metadata: user-agent fingerprint, client IP plus
// geolocation, URL, and timestamp.  These structs are inert — no
// database handles or large buffers — so they are safe to log or
// JSON-encode.
//
// Dependencies
// • github.com/avct/uasurfer         (via internal/ua)
// • github.com/oschwald/geoip2-golang (MaxMind lookup)
package requestinfo

import (
	"context"
	"net"
	"net/url"
	"time"

	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/atelier-sites/atelier/internal/ua"
)

// Geo holds IP-based geolocation hints.  Best-effort; fields may be
// empty when the database has no match or geo lookups are disabled.
type Geo struct {
	IP         net.IP
	CountryISO string
	City       string
}

// RequestInfo is attached to the request context and is therefore
// visible to the pipeline and to templates.
type RequestInfo struct {
	UA        ua.Info
	Geo       Geo
	URL       *url.URL // pointer copy, safe to dereference read-only
	Timestamp time.Time
}

// geoReader is an optional singleton MaxMind handle.  It supports
// concurrent reads, which is all we ever perform.  Nil when geo lookups
// are disabled.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-City database at startup.  An empty path
// leaves geo lookups disabled; an unreadable file logs and disables.
func InitGeo(dbPath string) {
	if dbPath == "" {
		return
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		zap.S().Warnw("geo database unavailable, lookups disabled",
			"path", dbPath, "err", err)
		return
	}
	geoReader = r
}

// lookupGeo resolves best-effort country and city for ip.
func lookupGeo(ip net.IP) Geo {
	g := Geo{IP: ip}
	if geoReader == nil || ip == nil {
		return g
	}
	rec, err := geoReader.City(ip)
	if err != nil || rec == nil {
		return g
	}
	g.CountryISO = rec.Country.IsoCode
	g.City = rec.City.Names["en"]
	return g
}

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich, or nil
// if the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}
