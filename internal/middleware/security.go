// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects standard hardening headers on every response: HSTS, a
// self-only Content-Security-Policy (inline styles allowed because the
// palette emits CSS custom properties into the page), click-jacking and
// MIME-sniffing defences, referrer trimming, and a restrictive
// Permissions-Policy.
//
// Headers are added after next.ServeHTTP so handlers may set their own
// values first; the middleware never overwrites an existing header.
package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		hsts = "max-age=63072000; includeSubDomains; preload"
		csp  = "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; " +
			"object-src 'none'; base-uri 'self'; frame-ancestors 'none'"
		xfo   = "DENY"
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
		perm  = "geolocation=(), microphone=(), camera=()"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		h := w.Header()
		set := func(key, val string) {
			if h.Get(key) == "" {
				h.Add(key, val)
			}
		}
		set("Strict-Transport-Security", hsts)
		set("Content-Security-Policy", csp)
		set("X-Frame-Options", xfo)
		set("X-Content-Type-Options", nosn)
		set("Referrer-Policy", refer)
		set("Permissions-Policy", perm)
	})
}
