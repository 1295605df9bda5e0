// internal/server/timeouts.go
package server

import (
	"net/http"
	"time"
)

// New wraps handler in an *http.Server with conservative timeouts:
// slow header reads are cut at 5 s, whole requests at 10 s, responses
// at 15 s, and idle keep-alives at 60 s.  Tenant pages are small
// server-rendered documents, so anything slower is a stuck client.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
