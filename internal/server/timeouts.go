// internal/server/timeouts.go
//
// HTTP server helper with robust timeouts.
//
// Production hardening recommends:
//
//   • ReadTimeout   – abort slow-loris headers (10 s)
//   • WriteTimeout  – cap total response time (30 s; it must outlast the
//                     relay timeout or in-flight submissions get cut off)
//   • IdleTimeout   – close keep-alives on idle clients (60 s)
//
// This helper centralises those defaults so cmd/formrelay doesn't repeat
// boilerplate.
//

package server

import (
	"net/http"
	"time"
)

// NewHTTPServer constructs an *http.Server with sensible defaults.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		// TLSConfig may be injected by callers (e.g., autocert).
	}
}
