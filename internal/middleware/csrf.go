// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig controls which cross-origin form posts the watchlist accepts.
// Checks rely on Sec-Fetch-Site and Origin, so the movie, login and
// settings forms carry no token field.
type CSRFConfig struct {
	// TrustedOrigins are full origins (scheme://host:port) allowed to post
	// even when the browser marks the request cross-site.
	TrustedOrigins []string

	// ErrorHandler answers rejected requests. Nil means csrfErrorHandler.
	ErrorHandler http.Handler
}

// DefaultCSRFConfig trusts the plain-HTTP local addresses of the development
// server on port. Production trusts nothing beyond the request's own origin.
func DefaultCSRFConfig(isDev bool, port int) CSRFConfig {
	var cfg CSRFConfig
	if isDev {
		cfg.TrustedOrigins = []string{
			fmt.Sprintf("http://localhost:%d", port),
			fmt.Sprintf("http://127.0.0.1:%d", port),
		}
	}
	return cfg
}

// CSRF rejects unsafe cross-origin requests such as a foreign page posting
// to /movie/edit/delete/{id}. Safe methods always pass.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	errorHandler := cfg.ErrorHandler
	if errorHandler == nil {
		errorHandler = http.HandlerFunc(csrfErrorHandler)
	}

	opts := []csrf.Option{csrf.ErrorHandler(errorHandler)}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	// The gorilla-compatible API ignores the auth key.
	return csrf.Protect(nil, opts...)
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("cross-origin request rejected",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	http.Error(w, "Forbidden - cross-origin request rejected", http.StatusForbidden)
}
