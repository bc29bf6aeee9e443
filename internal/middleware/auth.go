// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication
// and request hardening.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/watchlist/internal/auth"
	"github.com/olegiv/watchlist/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser holds the authenticated *store.User.
const ContextKeyUser ContextKey = "user"

// LoadIdentity resolves the session's user id into the request context.
// It must run after the session manager's LoadAndSave. A session pointing at
// a user that no longer exists is treated as anonymous and cleaned up.
func LoadIdentity(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := gate.IdentityID(r.Context())
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := gate.LoadIdentity(r.Context(), userID)
			if err != nil {
				// Continue anonymously; mutating routes will redirect.
				slog.Error("failed to load identity", "error", err, "user_id", userID)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				gate.Forget(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth redirects anonymous callers to redirectTo (303) without running
// the wrapped handler.
func RequireAuth(redirectTo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUser(r) == nil {
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *store.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *store.User {
	user, _ := r.Context().Value(ContextKeyUser).(*store.User)
	return user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}
