// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/watchlist/internal/store"
)

// SessionKeyUserID is the session key holding the authenticated user id.
const SessionKeyUserID = "user_id"

// ErrInvalidCredentials is returned for every failed login, whatever the cause.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Gate tracks the logged-in identity of a browser session.
// Only the first user row is ever considered for login.
type Gate struct {
	users          store.UserRepository
	sessionManager *scs.SessionManager
}

// NewGate creates a Gate over users and the session manager.
func NewGate(users store.UserRepository, sm *scs.SessionManager) *Gate {
	return &Gate{users: users, sessionManager: sm}
}

// IdentityID returns the user id held by the session in ctx, or 0.
func (g *Gate) IdentityID(ctx context.Context) int64 {
	return g.sessionManager.GetInt64(ctx, SessionKeyUserID)
}

// LoadIdentity returns the user with the given id, or nil if there is none.
func (g *Gate) LoadIdentity(ctx context.Context, id int64) (*store.User, error) {
	if id == 0 {
		return nil, nil
	}
	user, err := g.users.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks username and password against the first user without
// touching the session.
func (g *Gate) Authenticate(ctx context.Context, username, password string) (store.User, error) {
	user, err := g.users.FirstUser(ctx)
	if errors.Is(err, store.ErrNotFound) {
		slog.Debug("login attempt with no user provisioned")
		return store.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return store.User{}, err
	}

	if user.Username == "" || username != user.Username || !user.HasPassword() {
		slog.Debug("login attempt for unknown username", "username", username)
		return store.User{}, ErrInvalidCredentials
	}

	valid, err := CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err, "user_id", user.ID)
		return store.User{}, ErrInvalidCredentials
	}
	if !valid {
		slog.Debug("invalid password attempt", "username", username)
		return store.User{}, ErrInvalidCredentials
	}

	if NeedsRehash(user.PasswordHash) {
		g.rehash(ctx, user, password)
	}

	return user, nil
}

// rehash upgrades the stored hash to current parameters. Failures are logged
// and never block the login.
func (g *Gate) rehash(ctx context.Context, user store.User, password string) {
	newHash, err := HashPassword(password)
	if err != nil {
		slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
		return
	}
	user.PasswordHash = newHash
	if err := g.users.UpdateUser(ctx, user); err != nil {
		slog.Error("failed to store re-hashed password", "error", err, "user_id", user.ID)
		return
	}
	slog.Info("password re-hashed with updated parameters", "user_id", user.ID)
}

// Login authenticates and, on success, binds the user to the session in ctx.
func (g *Gate) Login(ctx context.Context, username, password string) (store.User, error) {
	user, err := g.Authenticate(ctx, username, password)
	if err != nil {
		return store.User{}, err
	}

	// Regenerate session ID to prevent session fixation
	if err := g.sessionManager.RenewToken(ctx); err != nil {
		return store.User{}, fmt.Errorf("renewing session token: %w", err)
	}
	g.sessionManager.Put(ctx, SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Logout clears the session identity unconditionally.
func (g *Gate) Logout(ctx context.Context) error {
	userID := g.IdentityID(ctx)
	if err := g.sessionManager.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	slog.Info("user logged out", "user_id", userID)
	return nil
}

// Forget removes a stale identity from the session without destroying it,
// so queued notices survive.
func (g *Gate) Forget(ctx context.Context) {
	g.sessionManager.Remove(ctx, SessionKeyUserID)
}
