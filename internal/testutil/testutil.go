// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the watchlist packages.
package testutil

import (
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/olegiv/watchlist/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB creates an in-memory sqlite database with all migrations applied.
// The database is closed when the test finishes.
func TestDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Every pooled connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db, store.DialectSQLite); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// SeedAdmin provisions the first user with the given login.
// passwordHash must already be hashed.
func SeedAdmin(t testing.TB, db *sql.DB, username, passwordHash string) store.User {
	t.Helper()

	user, _, err := store.ProvisionAdmin(t.Context(), store.New(db), username, passwordHash)
	if err != nil {
		t.Fatalf("failed to provision admin: %v", err)
	}
	return user
}
