// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Seed data inserted by Forge.
const (
	DefaultOwnerName = "Grey Li"
	DefaultAdminName = "Admin"
)

// SeedMovies is the sample list inserted by Forge.
var SeedMovies = []Movie{
	{Title: "My Neighbor Totoro", Year: "1988"},
	{Title: "Dead Poets Society", Year: "1989"},
	{Title: "A Perfect World", Year: "1993"},
	{Title: "Leon", Year: "1994"},
	{Title: "Mahjong", Year: "1996"},
	{Title: "Swallowtail Butterfly", Year: "1996"},
	{Title: "King of Comedy", Year: "1999"},
	{Title: "Devils on the Doorstep", Year: "1999"},
	{Title: "WALL-E", Year: "2008"},
	{Title: "The Pork of Music", Year: "2012"},
}

// Forge inserts the owner "Grey Li" (no username, no password) and the
// sample movies in a single transaction. Running it twice duplicates rows.
func Forge(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := New(db).WithTx(tx)

	user, err := q.InsertUser(ctx, User{Name: DefaultOwnerName})
	if err != nil {
		return err
	}
	for _, m := range SeedMovies {
		if _, err := q.InsertMovie(ctx, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed data: %w", err)
	}

	slog.Info("seeded database", "user_id", user.ID, "movies", len(SeedMovies))
	return nil
}

// ProvisionAdmin sets username and password hash on the first user, creating
// a user named "Admin" when the table is empty. It reports whether a new row
// was created.
func ProvisionAdmin(ctx context.Context, users UserRepository, username, passwordHash string) (User, bool, error) {
	user, err := users.FirstUser(ctx)
	switch {
	case err == nil:
		user.Username = username
		user.PasswordHash = passwordHash
		if err := users.UpdateUser(ctx, user); err != nil {
			return User{}, false, err
		}
		slog.Info("updated admin user", "user_id", user.ID, "username", username)
		return user, false, nil

	case errors.Is(err, ErrNotFound):
		user, err = users.InsertUser(ctx, User{
			Name:         DefaultAdminName,
			Username:     username,
			PasswordHash: passwordHash,
		})
		if err != nil {
			return User{}, false, err
		}
		slog.Info("created admin user", "user_id", user.ID, "username", username)
		return user, true, nil

	default:
		return User{}, false, err
	}
}
