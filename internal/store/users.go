// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const userColumns = "id, name, username, password_hash"

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// FirstUser returns the user with the lowest id, or ErrNotFound.
func (q *Queries) FirstUser(ctx context.Context) (User, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id LIMIT 1")
	u, err := scanUser(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("selecting first user: %w", err)
	}
	return u, err
}

// GetUser returns the user with the given id, or ErrNotFound.
func (q *Queries) GetUser(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("selecting user %d: %w", id, err)
	}
	return u, err
}

// InsertUser stores u and returns it with its new id.
func (q *Queries) InsertUser(ctx context.Context, u User) (User, error) {
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO users (name, username, password_hash) VALUES (?, ?, ?)",
		u.Name, u.Username, u.PasswordHash)
	if err != nil {
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("reading user id: %w", err)
	}
	u.ID = id
	return u, nil
}

// UpdateUser overwrites name, username and password hash of the row u.ID.
func (q *Queries) UpdateUser(ctx context.Context, u User) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE users SET name = ?, username = ?, password_hash = ? WHERE id = ?",
		u.Name, u.Username, u.PasswordHash, u.ID)
	if err != nil {
		return fmt.Errorf("updating user %d: %w", u.ID, err)
	}
	return nil
}
