// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides persistence for users and movies.
package store

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// User is the single administrative account.
type User struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
}

// HasPassword reports whether the user can log in at all.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Movie is one entry of the watchlist.
type Movie struct {
	ID    int64
	Title string
	Year  string
}
