// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

// UserRepository reads and writes User rows.
type UserRepository interface {
	// FirstUser returns the user with the lowest id.
	FirstUser(ctx context.Context) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	InsertUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, u User) error
}

// MovieRepository reads and writes Movie rows.
type MovieRepository interface {
	GetMovie(ctx context.Context, id int64) (Movie, error)
	ListMovies(ctx context.Context) ([]Movie, error)
	InsertMovie(ctx context.Context, m Movie) (Movie, error)
	UpdateMovie(ctx context.Context, m Movie) error
	DeleteMovie(ctx context.Context, id int64) error
}

var (
	_ UserRepository  = (*Queries)(nil)
	_ MovieRepository = (*Queries)(nil)
)
