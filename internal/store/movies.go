// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetMovie returns the movie with the given id, or ErrNotFound.
func (q *Queries) GetMovie(ctx context.Context, id int64) (Movie, error) {
	var m Movie
	err := q.db.QueryRowContext(ctx, "SELECT id, title, year FROM movies WHERE id = ?", id).
		Scan(&m.ID, &m.Title, &m.Year)
	if errors.Is(err, sql.ErrNoRows) {
		return Movie{}, ErrNotFound
	}
	if err != nil {
		return Movie{}, fmt.Errorf("selecting movie %d: %w", id, err)
	}
	return m, nil
}

// ListMovies returns every movie in insertion order.
func (q *Queries) ListMovies(ctx context.Context) ([]Movie, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT id, title, year FROM movies ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var movies []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Year); err != nil {
			return nil, fmt.Errorf("scanning movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movies: %w", err)
	}
	return movies, nil
}

// InsertMovie stores m and returns it with its new id.
func (q *Queries) InsertMovie(ctx context.Context, m Movie) (Movie, error) {
	res, err := q.db.ExecContext(ctx, "INSERT INTO movies (title, year) VALUES (?, ?)", m.Title, m.Year)
	if err != nil {
		return Movie{}, fmt.Errorf("inserting movie: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Movie{}, fmt.Errorf("reading movie id: %w", err)
	}
	m.ID = id
	return m, nil
}

// UpdateMovie overwrites title and year of the row m.ID.
// A missing row is not reported; callers look the movie up first.
func (q *Queries) UpdateMovie(ctx context.Context, m Movie) error {
	_, err := q.db.ExecContext(ctx, "UPDATE movies SET title = ?, year = ? WHERE id = ?", m.Title, m.Year, m.ID)
	if err != nil {
		return fmt.Errorf("updating movie %d: %w", m.ID, err)
	}
	return nil
}

// DeleteMovie removes the movie with the given id, or returns ErrNotFound.
func (q *Queries) DeleteMovie(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting movie %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting movie %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
