// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// testDB creates a migrated sqlite database in a temp directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(DialectSQLite, filepath.Join(t.TempDir(), "watchlist-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db, DialectSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestNewDB_UnsupportedDialect(t *testing.T) {
	if _, err := NewDB("oracle", "whatever"); err == nil {
		t.Error("NewDB should reject unknown dialects")
	}
}

func TestInsertAndGetMovie(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	created, err := q.InsertMovie(ctx, Movie{Title: "Inception", Year: "2010"})
	if err != nil {
		t.Fatalf("InsertMovie: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created.ID should not be 0")
	}

	found, err := q.GetMovie(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if found != created {
		t.Errorf("GetMovie = %+v, want %+v", found, created)
	}
}

func TestGetMovie_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := New(db).GetMovie(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListMovies_InsertionOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	titles := []string{"C", "A", "B"}
	for _, title := range titles {
		if _, err := q.InsertMovie(ctx, Movie{Title: title, Year: "2000"}); err != nil {
			t.Fatalf("InsertMovie: %v", err)
		}
	}

	movies, err := q.ListMovies(ctx)
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if len(movies) != len(titles) {
		t.Fatalf("len(movies) = %d, want %d", len(movies), len(titles))
	}
	for i, m := range movies {
		if m.Title != titles[i] {
			t.Errorf("movies[%d].Title = %q, want %q", i, m.Title, titles[i])
		}
	}
}

func TestUpdateMovie_OnlyTouchesTarget(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	a, _ := q.InsertMovie(ctx, Movie{Title: "A", Year: "2001"})
	b, _ := q.InsertMovie(ctx, Movie{Title: "B", Year: "2002"})

	if err := q.UpdateMovie(ctx, Movie{ID: a.ID, Title: "A2", Year: "1999"}); err != nil {
		t.Fatalf("UpdateMovie: %v", err)
	}

	gotA, _ := q.GetMovie(ctx, a.ID)
	if gotA.Title != "A2" || gotA.Year != "1999" {
		t.Errorf("updated movie = %+v", gotA)
	}
	gotB, _ := q.GetMovie(ctx, b.ID)
	if gotB != b {
		t.Errorf("untouched movie = %+v, want %+v", gotB, b)
	}
}

func TestDeleteMovie(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	m, _ := q.InsertMovie(ctx, Movie{Title: "Gone", Year: "1939"})

	if err := q.DeleteMovie(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMovie: %v", err)
	}
	if _, err := q.GetMovie(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMovie after delete: %v", err)
	}
	if err := q.DeleteMovie(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteMovie = %v, want ErrNotFound", err)
	}
}

func TestFirstUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	if _, err := q.FirstUser(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FirstUser on empty table = %v, want ErrNotFound", err)
	}

	first, _ := q.InsertUser(ctx, User{Name: "First"})
	_, _ = q.InsertUser(ctx, User{Name: "Second"})

	got, err := q.FirstUser(ctx)
	if err != nil {
		t.Fatalf("FirstUser: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("FirstUser().ID = %d, want %d", got.ID, first.ID)
	}
}

func TestUpdateUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	u, _ := q.InsertUser(ctx, User{Name: "Old"})
	u.Name = "New"
	u.Username = "admin"
	u.PasswordHash = "hash"
	if err := q.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := q.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got != u {
		t.Errorf("GetUser = %+v, want %+v", got, u)
	}
	if !got.HasPassword() {
		t.Error("HasPassword() = false after setting a hash")
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := testDB(t)

	if _, err := New(db).GetUser(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestForge(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := Forge(ctx, db); err != nil {
		t.Fatalf("Forge: %v", err)
	}

	q := New(db)
	user, err := q.FirstUser(ctx)
	if err != nil {
		t.Fatalf("FirstUser: %v", err)
	}
	if user.Name != DefaultOwnerName {
		t.Errorf("Name = %q, want %q", user.Name, DefaultOwnerName)
	}
	if user.Username != "" || user.HasPassword() {
		t.Errorf("seeded user should have no credentials: %+v", user)
	}

	movies, err := q.ListMovies(ctx)
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if len(movies) != len(SeedMovies) {
		t.Errorf("len(movies) = %d, want %d", len(movies), len(SeedMovies))
	}
}

func TestProvisionAdmin(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	created, isNew, err := ProvisionAdmin(ctx, q, "greyli", "hash-1")
	if err != nil {
		t.Fatalf("ProvisionAdmin: %v", err)
	}
	if !isNew {
		t.Error("first ProvisionAdmin should create a user")
	}
	if created.Name != DefaultAdminName {
		t.Errorf("Name = %q, want %q", created.Name, DefaultAdminName)
	}

	updated, isNew, err := ProvisionAdmin(ctx, q, "grey", "hash-2")
	if err != nil {
		t.Fatalf("ProvisionAdmin: %v", err)
	}
	if isNew {
		t.Error("second ProvisionAdmin should update the existing user")
	}
	if updated.ID != created.ID {
		t.Errorf("ID = %d, want %d", updated.ID, created.ID)
	}

	got, _ := q.GetUser(ctx, created.ID)
	if got.Username != "grey" || got.PasswordHash != "hash-2" {
		t.Errorf("stored user = %+v", got)
	}
}

func TestProvisionAdmin_KeepsSeededName(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := Forge(ctx, db); err != nil {
		t.Fatalf("Forge: %v", err)
	}

	user, isNew, err := ProvisionAdmin(ctx, New(db), "greyli", "hash")
	if err != nil {
		t.Fatalf("ProvisionAdmin: %v", err)
	}
	if isNew {
		t.Error("should update the seeded user")
	}
	if user.Name != DefaultOwnerName {
		t.Errorf("Name = %q, want %q", user.Name, DefaultOwnerName)
	}
}

func TestResetDropsTables(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := Forge(ctx, db); err != nil {
		t.Fatalf("Forge: %v", err)
	}
	if err := Reset(db, DialectSQLite); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := Migrate(db, DialectSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	movies, err := New(db).ListMovies(ctx)
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if len(movies) != 0 {
		t.Errorf("len(movies) = %d after reset, want 0", len(movies))
	}
}

func TestReset_NeverMigrated(t *testing.T) {
	db, err := NewDB(DialectSQLite, filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Reset(db, DialectSQLite); err != nil {
		t.Fatalf("Reset on a fresh database: %v", err)
	}
	if err := Migrate(db, DialectSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
}

func TestNewDB_PragmasOnEveryConnection(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Hold two connections at once so the pool must open a second one.
	conns := make([]*sql.Conn, 0, 2)
	for range 2 {
		conn, err := db.Conn(ctx)
		if err != nil {
			t.Fatalf("Conn: %v", err)
		}
		conns = append(conns, conn)
	}
	t.Cleanup(func() {
		for _, c := range conns {
			_ = c.Close()
		}
	})

	for i, conn := range conns {
		var timeout int
		if err := conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout); err != nil {
			t.Fatalf("conn %d: busy_timeout: %v", i, err)
		}
		if timeout != 5000 {
			t.Errorf("conn %d: busy_timeout = %d, want 5000", i, timeout)
		}

		var mode string
		if err := conn.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("conn %d: journal_mode: %v", i, err)
		}
		if mode != "wal" {
			t.Errorf("conn %d: journal_mode = %q, want %q", i, mode, "wal")
		}
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		prefix string
	}{
		{name: "plain path", path: "data/data.db", prefix: "data/data.db?_pragma="},
		{name: "existing query", path: "data.db?mode=rwc", prefix: "data.db?mode=rwc&_pragma="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sqliteDSN(tt.path)
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("sqliteDSN(%q) = %q; want prefix %q", tt.path, got, tt.prefix)
			}
			if !strings.Contains(got, "_pragma=busy_timeout(5000)") {
				t.Errorf("sqliteDSN(%q) = %q; missing busy_timeout", tt.path, got)
			}
		})
	}
}
