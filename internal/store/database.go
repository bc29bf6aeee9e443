// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver for database/sql
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql
var migrations embed.FS

// Dialect names understood by NewDB and Migrate.
const (
	DialectSQLite = "sqlite"
	DialectMySQL  = "mysql"
)

// DBConfig holds database configuration options.
type DBConfig struct {
	// MaxOpenConns is the maximum number of open connections to the database.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of connections in the idle connection pool.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
}

// DefaultDBConfig returns sensible defaults for a single-user application.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// NewDB opens a database connection for the given dialect.
// For sqlite, dsn is a file path; for mysql it is a go-sql-driver DSN.
func NewDB(dialect, dsn string) (*sql.DB, error) {
	return NewDBWithConfig(dialect, dsn, DefaultDBConfig())
}

// NewDBWithConfig opens a database connection with custom pool configuration.
func NewDBWithConfig(dialect, dsn string, cfg DBConfig) (*sql.DB, error) {
	var driver string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
	case DialectMySQL:
		driver = "mysql"
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	if dialect == DialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// sqlitePragmas are applied by the driver to every new pooled connection.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
	"temp_store(MEMORY)",
}

// sqliteDSN appends the connection pragmas to a sqlite file path.
func sqliteDSN(path string) string {
	params := make([]string, 0, len(sqlitePragmas))
	for _, pragma := range sqlitePragmas {
		params = append(params, "_pragma="+pragma)
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

// setupGoose points goose at the embedded migrations for dialect and
// returns the migration directory to use.
func setupGoose(dialect string) (string, error) {
	goose.SetBaseFS(migrations)

	gooseDialect := "sqlite3"
	if dialect == DialectMySQL {
		gooseDialect = "mysql"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return "", fmt.Errorf("setting dialect: %w", err)
	}

	return "migrations/" + dialect, nil
}

// Migrate creates all tables that do not exist yet.
func Migrate(db *sql.DB, dialect string) error {
	dir, err := setupGoose(dialect)
	if err != nil {
		return err
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// Reset drops all application tables by rolling back every migration.
// Data is lost; call Migrate afterwards to recreate the schema.
func Reset(db *sql.DB, dialect string) error {
	dir, err := setupGoose(dialect)
	if err != nil {
		return err
	}

	// Reset reads the version table, which a never-migrated database lacks.
	if _, err := goose.EnsureDBVersion(db); err != nil {
		return fmt.Errorf("preparing version table: %w", err)
	}

	if err := goose.Reset(db, dir); err != nil {
		return fmt.Errorf("dropping tables: %w", err)
	}

	return nil
}
