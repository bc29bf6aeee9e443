// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command watchlist runs the movie watchlist web application and its
// maintenance commands.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/olegiv/watchlist/internal/config"
	"github.com/olegiv/watchlist/internal/store"
	"github.com/olegiv/watchlist/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		printUsage(os.Stderr, os.Args[0])
		flag.PrintDefaults()
		printEnvUsage(os.Stderr)
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo())
		os.Exit(0)
	}

	if err := run(flag.Args()); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// printUsage writes the command summary that precedes the flag defaults.
func printUsage(w io.Writer, prog string) {
	_, _ = fmt.Fprintf(w, "Watchlist - a personal movie list\n\n")
	_, _ = fmt.Fprintf(w, "Usage: %s [options] [command] [command options]\n\n", prog)
	_, _ = fmt.Fprintf(w, "Commands:\n")
	_, _ = fmt.Fprintf(w, "  serve                  Run the HTTP server (default)\n")
	_, _ = fmt.Fprintf(w, "  initdb [-drop]         Create the tables, dropping them first with -drop\n")
	_, _ = fmt.Fprintf(w, "  forge                  Insert the sample owner and movies\n")
	_, _ = fmt.Fprintf(w, "  admin [-username U] [-password P]\n")
	_, _ = fmt.Fprintf(w, "                         Create or update the admin login\n")
	_, _ = fmt.Fprintf(w, "\nOptions:\n")
}

// printEnvUsage writes the environment variable reference.
func printEnvUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\nEnvironment Variables:\n")
	_, _ = fmt.Fprintf(w, "  WATCHLIST_SECRET_KEY        Deployment secret, checked at startup (required, min 32 bytes)\n")
	_, _ = fmt.Fprintf(w, "  WATCHLIST_DB_DRIVER         sqlite|mysql (default: sqlite)\n")
	_, _ = fmt.Fprintf(w, "  WATCHLIST_DB_PATH           SQLite path or MySQL DSN (default: ./data/data.db)\n")
	_, _ = fmt.Fprintf(w, "  WATCHLIST_SERVER_HOST       Listen host (default: localhost)\n")
	_, _ = fmt.Fprintf(w, "  WATCHLIST_SERVER_PORT       Listen port (default: 5000)\n")
	_, _ = fmt.Fprintf(w, "  WATCHLIST_ENV               development|production (default: development)\n")
	_, _ = fmt.Fprintf(w, "  WATCHLIST_LOG_LEVEL         debug|info|warn|error (default: info)\n")
	_, _ = fmt.Fprintf(w, "  WATCHLIST_REDIS_URL         Redis URL for the session store (optional)\n")
	_, _ = fmt.Fprintf(w, "  WATCHLIST_SESSION_LIFETIME  Session lifetime (default: 24h)\n")
}

func versionInfo() version.Info {
	return version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
}

// run loads configuration, opens the database and dispatches the command.
func run(args []string) error {
	_ = godotenv.Load()

	command := "serve"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	ctx := context.Background()
	out := os.Stdout

	switch command {
	case "serve":
		return serve(ctx, cfg, db)
	case "initdb":
		return runInitDB(db, cfg.DBDriver, args, out)
	case "forge":
		return runForge(ctx, db, cfg.DBDriver, out)
	case "admin":
		return runAdmin(ctx, db, cfg.DBDriver, args, bufio.NewReader(os.Stdin), out)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// openDB opens the configured database, creating the sqlite data directory
// when needed.
func openDB(cfg *config.Config) (*sql.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.NewDB(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return db, nil
}
