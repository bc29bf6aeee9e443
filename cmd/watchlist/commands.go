// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/olegiv/watchlist/internal/auth"
	"github.com/olegiv/watchlist/internal/store"
)

// runInitDB creates the tables; with -drop they are dropped first.
func runInitDB(db *sql.DB, dialect string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("initdb", flag.ContinueOnError)
	drop := fs.Bool("drop", false, "Drop all tables before creating them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *drop {
		if err := store.Reset(db, dialect); err != nil {
			return err
		}
	}
	if err := store.Migrate(db, dialect); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "Initialized database.")
	return nil
}

// runForge creates the tables and inserts the sample data.
func runForge(ctx context.Context, db *sql.DB, dialect string, out io.Writer) error {
	if err := store.Migrate(db, dialect); err != nil {
		return err
	}
	if err := store.Forge(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	_, _ = fmt.Fprintln(out, "Done.")
	return nil
}

// runAdmin sets the login of the first user, prompting for anything not
// given as a flag.
func runAdmin(ctx context.Context, db *sql.DB, dialect string, args []string, in *bufio.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	username := fs.String("username", "", "Username used to login")
	password := fs.String("password", "", "Password used to login (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		name, err := promptLine(in, out, "Username: ")
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		*username = name
	}
	if *username == "" {
		return errors.New("username must not be empty")
	}

	if *password == "" {
		pw, err := promptNewPassword(out)
		if err != nil {
			return err
		}
		*password = pw
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := store.Migrate(db, dialect); err != nil {
		return err
	}

	_, created, err := store.ProvisionAdmin(ctx, store.New(db), *username, hash)
	if err != nil {
		return fmt.Errorf("provisioning admin: %w", err)
	}
	if created {
		_, _ = fmt.Fprintln(out, "Creating user...")
	} else {
		_, _ = fmt.Fprintln(out, "Updating user...")
	}

	_, _ = fmt.Fprintln(out, "Done.")
	return nil
}

// promptLine prints prompt and reads one trimmed line from in.
func promptLine(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return "", err
	}
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
