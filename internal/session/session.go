// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the scs session manager and the one-shot
// notice queue carried in it.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/redis/go-redis/v9"

	"github.com/olegiv/watchlist/internal/config"
)

// DefaultLifetime is used when no lifetime is configured.
const DefaultLifetime = 24 * time.Hour

// New creates a session manager backed by st.
func New(st scs.Store, isDev bool, lifetime time.Duration) *scs.SessionManager {
	sm := scs.New()
	sm.Store = st

	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	sm.Lifetime = lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}

// NewStore picks the session store for cfg: Redis when configured, the
// sqlite sessions table when the database is sqlite, memory otherwise.
// The returned close function releases any client it opened.
func NewStore(ctx context.Context, cfg *config.Config, db *sql.DB) (scs.Store, func(), error) {
	if cfg.UseRedisSessions() {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		slog.Info("session store initialized", "backend", "redis")
		return NewRedisStore(client, DefaultRedisPrefix), func() { _ = client.Close() }, nil
	}

	if cfg.DBDriver == config.DriverSQLite {
		st := sqlite3store.New(db)
		slog.Info("session store initialized", "backend", "sqlite")
		return st, st.StopCleanup, nil
	}

	slog.Warn("session store initialized", "backend", "memory", "note", "sessions are lost on restart")
	st := memstore.New()
	return st, st.StopCleanup, nil
}
