// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package server assembles the HTTP routing table.
package server

import (
	"database/sql"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/watchlist/internal/auth"
	"github.com/olegiv/watchlist/internal/config"
	"github.com/olegiv/watchlist/internal/handler"
	"github.com/olegiv/watchlist/internal/middleware"
	"github.com/olegiv/watchlist/internal/render"
	"github.com/olegiv/watchlist/internal/session"
	"github.com/olegiv/watchlist/internal/store"
	"github.com/olegiv/watchlist/web"
)

// staticMaxAge is the browser cache lifetime for embedded assets in production.
const staticMaxAge = 7 * 24 * time.Hour

// NewRouter builds the application handler over db and the session manager.
func NewRouter(cfg *config.Config, db *sql.DB, sessionManager *scs.SessionManager) (http.Handler, error) {
	queries := store.New(db)
	notices := session.NewNotices(sessionManager)
	gate := auth.NewGate(queries, sessionManager)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		Notices:     notices,
		Users:       queries,
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}
	if err := handler.CheckTemplates(renderer); err != nil {
		return nil, err
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}

	notFound := handler.NewNotFoundHandler(renderer)
	moviesHandler := handler.NewMoviesHandler(queries, renderer, notices, notFound)
	authHandler := handler.NewAuthHandler(gate, renderer, notices)
	settingsHandler := handler.NewSettingsHandler(queries, renderer, notices)
	healthHandler := handler.NewHealthHandler(db)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(cfg.IsDevelopment(), cfg.ServerPort)))
	r.Use(middleware.LoadIdentity(gate))

	r.Get(handler.RouteHealth, healthHandler.Health)

	staticMaxAgeFor := staticMaxAge
	if cfg.IsDevelopment() {
		staticMaxAgeFor = 0
	}
	r.Handle(handler.RouteStatic, middleware.StaticCache(staticMaxAgeFor)(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))),
	))

	// Public routes. POST / checks the identity itself so anonymous
	// submissions land back on the list.
	r.Get(handler.RouteRoot, moviesHandler.List)
	r.Post(handler.RouteRoot, moviesHandler.Create)
	r.Get(handler.RouteLogin, authHandler.LoginForm)
	r.Post(handler.RouteLogin, authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(handler.RouteLogin))

		r.Get(handler.RouteMovieEditID, moviesHandler.EditForm)
		r.Post(handler.RouteMovieEditID, moviesHandler.Update)
		r.Post(handler.RouteMovieDeleteID, moviesHandler.Delete)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Get(handler.RouteSettings, settingsHandler.Form)
		r.Post(handler.RouteSettings, settingsHandler.Update)
	})

	r.NotFound(notFound.ServeHTTP)

	return r, nil
}
