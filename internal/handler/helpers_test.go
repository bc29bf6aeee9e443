// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/watchlist/internal/auth"
	"github.com/olegiv/watchlist/internal/middleware"
	"github.com/olegiv/watchlist/internal/render"
	"github.com/olegiv/watchlist/internal/session"
	"github.com/olegiv/watchlist/internal/store"
	"github.com/olegiv/watchlist/internal/testutil"
	"github.com/olegiv/watchlist/web"
)

// testDB creates an in-memory SQLite database with the application schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	return testutil.TestDB(t)
}

// testSessionManager creates a session manager for testing.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

// testEnv wires handlers over a fresh database.
type testEnv struct {
	db       *sql.DB
	queries  *store.Queries
	sm       *scs.SessionManager
	notices  *session.Notices
	gate     *auth.Gate
	renderer *render.Renderer
	notFound *NotFoundHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	queries := store.New(db)
	sm := testSessionManager(t)
	notices := session.NewNotices(sm)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates fs: %v", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		Notices:     notices,
		Users:       queries,
		IsDev:       true,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	return &testEnv{
		db:       db,
		queries:  queries,
		sm:       sm,
		notices:  notices,
		gate:     auth.NewGate(queries, sm),
		renderer: renderer,
		notFound: NewNotFoundHandler(renderer),
	}
}

// createAdmin inserts the first user with username "greyli" and password "secret".
func (e *testEnv) createAdmin(t *testing.T) store.User {
	t.Helper()

	hash, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user, err := e.queries.InsertUser(context.Background(), store.User{
		Name:         "Grey Li",
		Username:     "greyli",
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("InsertUser: %v", err)
	}
	return user
}

func (e *testEnv) createMovie(t *testing.T, title, year string) store.Movie {
	t.Helper()

	movie, err := e.queries.InsertMovie(context.Background(), store.Movie{Title: title, Year: year})
	if err != nil {
		t.Fatalf("InsertMovie: %v", err)
	}
	return movie
}

func (e *testEnv) countMovies(t *testing.T) int {
	t.Helper()

	movies, err := e.queries.ListMovies(context.Background())
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	return len(movies)
}

// getRequest builds a GET request carrying a loaded session.
func (e *testEnv) getRequest(target string) *http.Request {
	return requestWithSession(e.sm, httptest.NewRequest(http.MethodGet, target, nil))
}

// postRequest builds a form POST carrying a loaded session.
func (e *testEnv) postRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	return requestWithSession(e.sm, req)
}

// asUser marks the request as authenticated by user.
func asUser(r *http.Request, user store.User) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), &user))
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// requestWithSession wraps a request with session context.
func requestWithSession(sm *scs.SessionManager, r *http.Request) *http.Request {
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		return r
	}
	return r.WithContext(ctx)
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// assertRedirect checks for a 303 to location.
func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	assertStatus(t, rec.Code, http.StatusSeeOther)
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("Location = %q; want %q", got, location)
	}
}

// assertNotices checks the notices queued in the request's session.
func assertNotices(t *testing.T, e *testEnv, r *http.Request, want ...string) {
	t.Helper()
	got := e.notices.Pop(r.Context())
	if len(got) != len(want) {
		t.Fatalf("notices = %q; want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notices[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}
