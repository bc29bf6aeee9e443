// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/olegiv/watchlist/internal/middleware"
	"github.com/olegiv/watchlist/internal/model"
	"github.com/olegiv/watchlist/internal/render"
	"github.com/olegiv/watchlist/internal/session"
	"github.com/olegiv/watchlist/internal/store"
)

// MoviesHandler handles the movie list and its create, edit and delete routes.
type MoviesHandler struct {
	movies   store.MovieRepository
	renderer *render.Renderer
	notices  *session.Notices
	notFound http.Handler
}

// NewMoviesHandler creates a new MoviesHandler.
func NewMoviesHandler(movies store.MovieRepository, renderer *render.Renderer, notices *session.Notices, notFound http.Handler) *MoviesHandler {
	return &MoviesHandler{
		movies:   movies,
		renderer: renderer,
		notices:  notices,
		notFound: notFound,
	}
}

// List handles GET / - renders every movie in id order.
func (h *MoviesHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movies.ListMovies(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list movies", "error", err)
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, TemplateIndex, render.TemplateData{
		Data: movies,
	})
}

// Create handles POST / - adds a movie. Anonymous callers are sent back to
// the list without a notice.
func (h *MoviesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r) == nil {
		http.Redirect(w, r, redirectRoot, http.StatusSeeOther)
		return
	}

	form := model.MovieFormFromRequest(r)
	if err := form.Validate(); err != nil {
		slog.Debug("invalid movie form", "errors", model.FieldErrors(err))
		noticeAndRedirect(w, r, h.notices, redirectRoot, NoticeInvalidInput)
		return
	}

	movie, err := h.movies.InsertMovie(r.Context(), form.Apply(store.Movie{}))
	if err != nil {
		logAndInternalError(w, "failed to create movie", "error", err)
		return
	}

	slog.Info("movie created", "movie_id", movie.ID, "title", movie.Title, "user_id", middleware.GetUserID(r))
	noticeAndRedirect(w, r, h.notices, redirectRoot, NoticeItemCreated)
}

// EditForm handles GET /movie/edit/{id} - renders the edit form.
func (h *MoviesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.requireMovie(w, r)
	if !ok {
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, TemplateEdit, render.TemplateData{
		Title: "Edit " + movie.Title,
		Data:  movie,
	})
}

// Update handles POST /movie/edit/{id} - overwrites title and year.
func (h *MoviesHandler) Update(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.requireMovie(w, r)
	if !ok {
		return
	}

	form := model.MovieFormFromRequest(r)
	if err := form.Validate(); err != nil {
		slog.Debug("invalid movie form", "movie_id", movie.ID, "errors", model.FieldErrors(err))
		noticeAndRedirect(w, r, h.notices, fmt.Sprintf(redirectEditID, movie.ID), NoticeInvalidInput)
		return
	}

	if err := h.movies.UpdateMovie(r.Context(), form.Apply(movie)); err != nil {
		logAndInternalError(w, "failed to update movie", "error", err, "movie_id", movie.ID)
		return
	}

	slog.Info("movie updated", "movie_id", movie.ID, "user_id", middleware.GetUserID(r))
	noticeAndRedirect(w, r, h.notices, redirectRoot, NoticeItemUpdated)
}

// Delete handles POST /movie/edit/delete/{id}.
func (h *MoviesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		h.notFound.ServeHTTP(w, r)
		return
	}

	err := h.movies.DeleteMovie(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound.ServeHTTP(w, r)
		return
	}
	if err != nil {
		logAndInternalError(w, "failed to delete movie", "error", err, "movie_id", id)
		return
	}

	slog.Info("movie deleted", "movie_id", id, "user_id", middleware.GetUserID(r))
	noticeAndRedirect(w, r, h.notices, redirectRoot, NoticeItemDeleted)
}

func (h *MoviesHandler) requireMovie(w http.ResponseWriter, r *http.Request) (store.Movie, bool) {
	id, ok := parseIDParam(r)
	if !ok {
		h.notFound.ServeHTTP(w, r)
		return store.Movie{}, false
	}
	return requireEntity(w, r, h.notFound, "movie", id, func(id int64) (store.Movie, error) {
		return h.movies.GetMovie(r.Context(), id)
	})
}
