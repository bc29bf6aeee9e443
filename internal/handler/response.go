// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/watchlist/internal/render"
	"github.com/olegiv/watchlist/internal/session"
	"github.com/olegiv/watchlist/internal/store"
)

// noticeAndRedirect queues a notice and redirects to the given URL.
// Uses http.StatusSeeOther (303) so the browser follows up with GET.
func noticeAndRedirect(w http.ResponseWriter, r *http.Request, notices *session.Notices, url, message string) {
	notices.Add(r.Context(), message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// CheckTemplates returns an error naming the first page template the
// renderer lacks.
func CheckTemplates(renderer *render.Renderer) error {
	for _, name := range Templates {
		if !renderer.HasTemplate(name) {
			return fmt.Errorf("missing page template %q", name)
		}
	}
	return nil
}

// renderPage renders a page and answers 500 when the template fails.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, status int, name string, data render.TemplateData) {
	if err := renderer.Render(w, r, status, name, data); err != nil {
		logAndInternalError(w, "failed to render template", "template", name, "error", err)
	}
}

// parseIDParam reads the {id} URL parameter. Values that do not fit an
// int64 are reported as absent.
func parseIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// requireEntity fetches an entity by ID using the provided query function.
// A missing record renders the not-found page; any other error answers 500.
// Returns the entity and true if successful, or zero value and false if a
// response was already written.
func requireEntity[T any](
	w http.ResponseWriter,
	r *http.Request,
	notFound http.Handler,
	entityName string,
	id int64,
	queryFn func(id int64) (T, error),
) (T, bool) {
	var zero T
	entity, err := queryFn(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound.ServeHTTP(w, r)
		} else {
			logAndInternalError(w, "failed to get "+entityName, "error", err, entityName+"_id", id)
		}
		return zero, false
	}
	return entity, true
}
