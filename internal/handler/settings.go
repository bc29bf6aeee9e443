// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/watchlist/internal/middleware"
	"github.com/olegiv/watchlist/internal/model"
	"github.com/olegiv/watchlist/internal/render"
	"github.com/olegiv/watchlist/internal/session"
	"github.com/olegiv/watchlist/internal/store"
)

// SettingsHandler lets the logged-in user change their display name.
type SettingsHandler struct {
	users    store.UserRepository
	renderer *render.Renderer
	notices  *session.Notices
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(users store.UserRepository, renderer *render.Renderer, notices *session.Notices) *SettingsHandler {
	return &SettingsHandler{
		users:    users,
		renderer: renderer,
		notices:  notices,
	}
}

// Form handles GET /settings.
func (h *SettingsHandler) Form(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, http.StatusOK, TemplateSettings, render.TemplateData{
		Title: "Settings",
	})
}

// Update handles POST /settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
		return
	}

	form := model.SettingsFormFromRequest(r)
	if err := form.Validate(); err != nil {
		noticeAndRedirect(w, r, h.notices, redirectSettings, NoticeInvalidInput)
		return
	}

	updated := *user
	updated.Name = form.Name
	if err := h.users.UpdateUser(r.Context(), updated); err != nil {
		logAndInternalError(w, "failed to update settings", "error", err, "user_id", user.ID)
		return
	}

	slog.Info("settings updated", "user_id", user.ID)
	noticeAndRedirect(w, r, h.notices, redirectRoot, NoticeSettingsUpdated)
}
