// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/watchlist/internal/auth"
	"github.com/olegiv/watchlist/internal/middleware"
	"github.com/olegiv/watchlist/internal/model"
	"github.com/olegiv/watchlist/internal/render"
	"github.com/olegiv/watchlist/internal/session"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	gate     *auth.Gate
	renderer *render.Renderer
	notices  *session.Notices
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *auth.Gate, renderer *render.Renderer, notices *session.Notices) *AuthHandler {
	return &AuthHandler{
		gate:     gate,
		renderer: renderer,
		notices:  notices,
	}
}

// LoginForm renders the login page.
// Already-authenticated users are sent to the list.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r) != nil {
		http.Redirect(w, r, redirectRoot, http.StatusSeeOther)
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, TemplateLogin, render.TemplateData{
		Title: "Login",
	})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form := model.LoginFormFromRequest(r)
	if err := form.Validate(); err != nil {
		noticeAndRedirect(w, r, h.notices, redirectLogin, NoticeInvalidInput)
		return
	}

	_, err := h.gate.Login(r.Context(), form.Username, form.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Info("failed login attempt", "username", form.Username, "ip", r.RemoteAddr)
		noticeAndRedirect(w, r, h.notices, redirectLogin, NoticeInvalidCredentials)
		return
	}
	if err != nil {
		logAndInternalError(w, "login failed", "error", err)
		return
	}

	noticeAndRedirect(w, r, h.notices, redirectRoot, NoticeLoginSuccess)
}

// Logout clears the session and says goodbye.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Logout(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}
	noticeAndRedirect(w, r, h.notices, redirectRoot, NoticeGoodbye)
}
