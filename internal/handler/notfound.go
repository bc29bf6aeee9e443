// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/watchlist/internal/render"
)

// NotFoundHandler renders the 404 page.
type NotFoundHandler struct {
	renderer *render.Renderer
}

// NewNotFoundHandler creates a new NotFoundHandler.
func NewNotFoundHandler(renderer *render.Renderer) *NotFoundHandler {
	return &NotFoundHandler{renderer: renderer}
}

// ServeHTTP renders errors/404 with status 404.
func (h *NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, http.StatusNotFound, TemplateNotFound, render.TemplateData{
		Title: "Page Not Found",
	})
}
