// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"net/http"
	"strings"

	"github.com/olegiv/watchlist/internal/store"
)

// MovieForm is the create/edit movie form.
type MovieForm struct {
	Title string `validate:"required,max=60"`
	Year  string `validate:"required,max=4"`
}

// MovieFormFromRequest reads a MovieForm from a parsed request form.
func MovieFormFromRequest(r *http.Request) MovieForm {
	return MovieForm{
		Title: strings.TrimSpace(r.PostFormValue("title")),
		Year:  strings.TrimSpace(r.PostFormValue("year")),
	}
}

// Validate checks required fields and length limits.
func (f MovieForm) Validate() error {
	return validate.Struct(f)
}

// Apply copies the form values onto m.
func (f MovieForm) Apply(m store.Movie) store.Movie {
	m.Title = f.Title
	m.Year = f.Year
	return m
}
