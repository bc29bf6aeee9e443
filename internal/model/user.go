// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"net/http"
	"strings"
)

// SettingsForm updates the display name of the current user.
type SettingsForm struct {
	Name string `validate:"required,max=20"`
}

// SettingsFormFromRequest reads a SettingsForm from a parsed request form.
func SettingsFormFromRequest(r *http.Request) SettingsForm {
	return SettingsForm{Name: strings.TrimSpace(r.PostFormValue("name"))}
}

// Validate checks the name.
func (f SettingsForm) Validate() error {
	return validate.Struct(f)
}

// LoginForm carries submitted credentials. Values are taken verbatim.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// LoginFormFromRequest reads a LoginForm from a parsed request form.
func LoginFormFromRequest(r *http.Request) LoginForm {
	return LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
}

// Validate checks both fields are present.
func (f LoginForm) Validate() error {
	return validate.Struct(f)
}
