// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the movie list.
	RouteRoot = "/"
	// RouteParamID matches a decimal record id.
	RouteParamID = "/{id:[0-9]+}"

	// RouteMovieEdit is the edit form route prefix.
	RouteMovieEdit = "/movie/edit"
	// RouteMovieDelete is the delete route prefix.
	RouteMovieDelete = RouteMovieEdit + "/delete"

	// RouteMovieEditID is the edit route pattern.
	RouteMovieEditID = RouteMovieEdit + RouteParamID
	// RouteMovieDeleteID is the delete route pattern.
	RouteMovieDeleteID = RouteMovieDelete + RouteParamID

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteSettings is the settings route.
	RouteSettings = "/settings"
	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteStatic serves embedded assets.
	RouteStatic = "/static/*"
)

// Page template names rendered by the handlers.
const (
	TemplateIndex    = "index"
	TemplateEdit     = "edit"
	TemplateLogin    = "login"
	TemplateSettings = "settings"
	TemplateNotFound = "errors/404"
)

// Templates lists every page the handlers render.
var Templates = []string{TemplateIndex, TemplateEdit, TemplateLogin, TemplateSettings, TemplateNotFound}

const (
	redirectRoot     = RouteRoot
	redirectLogin    = RouteLogin
	redirectSettings = RouteSettings
	redirectEditID   = RouteMovieEdit + "/%d"
)

// Notice texts shown after a redirect.
const (
	NoticeInvalidInput       = "Invalid input."
	NoticeInvalidCredentials = "Invalid username or password."
	NoticeLoginSuccess       = "Login success."
	NoticeGoodbye            = "Goodbye."
	NoticeItemCreated        = "Item created."
	NoticeItemUpdated        = "Item updated."
	NoticeItemDeleted        = "Item deleted."
	NoticeSettingsUpdated    = "Settings updated."
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"
