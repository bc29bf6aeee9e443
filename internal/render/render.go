// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render executes the embedded page templates inside the base layout.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/olegiv/watchlist/internal/middleware"
	"github.com/olegiv/watchlist/internal/session"
	"github.com/olegiv/watchlist/internal/store"
)

const baseLayout = "layouts/base.html"

// Directories holding page templates. A file "pages/index.html" is
// registered as "index", "errors/404.html" as "errors/404".
var templateDirs = []string{"pages", "errors"}

// blankLinesRegex matches two or more consecutive newlines (with optional whitespace between).
var blankLinesRegex = regexp.MustCompile(`(\r?\n\s*){2,}`)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates map[string]*template.Template
	notices   *session.Notices
	users     store.UserRepository
	isDev     bool
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	Notices     *session.Notices
	Users       store.UserRepository
	IsDev       bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		notices:   cfg.Notices,
		users:     cfg.Users,
		isDev:     cfg.IsDev,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses every page template together with the base layout
// and partials.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	for _, dir := range templateDirs {
		pages, err := templateFiles(templatesFS, dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", dir, err)
		}

		for _, tmplPath := range pages {
			name := strings.TrimSuffix(path.Base(tmplPath), ".html")
			if dir != "pages" {
				name = dir + "/" + name
			}

			files := []string{baseLayout}
			files = append(files, partials...)
			files = append(files, tmplPath)

			tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}

			r.templates[name] = tmpl
		}
	}

	if len(r.templates) == 0 {
		return errors.New("no page templates found")
	}

	return nil
}

// templateFiles returns all .html files in a directory.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return files, nil
	}
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"imdbSearch": func(title string) string {
			return "https://www.imdb.com/find?q=" + url.QueryEscape(title)
		},
		"pluralize": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
	}
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Owner       *store.User // first user row; nil before the database is seeded
	User        *store.User // authenticated caller; nil when anonymous
	Notices     []string
	CurrentYear int
	IsDev       bool
	Data        any
}

// HasTemplate reports whether a page with name was parsed.
func (r *Renderer) HasTemplate(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render renders the named page with status. Queued notices are consumed,
// so a failed render loses them.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	data.IsDev = r.isDev
	data.User = middleware.GetUser(req)
	data.Owner = r.owner(req.Context())

	if r.notices != nil {
		data.Notices = r.notices.Pop(req.Context())
	}

	// Render to buffer first to catch errors
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	compacted := blankLinesRegex.ReplaceAll(buf.Bytes(), []byte("\n"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(compacted)
	return err
}

// owner loads the first user for the page header. Lookup failures render
// the page without an owner.
func (r *Renderer) owner(ctx context.Context) *store.User {
	if r.users == nil {
		return nil
	}
	user, err := r.users.FirstUser(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("failed to load owner", "error", err)
		}
		return nil
	}
	return &user
}
