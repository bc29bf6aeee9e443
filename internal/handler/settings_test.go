// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestSettingsForm(t *testing.T) {
	e := newTestEnv(t)
	admin := e.createAdmin(t)
	h := NewSettingsHandler(e.queries, e.renderer, e.notices)

	rec := httptest.NewRecorder()
	h.Form(rec, asUser(e.getRequest("/settings"), admin))

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `value="Grey Li"`) {
		t.Error("settings form should be pre-filled with the current name")
	}
}

func TestSettingsUpdate(t *testing.T) {
	e := newTestEnv(t)
	admin := e.createAdmin(t)
	h := NewSettingsHandler(e.queries, e.renderer, e.notices)

	req := asUser(e.postRequest("/settings", url.Values{"name": {"Li Hui"}}), admin)
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assertRedirect(t, rec, "/")
	assertNotices(t, e, req, NoticeSettingsUpdated)

	got, err := e.queries.GetUser(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != "Li Hui" {
		t.Errorf("Name = %q; want %q", got.Name, "Li Hui")
	}
	if got.Username != admin.Username || got.PasswordHash != admin.PasswordHash {
		t.Error("settings update must only change the name")
	}
}

func TestSettingsUpdate_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "empty", value: ""},
		{name: "too long", value: strings.Repeat("n", 21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			admin := e.createAdmin(t)
			h := NewSettingsHandler(e.queries, e.renderer, e.notices)

			req := asUser(e.postRequest("/settings", url.Values{"name": {tt.value}}), admin)
			rec := httptest.NewRecorder()
			h.Update(rec, req)

			assertRedirect(t, rec, "/settings")
			assertNotices(t, e, req, NoticeInvalidInput)

			got, err := e.queries.GetUser(context.Background(), admin.ID)
			if err != nil {
				t.Fatalf("GetUser: %v", err)
			}
			if got.Name != "Grey Li" {
				t.Errorf("Name = %q; want unchanged", got.Name)
			}
		})
	}
}
