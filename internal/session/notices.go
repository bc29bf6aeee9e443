// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

const sessionKeyNotices = "notices"

// Notices is a per-session queue of messages shown once on the next render.
type Notices struct {
	sessionManager *scs.SessionManager
}

// NewNotices creates a notice queue stored in sm.
func NewNotices(sm *scs.SessionManager) *Notices {
	return &Notices{sessionManager: sm}
}

// Add appends message to the queue of the session in ctx.
func (n *Notices) Add(ctx context.Context, message string) {
	queued, _ := n.sessionManager.Get(ctx, sessionKeyNotices).([]string)
	next := make([]string, 0, len(queued)+1)
	next = append(next, queued...)
	next = append(next, message)
	n.sessionManager.Put(ctx, sessionKeyNotices, next)
}

// Pop drains the queue, returning messages in insertion order.
func (n *Notices) Pop(ctx context.Context) []string {
	queued, _ := n.sessionManager.Pop(ctx, sessionKeyNotices).([]string)
	return queued
}
