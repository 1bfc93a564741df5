// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/mysite/auth"
)

// CookieName is the cookie carrying the signed session ID
const CookieName = "sessionid"

// Manager binds sessions to requests through a signed cookie.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: secret, ttl: ttl, now: time.Now}
}

// Load returns the request's session. A missing, forged, or expired cookie
// yields a fresh session; only a store failure is an error.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return newSession(auth.GenerateSessionID()), nil
	}

	id, err := auth.VerifySessionCookie(cookie.Value, m.secret)
	if err != nil {
		slog.Debug("ignoring session cookie", "error", err)
		return newSession(auth.GenerateSessionID()), nil
	}

	data, err := m.store.Load(r.Context(), id)
	if errors.Is(err, ErrNoSession) {
		return newSession(auth.GenerateSessionID()), nil
	}
	if err != nil {
		return nil, err
	}

	values, err := decode(data)
	if err != nil {
		slog.Warn("discarding unreadable session", "error", err)
		return newSession(auth.GenerateSessionID()), nil
	}

	return &Session{ID: id, values: values}, nil
}

// Save persists a modified session and refreshes its cookie. Unmodified
// sessions are left alone.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if !s.modified {
		return nil
	}

	data, err := encode(s.values)
	if err != nil {
		return err
	}

	expiry := m.now().Add(m.ttl)
	if err := m.store.Save(ctx, s.ID, data, expiry); err != nil {
		return fmt.Errorf("failed to persist session %s: %w", s.ID, err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    auth.SignSessionID(s.ID, m.secret),
		Path:     "/",
		Expires:  expiry,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.isNew = false
	s.modified = false
	return nil
}
