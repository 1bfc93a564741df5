// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/mysite/middleware"
	"github.com/danielhkuo/mysite/render"
	"github.com/danielhkuo/mysite/session"
)

// HomeHandler serves the site index and the per-session visit counter
type HomeHandler struct {
	sessions *session.Manager
	renderer *render.Renderer
	metrics  *middleware.Metrics
}

func NewHomeHandler(sessions *session.Manager, renderer *render.Renderer, metrics *middleware.Metrics) *HomeHandler {
	return &HomeHandler{sessions: sessions, renderer: renderer, metrics: metrics}
}

// Index handles GET /
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderer.HTML(w, http.StatusOK, render.PageIndex, nil)
}

// Home handles GET /home/ and its aliases. The page shows how many times the
// session had visited before this request.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Load(r)
	if err != nil {
		slog.Error("failed to load session", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	count := session.RecordVisit(s)

	// The cookie header must be written before the page body
	if err := h.sessions.Save(r.Context(), w, s); err != nil {
		slog.Error("failed to save session", "session_id", s.ID, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.metrics.HomeVisitsTotal.Inc()
	slog.Debug("home visit recorded", "session_id", s.ID, "previous_visits", count)

	h.renderer.HTML(w, http.StatusOK, render.PageHome, render.HomeData{Count: count})
}
