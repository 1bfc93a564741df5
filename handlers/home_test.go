// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danielhkuo/mysite/middleware"
	"github.com/danielhkuo/mysite/session"
	tu "github.com/danielhkuo/mysite/testutil"
)

func newTestHomeHandler(t *testing.T, store session.Store) (*HomeHandler, *middleware.Metrics) {
	t.Helper()
	cfg := tu.GetTestConfig()
	metrics := middleware.NewMetrics()
	manager := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL)
	return NewHomeHandler(manager, newTestRenderer(t), metrics), metrics
}

func visitHome(h *HomeHandler, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/home/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h.Home(w, req)
	return w
}

func findSessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestHomeIndex(t *testing.T) {
	h, _ := newTestHomeHandler(t, session.NewMemoryStore())

	w := httptest.NewRecorder()
	h.Index(w, httptest.NewRequest("GET", "/", nil))

	tu.AssertStatus(t, w, http.StatusOK)
	tu.AssertContains(t, w, `href="/polls/"`)
}

func TestHome_CountsVisits(t *testing.T) {
	conn := tu.SetupTestDB(t)
	defer conn.Close()

	stores := map[string]session.Store{
		"memory": session.NewMemoryStore(),
		"sql":    session.NewSQLStore(conn),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			h, metrics := newTestHomeHandler(t, store)

			w := visitHome(h, nil)
			tu.AssertStatus(t, w, http.StatusOK)
			tu.AssertContains(t, w, "0 times")

			cookie := findSessionCookie(w)
			if cookie == nil {
				t.Fatal("Expected a session cookie")
			}

			w = visitHome(h, cookie)
			tu.AssertContains(t, w, "1 time.")

			w = visitHome(h, cookie)
			tu.AssertContains(t, w, "2 times")

			if got := testutil.ToFloat64(metrics.HomeVisitsTotal); got != 3 {
				t.Errorf("Expected 3 visits counted, got %v", got)
			}
		})
	}
}

func TestHome_SessionsAreIndependent(t *testing.T) {
	h, _ := newTestHomeHandler(t, session.NewMemoryStore())

	first := findSessionCookie(visitHome(h, nil))
	visitHome(h, first)

	w := visitHome(h, nil)
	tu.AssertContains(t, w, "0 times")
}

func TestHome_ForgedCookieStartsOver(t *testing.T) {
	h, _ := newTestHomeHandler(t, session.NewMemoryStore())

	cookie := findSessionCookie(visitHome(h, nil))
	cookie.Value += "x"

	w := visitHome(h, cookie)
	tu.AssertContains(t, w, "0 times")
}

type unavailableStore struct{ *session.MemoryStore }

func (unavailableStore) Save(ctx context.Context, id string, data []byte, expiry time.Time) error {
	return errors.New("store unavailable")
}

func TestHome_StoreFailure(t *testing.T) {
	h, metrics := newTestHomeHandler(t, unavailableStore{session.NewMemoryStore()})

	w := visitHome(h, nil)

	tu.AssertStatus(t, w, http.StatusInternalServerError)
	if got := testutil.ToFloat64(metrics.HomeVisitsTotal); got != 0 {
		t.Errorf("Expected no visit counted, got %v", got)
	}
}
