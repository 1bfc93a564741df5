// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router configures HTTP routes for mysite.

# Usage

	mux := router.NewRouter(router.Deps{
		Store:    db.NewPollStore(conn),
		Sessions: session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL),
		Renderer: renderer,
		Metrics:  middleware.NewMetrics(),
		Config:   cfg,
	})
	http.ListenAndServe(":8000", mux)

# Routes

Pages:
  - GET /                → site index
  - GET /polls/          → latest questions
  - GET /polls/{id}/     → question detail
  - GET /home/           → visit counter (also /mtdt, /cdr, /pi, /clo, /subject, /gradebook)

JSON (CORS enabled):
  - GET /api/polls
  - GET /api/polls/{id}

Admin (X-Admin-Key):
  - POST   /admin/questions
  - POST   /admin/questions/{id}/choices
  - DELETE /admin/questions/{id}

Operations:
  - GET /health          → "OK"
  - GET /metrics         → Prometheus text format

Every route except /health and /metrics is logged with middleware.WithLogging
and counted under its route name. Unmatched paths render the 404 page.
*/
package router
