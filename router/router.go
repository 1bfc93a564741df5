// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/mysite/cliparse"
	"github.com/danielhkuo/mysite/handlers"
	"github.com/danielhkuo/mysite/middleware"
	"github.com/danielhkuo/mysite/polls"
	"github.com/danielhkuo/mysite/render"
	"github.com/danielhkuo/mysite/session"
)

// HomeAliases serve the visit counter under the site's section names
var HomeAliases = []string{"/mtdt", "/cdr", "/pi", "/clo", "/subject", "/gradebook"}

// Deps are the services the routes are built from
type Deps struct {
	Store    polls.Repository
	Sessions *session.Manager
	Renderer *render.Renderer
	Metrics  *middleware.Metrics
	Config   cliparse.Config
}

func NewRouter(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(deps.Store, deps.Renderer, deps.Metrics)
	homeHandler := handlers.NewHomeHandler(deps.Sessions, deps.Renderer, deps.Metrics)
	adminHandler := handlers.NewAdminHandler(deps.Store, deps.Config)

	route := func(pattern, name string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(deps.Metrics.Instrument(name, h)))
	}

	// Health check and metrics
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", deps.Metrics.Handler())

	// Polls (HTML)
	route("GET /polls/{$}", "polls_index", pollHandler.Index)
	route("GET /polls/{id}/{$}", "polls_detail", pollHandler.Detail)

	// Polls (JSON, readable cross-origin)
	route("GET /api/polls", "api_polls_list", middleware.CORS(pollHandler.ListAPI))
	route("GET /api/polls/{id}", "api_polls_detail", middleware.CORS(pollHandler.DetailAPI))
	route("OPTIONS /api/polls", "api_preflight", middleware.CORS(pollHandler.ListAPI))
	route("OPTIONS /api/polls/{id}", "api_preflight", middleware.CORS(pollHandler.DetailAPI))

	// Admin
	route("POST /admin/questions", "admin_create_question", adminHandler.CreateQuestion)
	route("POST /admin/questions/{id}/choices", "admin_add_choice", adminHandler.AddChoice)
	route("DELETE /admin/questions/{id}", "admin_delete_question", adminHandler.DeleteQuestion)

	// Visit counter
	route("GET /home/{$}", "home", homeHandler.Home)
	for _, alias := range HomeAliases {
		route("GET "+alias, "home", homeHandler.Home)
	}

	// Site index, and 404 for anything unmatched
	route("GET /{$}", "index", homeHandler.Index)
	route("/", "not_found", func(w http.ResponseWriter, r *http.Request) {
		deps.Renderer.NotFound(w)
	})

	return mux
}
