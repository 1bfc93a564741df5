// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware, metrics, and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level and completion (status, duration_ms) at info.

# Metrics

A Metrics value owns its own Prometheus registry:

	m := middleware.NewMetrics()
	mux.HandleFunc("GET /polls/", m.Instrument("polls_index", handler))
	mux.Handle("GET /metrics", m.Handler())

Instrument records mysite_http_requests_total{route,status} and
mysite_http_request_duration_seconds{route}.

# CORS Middleware

The JSON API is readable from other origins:

	mux.HandleFunc("GET /api/polls", middleware.CORS(handler))

Only GET and OPTIONS are allowed. Preflight requests get 204.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
