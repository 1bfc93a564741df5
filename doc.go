// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the mysite server.

mysite publishes polls (questions with choices) and keeps a per-visitor
counter on its home page.

# Starting the Server

The server reads CLI flags, then environment variables, then a .env file in
the working directory:

	ADMIN_KEY_SALT=... SESSION_SECRET=... go run .

Or with flags:

	go run . -p 8000 -t postgres -d "postgres://..." --session-backend redis --redis-url redis://localhost:6379/0

# Commands

	mysite [serve]       run the HTTP server (default)
	mysite admin-key     print the X-Admin-Key value for admin requests
	mysite clearsessions delete expired rows from the SQL session table

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for the admin key HMAC
  - SESSION_SECRET (--session-secret): Secret for session cookie signing

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): Connection string (default for sqlite: mysite.db)
  - SESSION_BACKEND (--session-backend): memory, sql or redis (default: memory)
  - REDIS_URL (--redis-url): Required for the redis backend
  - SESSION_TTL (--session-ttl): Session lifetime (default: 336h)
  - LOG_LEVEL, LOG_FORMAT: debug|info|warn|error, auto|text|json

# Architecture

  - polls: Visibility rules and the question workflow
  - handlers: HTTP request handlers (polls, home, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, metrics, CORS, JSON helpers
  - session: Cookie sessions with memory, SQL and redis stores
  - render: Embedded HTML templates
  - models: Domain and request/response types
  - auth: Admin keys and cookie signing
  - db: Schema and SQL question store
  - logging: slog setup
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
