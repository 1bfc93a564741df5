// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for mysite.

# Handler Types

  - PollHandler: public question listing and detail, as HTML and JSON
  - HomeHandler: the site index and the session visit counter
  - AdminHandler: question and choice management

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(store, renderer, metrics)
	homeHandler := handlers.NewHomeHandler(sessions, renderer, metrics)
	adminHandler := handlers.NewAdminHandler(store, cfg)

# Visibility

A question is shown only when its pub date is set, not in the future, and it
has at least one choice. Anything else is a 404, whatever the cause:

	GET /polls/           → Index (most recent first)
	GET /polls/{id}/      → Detail
	GET /api/polls        → ListAPI
	GET /api/polls/{id}   → DetailAPI

The cause of each 404 is counted in mysite_polls_detail_not_found_total.

# Visit Counter

	GET /home/            → Home

Home shows how many times the session visited before, then increments the
stored count. The session travels in the signed sessionid cookie.

# Admin Operations

Admin requests require the X-Admin-Key header, generated with
"mysite admin-key":

	POST   /admin/questions               → CreateQuestion
	POST   /admin/questions/{id}/choices  → AddChoice
	DELETE /admin/questions/{id}          → DeleteQuestion

CreateQuestion accepts either pub_date or a days offset from now. With
neither, the question is published immediately.

# Error Handling

JSON endpoints return errors as:

	{"error": "Not Found", "message": "Question not found"}

Common status codes:
  - 400: Invalid input
  - 401: Invalid admin key
  - 404: Question not found or not visible
  - 500: Storage error
*/
package handlers
