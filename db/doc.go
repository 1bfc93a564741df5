// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and the SQL poll
store.

# Drivers

Two drivers are registered:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (pure Go, the default)

	conn, err := db.Open(db.DriverSQLite, "mysite.db")

# Schema Creation

CreateSchema initializes all required tables for the given driver:

	if err := db.CreateSchema(conn, db.DriverSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - question: question text and publication time
  - choice: options per question with a vote counter
  - site_session: session payloads for the SQL session backend

# Relationships

	question 1──* choice

Choices use ON DELETE CASCADE, and PollStore.DeleteQuestion also removes
them explicitly inside its transaction.
*/
package db
