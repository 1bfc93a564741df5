// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key checks and session cookie signing.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(auth.AdminScope, salt)
	err := auth.ValidateAdminKey(auth.AdminScope, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same scope and salt always produce the same key, so nothing is stored.
Print the current key with:

	mysite admin-key

# Session Cookies

Session IDs are random UUIDs. The cookie carries the ID and its HMAC:

	value := auth.SignSessionID(auth.GenerateSessionID(), secret)
	id, err := auth.VerifySessionCookie(value, secret)

A cookie that was altered, signed with another secret, or does not carry a
UUID fails with ErrInvalidSessionCookie.
*/
package auth
