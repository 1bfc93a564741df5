// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey      = errors.New("invalid admin key")
	ErrInvalidSessionCookie = errors.New("invalid session cookie")
)

// AdminScope is the scope string the site-wide admin key is derived from
const AdminScope = "mysite-admin"

// GenerateAdminKey creates an HMAC-based admin key for a scope
// This is deterministic and verifiable
func GenerateAdminKey(scope, salt string) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(mac(scope, salt)), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the scope
func ValidateAdminKey(scope, adminKey, salt string) error {
	expected := GenerateAdminKey(scope, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateSessionID creates a random session identifier
func GenerateSessionID() string {
	return uuid.NewString()
}

// SignSessionID returns the cookie value for a session: the ID followed by
// a dot and its URL-safe HMAC signature.
func SignSessionID(id, secret string) string {
	sig := strings.TrimRight(base64.URLEncoding.EncodeToString(mac(id, secret)), "=")
	return id + "." + sig
}

// VerifySessionCookie checks a cookie value produced by SignSessionID and
// returns the session ID it carries.
func VerifySessionCookie(value, secret string) (string, error) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 || i == len(value)-1 {
		return "", ErrInvalidSessionCookie
	}

	id := value[:i]
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidSessionCookie
	}

	if !hmac.Equal([]byte(value), []byte(SignSessionID(id, secret))) {
		return "", ErrInvalidSessionCookie
	}
	return id, nil
}

func mac(message, key string) []byte {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(message))
	return h.Sum(nil)
}
