// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/mysite/models"
)

// Values is a mutable key-value view of one visitor's session.
type Values interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// RecordVisit increments the visit counter and returns the count from
// before this visit. Two concurrent requests in one session may both read
// the same count.
func RecordVisit(v Values) int {
	count := Int(v, models.SessionKeyVisits)
	v.Set(models.SessionKeyVisits, count+1)
	return count
}

// Int reads an integer value, returning 0 when the key is absent or holds
// something that is not a whole number.
func Int(v Values, key string) int {
	raw, ok := v.Get(key)
	if !ok {
		return 0
	}

	switch n := raw.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	}
	return 0
}

// Session is one visitor's session. It is owned by a single request and is
// not safe for concurrent use.
type Session struct {
	ID       string
	values   map[string]any
	isNew    bool
	modified bool
}

func newSession(id string) *Session {
	return &Session{ID: id, values: map[string]any{}, isNew: true}
}

func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key string, value any) {
	s.values[key] = value
	s.modified = true
}

// IsNew reports whether the session was created during this request
func (s *Session) IsNew() bool {
	return s.isNew
}

// Modified reports whether Set was called since the session was loaded
func (s *Session) Modified() bool {
	return s.modified
}

func encode(values map[string]any) ([]byte, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

func decode(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	values := map[string]any{}
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return values, nil
}
