// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned by Load when the session does not exist or has
// expired.
var ErrNoSession = errors.New("session not found")

// Store persists encoded session payloads.
type Store interface {
	Load(ctx context.Context, id string) ([]byte, error)
	Save(ctx context.Context, id string, data []byte, expiry time.Time) error
	Delete(ctx context.Context, id string) error
}

// SweepInterval is the least time between two expiry sweeps of a MemoryStore
const SweepInterval = time.Minute

// MemoryStore keeps sessions in process memory. Expired entries are dropped
// when loaded, by ClearExpired, and by a sweep run from Save at most once
// per SweepInterval.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

type memoryEntry struct {
	data   []byte
	expiry time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryStore) Load(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNoSession
	}
	if !s.now().Before(e.expiry) {
		delete(s.entries, id)
		return nil, ErrNoSession
	}
	return append([]byte(nil), e.data...), nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, data []byte, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= SweepInterval {
		s.clearExpiredLocked(now)
	}

	s.entries[id] = memoryEntry{data: append([]byte(nil), data...), expiry: expiry}
	return nil
}

// ClearExpired deletes expired sessions and returns how many were removed
func (s *MemoryStore) ClearExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clearExpiredLocked(s.now()), nil
}

func (s *MemoryStore) clearExpiredLocked(now time.Time) int64 {
	var n int64
	for id, e := range s.entries {
		if !now.Before(e.expiry) {
			delete(s.entries, id)
			n++
		}
	}
	s.lastSweep = now
	return n
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// SQLStore keeps sessions in the site_session table. Queries use $N
// placeholders, which both lib/pq and modernc.org/sqlite accept.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Load(ctx context.Context, id string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT session_data
		FROM site_session
		WHERE session_key = $1 AND expire_date > $2
	`, id, s.now().UnixNano()).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return []byte(data), nil
}

func (s *SQLStore) Save(ctx context.Context, id string, data []byte, expiry time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO site_session (session_key, session_data, expire_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_key) DO UPDATE
		SET session_data = excluded.session_data, expire_date = excluded.expire_date
	`, id, string(data), expiry.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM site_session WHERE session_key = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ClearExpired deletes expired sessions and returns how many were removed
func (s *SQLStore) ClearExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM site_session WHERE expire_date <= $1", s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to clear sessions: %w", err)
	}
	return res.RowsAffected()
}

// RedisStore keeps sessions as plain string keys with a Redis TTL
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore connects to Redis and checks the connection
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis URL: %w", err)
	}

	c := redis.NewClient(opts)

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &RedisStore{client: c, prefix: "session:", now: time.Now}, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, data []byte, expiry time.Time) error {
	ttl := expiry.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, id)
	}
	if err := s.client.Set(ctx, s.prefix+id, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
