package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pms:wizard:"

// RedisStore is a Store backed by Redis. Each session is one JSON value
// whose expiry is refreshed on every Put.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore creates a RedisStore over client.
func NewRedisStore(client *redis.Client, ttl time.Duration, opts ...Option) *RedisStore {
	o := buildOptions(opts)
	return &RedisStore{client: client, ttl: ttl, now: o.now}
}

// Get returns the session with id.
func (s *RedisStore) Get(ctx context.Context, id string) (*Wizard, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var w Wizard
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &w, nil
}

// Put stores w, stamping UpdatedAt and refreshing the TTL.
func (s *RedisStore) Put(ctx context.Context, w *Wizard) error {
	w.UpdatedAt = s.now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = w.UpdatedAt
	}
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", w.ID, err)
	}
	if err := s.client.Set(ctx, redisKey(w.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", w.ID, err)
	}
	return nil
}

// Delete removes the session.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// Sweep scans every session key and removes those last updated before
// cutoff. Redis expiry already drops idle sessions; Sweep reports the ones
// that are still present so their blockers can be released.
func (s *RedisStore) Sweep(ctx context.Context, cutoff time.Time) ([]string, error) {
	var removed []string
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id := strings.TrimPrefix(key, keyPrefix)
		w, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return removed, err
		}
		if !w.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := s.Delete(ctx, id); err != nil {
			return removed, err
		}
		removed = append(removed, id)
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan sessions: %w", err)
	}
	sort.Strings(removed)
	return removed, nil
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func redisKey(id string) string {
	return keyPrefix + id
}
