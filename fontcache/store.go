// seehuhn.de/go/sheet - variable-data ticket sheets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fontcache

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps font files by name.
//
// Get returns found == false, and no error, for unknown names.  The slice
// returned by Get belongs to the caller, and the store may keep the slice
// passed to Set.  Deleting an unknown name is not an error.
type Store interface {
	Get(ctx context.Context, name string) (data []byte, found bool, err error)
	Set(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps fonts in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	fonts map[string][]byte
}

// Ensure MemoryStore implements the Store interface.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{fonts: make(map[string][]byte)}
}

// Get implements the [Store] interface.
func (s *MemoryStore) Get(_ context.Context, name string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.fonts[name]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(data), true, nil
}

// Set implements the [Store] interface.
func (s *MemoryStore) Set(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fonts[name] = data
	return nil
}

// Delete implements the [Store] interface.
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fonts, name)
	return nil
}

// Clear implements the [Store] interface.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.fonts)
	return nil
}

// Len returns the number of fonts in the store.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fonts)
}

// RedisStore keeps fonts in a Redis database, under the key Prefix+name.
type RedisStore struct {
	client *redis.Client

	// Prefix is prepended to font names to form the database keys.
	Prefix string

	// TTL is the time after which a stored font expires.
	// Zero means fonts are kept indefinitely.
	TTL time.Duration
}

// Ensure RedisStore implements the Store interface.
var _ Store = (*RedisStore)(nil)

// NewRedisStore returns a store which uses the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, Prefix: "font:"}
}

// Get implements the [Store] interface.
func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.Prefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set implements the [Store] interface.
func (s *RedisStore) Set(ctx context.Context, name string, data []byte) error {
	return s.client.Set(ctx, s.Prefix+name, data, s.TTL).Err()
}

// Delete implements the [Store] interface.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	return s.client.Del(ctx, s.Prefix+name).Err()
}

// Clear implements the [Store] interface.  It removes every key which
// starts with Prefix.
func (s *RedisStore) Clear(ctx context.Context) error {
	pattern := redisEscape(s.Prefix) + "*"
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	for chunk := range slices.Chunk(keys, 100) {
		if err := s.client.Del(ctx, chunk...).Err(); err != nil {
			return err
		}
	}
	return nil
}

// redisEscape quotes the glob characters of a SCAN pattern.
func redisEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
