// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package prefs keeps the few values the interactive surfaces remember across
// sessions: the theme and the visit counter.
package prefs

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
	"strings"
	"sync"
)

// Store is a minimal durable key/value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Open picks a backend from uri: "memory:" for a process local store,
// "redis://" or "rediss://" URLs for Redis, anything else is a file path.
func Open(uri string) (Store, error) {
	switch {
	case uri == "memory:":
		return NewMemoryStore(), nil
	case strings.HasPrefix(uri, "redis://"), strings.HasPrefix(uri, "rediss://"):
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return NewRedisStore(redis.NewClient(opt), DefaultRedisPrefix), nil
	case uri == "":
		return nil, fmt.Errorf("empty preferences location")
	default:
		return NewFileStore(uri), nil
	}
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
