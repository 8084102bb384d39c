package store

import (
	"context"
	"strings"
)

// ScopedStore wraps a Store with a key prefix for namespace isolation.
// This is useful where different workspaces or users share one backend
// and need separate layout namespaces.
//
// Example usage:
//
//	// Workspace-specific layouts on a shared Redis
//	ws := store.NewScopedStore(shared, "team1.")
//
// The prefix must itself be key-safe (letters, digits, dot, dash,
// underscore), since prefixed keys pass the same validation as plain ones.
type ScopedStore struct {
	inner  Store
	prefix string
}

// NewScopedStore creates a store whose keys are all prefixed.
func NewScopedStore(inner Store, prefix string) *ScopedStore {
	if inner == nil {
		inner = NewMemoryStore()
	}
	return &ScopedStore{inner: inner, prefix: prefix}
}

// Get retrieves document bytes by prefixed key.
func (s *ScopedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores document bytes under the prefixed key.
func (s *ScopedStore) Set(ctx context.Context, key string, data []byte) error {
	return s.inner.Set(ctx, s.prefix+key, data)
}

// Delete removes the document under the prefixed key.
func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// List returns the keys inside this scope, with the prefix stripped.
func (s *ScopedStore) List(ctx context.Context) ([]string, error) {
	all, err := s.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(all))
	for _, key := range all {
		if strings.HasPrefix(key, s.prefix) {
			keys = append(keys, strings.TrimPrefix(key, s.prefix))
		}
	}
	return keys, nil
}

// Close closes the wrapped store.
func (s *ScopedStore) Close() error {
	return s.inner.Close()
}

// Ensure ScopedStore implements Store.
var _ Store = (*ScopedStore)(nil)
