package store

import (
	"context"
	"time"

	"github.com/panekit/panekit/pkg/observe"
)

// InstrumentedStore wraps a Store and emits observe.StoreHooks events
// around load, save, and delete operations. With the default no-op hooks
// the wrapper adds nothing but a clock read.
type InstrumentedStore struct {
	inner   Store
	backend string
}

// NewInstrumentedStore wraps a store under the given backend name, which
// is reported to the hooks on every event.
func NewInstrumentedStore(inner Store, backend string) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, backend: backend}
}

// Get retrieves document bytes by key.
func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	data, found, err := s.inner.Get(ctx, key)
	observe.Store().OnLoad(ctx, s.backend, key, found, time.Since(start), err)
	return data, found, err
}

// Set stores document bytes under key.
func (s *InstrumentedStore) Set(ctx context.Context, key string, data []byte) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, data)
	observe.Store().OnSave(ctx, s.backend, key, len(data), time.Since(start), err)
	return err
}

// Delete removes the document under key.
func (s *InstrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	observe.Store().OnDelete(ctx, s.backend, key, time.Since(start), err)
	return err
}

// List returns the stored keys in lexical order.
func (s *InstrumentedStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

// Close closes the wrapped store.
func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}

// Ensure InstrumentedStore implements Store.
var _ Store = (*InstrumentedStore)(nil)
