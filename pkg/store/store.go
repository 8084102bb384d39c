// Package store provides keyed persistence for layout documents.
//
// This package defines the Store interface for document storage backends,
// with implementations for different deployments:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI usage (config-dir layout)
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage where documents live next to other
//     application data
//   - null: No-op storage when persistence is disabled
//
// # Architecture
//
// Stores move opaque document bytes; encoding and validation belong to the
// layout package and happen at the import/export boundary, not here. Keys
// are caller-chosen names validated with errors.ValidateDocumentKey, so a
// key is always safe to use as a file name or a database identifier.
// Documents persist until deleted; there is no expiration.
//
// Wrappers compose with any backend:
//   - Scoped prefixes keys for namespace isolation
//   - Instrumented emits observe.StoreHooks events around operations
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// CLI
//	st, err := store.NewFileStore("") // Uses ~/.config/panekit/layouts/
//
//	// Production
//	st, err := store.NewRedisStore(ctx, store.RedisConfig{
//	    Addr: "localhost:6379",
//	})
//
// Or select one from configuration:
//
//	st, err := store.Open(ctx, cfg)
//
// Load and save documents:
//
//	data, found, err := st.Get(ctx, "main")
//	err = st.Set(ctx, "main", data)
package store

import (
	"context"

	"github.com/panekit/panekit/pkg/errors"
)

// Store is the interface for document storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves document bytes by key.
	// Returns nil, false, nil when the key has no document.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores document bytes under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes the document under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// List returns the stored keys in lexical order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Config selects and configures a storage backend.
type Config struct {
	// Backend is one of "memory", "file", "redis", "mongo", or "null".
	Backend string

	// Dir is the base directory for the file backend. Empty means the
	// default config-dir location.
	Dir string

	Redis RedisConfig
	Mongo MongoConfig
}

// Open creates the store selected by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Dir)
	case "redis":
		return NewRedisStore(ctx, cfg.Redis)
	case "mongo":
		return NewMongoStore(ctx, cfg.Mongo)
	case "null":
		return NewNullStore(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", cfg.Backend)
	}
}

// checkKey validates a document key before it reaches a backend.
func checkKey(key string) error {
	return errors.ValidateDocumentKey(key)
}
