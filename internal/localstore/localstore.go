// Package localstore is durable key/value storage for small JSON documents,
// the terminal counterpart of a browser's localStorage.
package localstore

import (
	"context"
	"fmt"
	"regexp"

	"todo/internal/config"
)

// Storage is a string key/value store. Values are opaque to it.
type Storage interface {
	// GetItem returns the value for key and whether it was present.
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error

	// Close releases resources held by the backend.
	Close() error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// checkKey rejects keys that cannot be used as file names.
func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid storage key: %q", key)
	}
	return nil
}

// Open returns the backend selected by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("create config directory: %w", err)
		}
		return OpenSQLite(ctx, cfg.StoragePath())
	case config.StorageFile, "":
		return NewFile(cfg.StoragePath()), nil
	}
	return nil, fmt.Errorf("unknown storage: %s", cfg.Storage)
}
