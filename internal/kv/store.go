// Package kv provides the local key-value blob stores the catalog
// collection persists into.
package kv

import (
	"context"
	"errors"
)

// Store errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrEmptyKey    = errors.New("key cannot be empty")
	ErrStoreClosed = errors.New("store is closed")
)

// Store is a minimal blob-per-key store. Values are opaque bytes; Save
// replaces the previous value atomically from the caller's perspective.
type Store interface {
	// Load returns the value stored under key, or ErrKeyNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes the key and its value. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
