// Package storage defines the persistence port. The engine treats it as a
// key-value blob store with no transactions across keys: saving rules and
// saving history are independent calls.
package storage

import "context"

// Well-known storage keys. Values are JSON-serialized engine structures and
// must round-trip losslessly.
const (
	KeyRules   = "rules"
	KeyHistory = "rename_history"
	KeyPresets = "rename_presets"
)

// Store is the key-value persistence port consumed by the engine
type Store interface {
	// Get returns the blob stored under key
	// Returns domain.ErrKeyNotFound if the key has no value
	Get(ctx context.Context, key string) ([]byte, error)

	// Set creates or overwrites the blob stored under key
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key; no error if it does not exist
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store
	Close() error
}
