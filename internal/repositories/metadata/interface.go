// Package metadata stores vault-level key/value settings, such as the key
// derivation parameters the vault was created with.
package metadata

import "context"

type Repository interface {
	// Get returns the value stored under key, or common.ErrorNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// SetAll upserts every pair atomically: either all values are written or
	// none are.
	SetAll(ctx context.Context, values map[string][]byte) error
}
