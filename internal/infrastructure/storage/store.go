// internal/infrastructure/storage/store.go
package storage

import (
	"context"
	"errors"
)

// Persisted state keys. Presence of all three auth keys together is the
// only valid persisted auth state; the cart key lives independently.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyCart         = "cart"
)

// ErrNotFound is returned when a key has no persisted value.
var ErrNotFound = errors.New("storage: key not found")

// Store is the persistent store bridge: durable key/blob storage for
// auth and cart snapshots. Implementations do pure reads and writes; all
// business rules about what the blobs mean live with the callers.
type Store interface {
	// Get returns the blob for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes the blob for key, overwriting any prior value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
