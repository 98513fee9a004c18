// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
)

// Storage keys owned by the cart and session components.
const (
	KeyCart  = "cart"
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrKeyNotFound is returned by a KeyValueStore when the key has never been written or was deleted.
var ErrKeyNotFound = errors.New("storage key not found")

// KeyValueStore is the durable, synchronous string store backing the client state.
// Values are written in full; there are no partial updates.
type KeyValueStore interface {
	// Get returns the stored value or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection or handle.
	Close() error
}
