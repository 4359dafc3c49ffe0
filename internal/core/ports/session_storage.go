package ports

import "context"

// SessionStorage is durable key/value storage scoped to a single client.
type SessionStorage interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SessionStorageFactory opens the storage namespace of one client.
type SessionStorageFactory interface {
	ForClient(clientID string) SessionStorage
}
