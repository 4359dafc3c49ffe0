// Package memory keeps session storage in process memory. State is lost on
// restart; use the redis package for durable storage.
package memory

import (
	"context"
	"sync"

	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
)

// SessionStorage is an in-memory ports.SessionStorageFactory.
type SessionStorage struct {
	mu      sync.Mutex
	clients map[string]map[string]string
}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{clients: make(map[string]map[string]string)}
}

// ForClient returns the namespace of clientID.
func (s *SessionStorage) ForClient(clientID string) ports.SessionStorage {
	return &clientStorage{parent: s, clientID: clientID}
}

type clientStorage struct {
	parent   *SessionStorage
	clientID string
}

func (c *clientStorage) Get(_ context.Context, key string) (string, bool, error) {
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()
	v, ok := c.parent.clients[c.clientID][key]
	return v, ok, nil
}

func (c *clientStorage) Set(_ context.Context, key, value string) error {
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()
	ns, ok := c.parent.clients[c.clientID]
	if !ok {
		ns = make(map[string]string)
		c.parent.clients[c.clientID] = ns
	}
	ns[key] = value
	return nil
}

func (c *clientStorage) Delete(_ context.Context, key string) error {
	c.parent.mu.Lock()
	defer c.parent.mu.Unlock()
	delete(c.parent.clients[c.clientID], key)
	return nil
}

// Ping always succeeds.
func (s *SessionStorage) Ping(context.Context) error { return nil }
