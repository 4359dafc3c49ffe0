package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
)

// Registry bounds used when none are configured.
const (
	DefaultSessionIdleTTL   = 30 * time.Minute
	DefaultSessionMaxStores = 10000
)

type registryEntry struct {
	store    *SessionStore
	lastUsed time.Time
}

// SessionRegistry hands out one SessionStore per client id, each backed by the
// client's own storage namespace.
//
// Cached stores are dropped once idle for longer than idleTTL, and the cache
// never holds more than maxStores entries. A dropped store is rebuilt from the
// client's persisted record on next use.
type SessionRegistry struct {
	users        ports.UserDirectory
	storage      ports.SessionStorageFactory
	restoreDelay time.Duration
	log          zerolog.Logger

	idleTTL   time.Duration
	maxStores int
	now       func() time.Time

	mu        sync.Mutex
	stores    map[string]*registryEntry
	lastSweep time.Time
}

func NewSessionRegistry(users ports.UserDirectory, storage ports.SessionStorageFactory, restoreDelay time.Duration, log zerolog.Logger) *SessionRegistry {
	return &SessionRegistry{
		users:        users,
		storage:      storage,
		restoreDelay: restoreDelay,
		log:          log,
		idleTTL:      DefaultSessionIdleTTL,
		maxStores:    DefaultSessionMaxStores,
		now:          time.Now,
		stores:       make(map[string]*registryEntry),
	}
}

// WithLimits overrides the idle TTL and the cache capacity. Non-positive
// values keep the current setting.
func (r *SessionRegistry) WithLimits(idleTTL time.Duration, maxStores int) *SessionRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idleTTL > 0 {
		r.idleTTL = idleTTL
	}
	if maxStores > 0 {
		r.maxStores = maxStores
	}
	return r
}

// For returns the store of clientID, creating it on first use.
func (r *SessionRegistry) For(clientID string) *SessionStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.stores[clientID]; ok {
		e.lastUsed = now
		return e.store
	}

	if now.Sub(r.lastSweep) >= r.idleTTL || len(r.stores) >= r.maxStores {
		r.evictIdle(now)
	}
	if len(r.stores) >= r.maxStores {
		r.evictOldest()
	}

	s := NewSessionStore(
		r.users,
		r.storage.ForClient(clientID),
		r.restoreDelay,
		r.log.With().Str("client_id", clientID).Logger(),
	)
	r.stores[clientID] = &registryEntry{store: s, lastUsed: now}
	return s
}

// Forget drops the cached store of clientID. Persisted state is untouched.
func (r *SessionRegistry) Forget(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, clientID)
}

// Len reports how many stores are cached.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

func (r *SessionRegistry) evictIdle(now time.Time) {
	r.lastSweep = now
	evicted := 0
	for id, e := range r.stores {
		if now.Sub(e.lastUsed) > r.idleTTL {
			delete(r.stores, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.log.Debug().Int("evicted", evicted).Int("cached", len(r.stores)).Msg("idle session stores dropped")
	}
}

func (r *SessionRegistry) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range r.stores {
		if oldestID == "" || e.lastUsed.Before(oldest) {
			oldestID, oldest = id, e.lastUsed
		}
	}
	delete(r.stores, oldestID)
}
