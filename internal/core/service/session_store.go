package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
	"github.com/tokobarang/inventory-dashboard/internal/pkg/metrics"
)

// SessionKey is the storage key holding the serialized session user.
const SessionKey = "user"

// DefaultRestoreDelay is the pause before a persisted session is read back.
const DefaultRestoreDelay = 100 * time.Millisecond

// SessionStore holds the authentication state of one client: the current user
// or none. Mutations are serialized per store.
type SessionStore struct {
	users        ports.UserDirectory
	storage      ports.SessionStorage
	restoreDelay time.Duration
	log          zerolog.Logger

	mu          sync.Mutex
	current     *domain.User
	loading     bool
	initialized bool
}

// NewSessionStore returns a store in the loading state. A negative restoreDelay
// falls back to DefaultRestoreDelay; zero restores immediately.
func NewSessionStore(users ports.UserDirectory, storage ports.SessionStorage, restoreDelay time.Duration, log zerolog.Logger) *SessionStore {
	if restoreDelay < 0 {
		restoreDelay = DefaultRestoreDelay
	}
	return &SessionStore{
		users:        users,
		storage:      storage,
		restoreDelay: restoreDelay,
		log:          log,
		loading:      true,
	}
}

// Initialize restores the persisted session after the restore delay. Only the
// first successful call has any effect. A malformed record is removed and the
// store ends unauthenticated. The only error returned is ctx's.
func (s *SessionStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if s.restoreDelay > 0 {
		timer := time.NewTimer(s.restoreDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	defer func() { s.loading = false }()

	raw, ok, err := s.storage.Get(ctx, SessionKey)
	if err != nil {
		// Left uninitialized so the next call retries the read.
		s.log.Error().Err(err).Msg("read persisted session")
		return nil
	}
	s.initialized = true

	if !ok {
		metrics.SessionsRestoredTotal.WithLabelValues("empty").Inc()
		return nil
	}

	user, err := decodeSession(raw)
	if err != nil {
		metrics.SessionsRestoredTotal.WithLabelValues("corrupt").Inc()
		s.log.Warn().Err(err).Msg("discarding persisted session")
		if delErr := s.storage.Delete(ctx, SessionKey); delErr != nil {
			s.log.Error().Err(delErr).Msg("remove persisted session")
		}
		return nil
	}

	metrics.SessionsRestoredTotal.WithLabelValues("restored").Inc()
	s.current = user
	return nil
}

// Login fetches the remote user list and looks for an exact, case-sensitive
// username and plaintext password match. On a match the user (without its
// password) becomes the session user and is persisted. Wrong credentials and an
// unreachable server both yield false and leave the session untouched.
func (s *SessionStore) Login(ctx context.Context, username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("username", username).Msg("login error")
		return false
	}

	var found *domain.RemoteUser
	for i := range users {
		if users[i].Username == username && users[i].Password == password {
			found = &users[i]
			break
		}
	}
	if found == nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		s.log.Info().Str("username", username).Msg("login rejected")
		return false
	}

	user := found.SessionUser()
	s.current = user
	s.loading = false
	s.initialized = true

	if payload, err := json.Marshal(user); err != nil {
		s.log.Error().Err(err).Msg("encode session")
	} else if err := s.storage.Set(ctx, SessionKey, string(payload)); err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("persist session")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("logged in")
	return true
}

// Logout clears the session user and the persisted record. It cannot fail;
// storage errors are logged.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.storage.Delete(ctx, SessionKey); err != nil {
		s.log.Error().Err(err).Msg("remove persisted session")
	}
}

// CurrentUser returns a copy of the session user, or nil.
func (s *SessionStore) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// IsLoading reports whether the persisted session has not been read yet.
func (s *SessionStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsAdmin reports whether the session user is an administrator.
func (s *SessionStore) IsAdmin() bool {
	return s.CurrentUser().IsAdmin()
}

func decodeSession(raw string) (*domain.User, error) {
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, &domain.ParseError{Value: raw, Err: err}
	}
	if !domain.ValidRole(u.Role) {
		return nil, &domain.ParseError{Value: raw, Err: fmt.Errorf("unknown role %q", u.Role)}
	}
	return &u, nil
}
