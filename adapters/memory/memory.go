// Package memory provides in-process implementations of the storage ports.
// They back the dev mode of the server binary and the integration tests;
// nothing persists across restarts.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gatehouse-dev/gatehouse/core"
)

// UserStore is a map-backed core.UserStore. The username check and the
// insert happen under one lock, which is the in-process equivalent of the
// conditional insert the Postgres adapter does in a single statement.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[string]*core.User
	byUsername map[string]*core.User
}

var _ core.UserStore = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{
		byID:       make(map[string]*core.User),
		byUsername: make(map[string]*core.User),
	}
}

func (s *UserStore) CreateUser(ctx context.Context, u *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[u.Username]; exists {
		return core.ErrUserExists
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	stored := *u
	s.byID[u.ID] = &stored
	s.byUsername[u.Username] = &stored
	return nil
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byUsername[username]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *UserStore) UpdateCredentialHash(ctx context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return core.ErrUserNotFound
	}
	u.CredentialHash = hash
	return nil
}

type sessionEntry struct {
	session  core.Session
	deadline time.Time
}

// SessionStore is a map-backed core.SessionStore with per-entry TTLs.
// Expired entries are treated as absent on read and reaped lazily.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]sessionEntry
}

var _ core.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[string]sessionEntry),
	}
}

func (s *SessionStore) PutSession(ctx context.Context, tokenHash string, session *core.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if entry, ok := s.entries[tokenHash]; ok && now.Before(entry.deadline) {
		return core.ErrDuplicateSession
	}
	s.entries[tokenHash] = sessionEntry{
		session:  *session,
		deadline: now.Add(ttl),
	}
	return nil
}

func (s *SessionStore) GetSession(ctx context.Context, tokenHash string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[tokenHash]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	if time.Now().After(entry.deadline) {
		delete(s.entries, tokenHash)
		return nil, core.ErrSessionNotFound
	}
	out := entry.session
	return &out, nil
}

// Len reports the number of live entries, reaping expired ones first.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for hash, entry := range s.entries {
		if now.After(entry.deadline) {
			delete(s.entries, hash)
		}
	}
	return len(s.entries)
}
