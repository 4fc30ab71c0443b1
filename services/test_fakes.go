package services

import (
	"context"
	"sync"
	"time"

	"github.com/gatehouse-dev/gatehouse/core"
)

// FakeUserStore is a test-only fake implementing core.UserStore.
// It stores users in maps and exposes error fields for behavior injection.
type FakeUserStore struct {
	mu         sync.Mutex
	byID       map[string]*core.User
	byUsername map[string]*core.User
	createErr  error
	getErr     error
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{
		byID:       make(map[string]*core.User),
		byUsername: make(map[string]*core.User),
	}
}

func (f *FakeUserStore) CreateUser(ctx context.Context, u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	// Check-and-insert under one lock, mirroring the conditional insert
	// real backends do atomically.
	if _, exists := f.byUsername[u.Username]; exists {
		return core.ErrUserExists
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	f.byID[u.ID] = u
	f.byUsername[u.Username] = u
	return nil
}

func (f *FakeUserStore) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeUserStore) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeUserStore) UpdateCredentialHash(ctx context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return core.ErrUserNotFound
	}
	u.CredentialHash = hash
	return nil
}

// Len reports the number of stored users.
func (f *FakeUserStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// SetCreateError injects an error into subsequent CreateUser calls.
func (f *FakeUserStore) SetCreateError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createErr = err
}

// SetGetError injects an error into subsequent lookups.
func (f *FakeUserStore) SetGetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

type fakeSessionEntry struct {
	session  *core.Session
	deadline time.Time
}

// FakeSessionStore is a test-only fake implementing core.SessionStore.
// Entries honor their TTL so expiry behavior can be tested with short
// lifetimes.
type FakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]fakeSessionEntry
	putErr   error
	getErr   error
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{
		sessions: make(map[string]fakeSessionEntry),
	}
}

func (f *FakeSessionStore) PutSession(ctx context.Context, tokenHash string, s *core.Session, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putErr != nil {
		return f.putErr
	}

	if entry, ok := f.sessions[tokenHash]; ok && time.Now().Before(entry.deadline) {
		return core.ErrDuplicateSession
	}
	f.sessions[tokenHash] = fakeSessionEntry{
		session:  s,
		deadline: time.Now().Add(ttl),
	}
	return nil
}

func (f *FakeSessionStore) GetSession(ctx context.Context, tokenHash string) (*core.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}

	entry, ok := f.sessions[tokenHash]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	if time.Now().After(entry.deadline) {
		delete(f.sessions, tokenHash)
		return nil, core.ErrSessionNotFound
	}
	return entry.session, nil
}

// Len reports the number of stored sessions, expired entries included.
func (f *FakeSessionStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

// SetPutError injects an error into subsequent PutSession calls.
func (f *FakeSessionStore) SetPutError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putErr = err
}

// SetGetError injects an error into subsequent GetSession calls.
func (f *FakeSessionStore) SetGetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}
