package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS
// ============================================

// UserStore is the durable user table.
//
// CreateUser must be an atomic insert-if-absent on username: under
// concurrent calls with the same username exactly one succeeds and the
// rest return ErrUserExists. Lookups are exact, case-sensitive matches.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// UpdateCredentialHash is the only permitted mutation of a user row.
	UpdateCredentialHash(ctx context.Context, id, hash string) error
}

// SessionStore is an expiring key-value table keyed by token hash.
// Entries disappear on their own once the TTL elapses; nothing in the
// service layer tracks expiry beyond the backstop check on resolve.
type SessionStore interface {
	// PutSession stores the session under tokenHash for ttl. A live entry
	// under the same hash is ErrDuplicateSession.
	PutSession(ctx context.Context, tokenHash string, s *Session, ttl time.Duration) error
	// GetSession returns ErrSessionNotFound for absent or expired entries.
	// It must not extend the entry's lifetime.
	GetSession(ctx context.Context, tokenHash string) (*Session, error)
}

// ============================================
// AUTH HANDLER (for HTTP adapters)
// ============================================

// AuthHandler provides authentication operations for HTTP adapters
type AuthHandler interface {
	Register(ctx context.Context, creds Credentials) (*AuthResult, error)
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Resolve(ctx context.Context, token string) (*Session, error)
}

// ============================================
// HTTP PORT
// ============================================

type HTTPAdapter interface {
	RegisterRoutes(handler AuthHandler, basePath string) error
}
