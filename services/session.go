package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatehouse-dev/gatehouse/core"
	"github.com/gatehouse-dev/gatehouse/pkg/crypto"
)

// SessionManager mints and resolves opaque session tokens. It keeps no
// session state of its own; the backing store owns expiry.
type SessionManager struct {
	config core.SessionConfig
	store  core.SessionStore
}

func NewSessionManager(config core.SessionConfig, store core.SessionStore) *SessionManager {
	return &SessionManager{config: config, store: store}
}

// IssueResult carries a freshly minted session and its raw bearer token.
type IssueResult struct {
	Session *core.Session
	Token   string
}

// Issue creates a session for userID with the configured lifetime.
// The raw token is returned exactly once; storage only ever sees its hash.
func (sm *SessionManager) Issue(ctx context.Context, userID string) (*IssueResult, error) {
	// Generate cryptographic material
	pair, err := crypto.GenerateHashedToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	session := &core.Session{
		UserID:    userID,
		TokenHash: pair.Hash,
		IssuedAt:  now,
		ExpiresAt: now.Add(sm.config.TTL),
	}

	if err := sm.store.PutSession(ctx, pair.Hash, session, sm.config.TTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &IssueResult{Session: session, Token: pair.Token}, nil
}

// Resolve maps a presented token back to its session. The token's lifetime
// is never extended: a session answers any number of resolves until the
// store expires it, then ErrInvalidToken.
func (sm *SessionManager) Resolve(ctx context.Context, token string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrInvalidToken
	}

	tokenHash := crypto.HashToken(token)

	session, err := sm.store.GetSession(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrSessionNotFound) {
			// Never-issued and already-expired tokens are indistinguishable
			return nil, core.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	// Backstop for stores that expire lazily
	if time.Now().After(session.ExpiresAt) {
		return nil, core.ErrSessionExpired
	}

	return session, nil
}
