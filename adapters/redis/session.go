package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gatehouse-dev/gatehouse/core"
)

const keyPrefix = "session:"

func sessionKey(tokenHash string) string {
	return keyPrefix + tokenHash
}

// PutSession writes the session under its token hash with the given TTL.
// SET NX makes the write conditional: a live entry under the same hash is
// never overwritten.
func (a *Adapter) PutSession(ctx context.Context, tokenHash string, s *core.Session, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ok, err := a.client.SetNX(ctx, sessionKey(tokenHash), payload, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return core.ErrDuplicateSession
	}
	return nil
}

// GetSession looks the session up without touching its TTL. Expired keys
// are gone as far as Redis is concerned, so they come back as not found,
// same as tokens that never existed.
func (a *Adapter) GetSession(ctx context.Context, tokenHash string) (*core.Session, error) {
	payload, err := a.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, core.ErrSessionNotFound
		}
		return nil, err
	}

	session := &core.Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	session.TokenHash = tokenHash
	return session, nil
}
