package core

import "time"

// Username and password length bounds, enforced before any store call.
const (
	MinCredentialLen = 3
	MaxCredentialLen = 50
)

// User represents a registered account.
//
// This is the "identity" - who someone is. The credential hash lives on the
// row and is never exposed in JSON.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	CredentialHash string    `json:"-"` // Never expose in JSON
	CreatedAt      time.Time `json:"createdAt"`
}

// Session represents the proof of one successful authentication.
//
// The raw token is handed to the client exactly once at issuance; only its
// hash is kept, as the key under which the session is stored.
type Session struct {
	UserID    string    `json:"userId"`
	TokenHash string    `json:"-"` // Never expose in JSON (security!)
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Credentials is the input to both register and login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the length bounds on both fields.
func (c Credentials) Validate() error {
	switch {
	case c.Username == "":
		return ErrUsernameRequired
	case len(c.Username) < MinCredentialLen:
		return ErrUsernameTooShort
	case len(c.Username) > MaxCredentialLen:
		return ErrUsernameTooLong
	case c.Password == "":
		return ErrPasswordRequired
	case len(c.Password) < MinCredentialLen:
		return ErrPasswordTooShort
	case len(c.Password) > MaxCredentialLen:
		return ErrPasswordTooLong
	}
	return nil
}

// AuthResult is returned by successful register and login calls.
// Token is the raw bearer value; it cannot be recovered later.
type AuthResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
	Token   string   `json:"token"`
}

// SessionConfig controls session lifetime.
type SessionConfig struct {
	TTL time.Duration
}

// DefaultSessionConfig returns the 24-hour session lifetime.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{TTL: 24 * time.Hour}
}
