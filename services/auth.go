package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gatehouse-dev/gatehouse/core"
	"github.com/gatehouse-dev/gatehouse/pkg/crypto"
)

// AuthService orchestrates registration and login on top of the user store
// and the session manager.
type AuthService struct {
	users            core.UserStore
	sessions         *SessionManager
	passwordHasher   crypto.PasswordHandler
	registrationOpen bool
}

// Ensure AuthService implements AuthHandler
var _ core.AuthHandler = (*AuthService)(nil)

func NewAuthService(users core.UserStore, sessions *SessionManager, passwordHasher crypto.PasswordHandler, registrationOpen bool) *AuthService {
	return &AuthService{
		users:            users,
		sessions:         sessions,
		passwordHasher:   passwordHasher,
		registrationOpen: registrationOpen,
	}
}

// Register creates a new user and signs them in.
func (s *AuthService) Register(ctx context.Context, creds core.Credentials) (*core.AuthResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	// Step 1: Registration gate
	if !s.registrationOpen {
		return nil, core.ErrRegistrationDisabled
	}

	// Step 2: Fast-path duplicate check. The authoritative check is the
	// conditional insert below; this one just avoids hashing for the
	// common conflict case.
	existing, err := s.users.GetUserByUsername(ctx, creds.Username)
	if err != nil && !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, core.ErrUserExists
	}

	// Step 3: Hash the password
	hashedPassword, err := s.passwordHasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 4: Create the user. Two concurrent registrations for the same
	// username both reach this point; the store lets exactly one through.
	user := &core.User{
		ID:             uuid.NewString(),
		Username:       creds.Username,
		CredentialHash: hashedPassword,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, core.ErrUserExists) {
			return nil, core.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Step 5: Sign the new user in
	result, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &core.AuthResult{
		User:    user,
		Session: result.Session,
		Token:   result.Token,
	}, nil
}

// Login authenticates a user by username and password.
//
// Unknown username and wrong password take the same exit: bare
// ErrLoginFailed, no wrapping, so callers cannot tell the cases apart.
func (s *AuthService) Login(ctx context.Context, creds core.Credentials) (*core.AuthResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	// Step 1: Find the user
	user, err := s.users.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrLoginFailed
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Step 2: Verify the password
	valid, err := s.passwordHasher.Verify(creds.Password, user.CredentialHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrLoginFailed
	}

	// Step 3: Issue a fresh session; prior sessions are untouched
	result, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &core.AuthResult{
		User:    user,
		Session: result.Session,
		Token:   result.Token,
	}, nil
}

// Resolve maps a bearer token to its session.
func (s *AuthService) Resolve(ctx context.Context, token string) (*core.Session, error) {
	return s.sessions.Resolve(ctx, token)
}
