package core

import "errors"

// Authentication errors
var (
	ErrUserExists   = errors.New("user already exists") // 409 Conflict
	ErrUserNotFound = errors.New("user not found")
	// ErrLoginFailed deliberately covers both unknown-username and
	// wrong-password so the response never reveals which one happened.
	// Register does report username conflicts (ErrUserExists): usernames
	// are treated as non-secret here.
	ErrLoginFailed          = errors.New("login failed")             // 401 Unauthorized
	ErrRegistrationDisabled = errors.New("registration is disabled") // 403 Forbidden
)

// Session errors
var (
	ErrMissingAuthHeader = errors.New("missing authorization header") // 401
	ErrInvalidToken      = errors.New("invalid session token")        // 401
	ErrSessionNotFound   = errors.New("session not found")            // 401
	ErrSessionExpired    = errors.New("session expired")              // 401
	ErrDuplicateSession  = errors.New("session token already in use")
)

// Validation errors (client input)
var (
	ErrUsernameRequired = errors.New("username is required") // 400
	ErrUsernameTooShort = errors.New("username is too short") // 400
	ErrUsernameTooLong  = errors.New("username is too long")  // 400
	ErrPasswordRequired = errors.New("password is required")  // 400
	ErrPasswordTooShort = errors.New("password is too short") // 400
	ErrPasswordTooLong  = errors.New("password is too long")  // 400
)

// Config errors (server-side configuration)
var (
	ErrUserStoreRequired    = errors.New("user store is required")    // 500
	ErrSessionStoreRequired = errors.New("session store is required") // 500
	ErrHTTPAdapterRequired  = errors.New("http adapter is required")  // 500
	ErrInvalidSessionTTL    = errors.New("session ttl must be positive")
)
