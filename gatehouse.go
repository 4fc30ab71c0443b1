// Package gatehouse is a credential authentication and session issuance
// library. Wire it with a user store, a session store, and an HTTP adapter;
// it exposes register and login endpoints that trade a username and
// password for an opaque bearer token with a fixed lifetime.
package gatehouse

import (
	"github.com/gatehouse-dev/gatehouse/core"
	"github.com/gatehouse-dev/gatehouse/pkg/crypto"
	"github.com/gatehouse-dev/gatehouse/services"
)

// interfaces
type (
	UserStore    = core.UserStore
	SessionStore = core.SessionStore

	HTTPAdapter = core.HTTPAdapter
	AuthHandler = core.AuthHandler

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	User          = core.User
	Session       = core.Session
	Credentials   = core.Credentials
	AuthResult    = core.AuthResult
	SessionConfig = core.SessionConfig
)

const (
	defaultBasePath = "/api/auth"
)

// Constructors & helpers (convenience re-exports)
var (
	NewArgon2            = crypto.NewArgon2
	DefaultSessionConfig = core.DefaultSessionConfig
)

var (
	ErrUserExists           = core.ErrUserExists
	ErrUserNotFound         = core.ErrUserNotFound
	ErrLoginFailed          = core.ErrLoginFailed
	ErrRegistrationDisabled = core.ErrRegistrationDisabled
)

var (
	ErrMissingAuthHeader = core.ErrMissingAuthHeader
	ErrInvalidToken      = core.ErrInvalidToken
	ErrSessionNotFound   = core.ErrSessionNotFound
	ErrSessionExpired    = core.ErrSessionExpired
)

var (
	ErrUsernameRequired = core.ErrUsernameRequired
	ErrUsernameTooShort = core.ErrUsernameTooShort
	ErrUsernameTooLong  = core.ErrUsernameTooLong
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrPasswordTooShort = core.ErrPasswordTooShort
	ErrPasswordTooLong  = core.ErrPasswordTooLong
)

var (
	ErrUserStoreRequired    = core.ErrUserStoreRequired
	ErrSessionStoreRequired = core.ErrSessionStoreRequired
	ErrHTTPAdapterRequired  = core.ErrHTTPAdapterRequired
	ErrInvalidSessionTTL    = core.ErrInvalidSessionTTL
)

// Config wires the stores and transport into a Gatehouse instance.
type Config struct {
	// Users is the durable user store. Required.
	Users UserStore
	// Sessions is the expiring session store. Required.
	Sessions SessionStore
	// HTTP receives the route table. Required.
	HTTP HTTPAdapter

	// SessionConfig defaults to a 24 hour TTL.
	SessionConfig *SessionConfig
	// PasswordHasher defaults to argon2id with OWASP parameters.
	PasswordHasher PasswordHandler
	// BasePath defaults to "/api/auth".
	BasePath string
	// DisableRegistration makes the register endpoint refuse new users.
	DisableRegistration bool
}

// Gatehouse is a configured instance: the auth orchestrator, its session
// manager, and the route prefix it was mounted under.
type Gatehouse struct {
	Auth     *services.AuthService
	Sessions *services.SessionManager
	BasePath string
}

func New(config Config) (*Gatehouse, error) {
	if config.Users == nil {
		return nil, ErrUserStoreRequired
	}
	if config.Sessions == nil {
		return nil, ErrSessionStoreRequired
	}
	if config.HTTP == nil {
		return nil, ErrHTTPAdapterRequired
	}

	// Set Defaults

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		sessionConfig = DefaultSessionConfig()
	}
	if sessionConfig.TTL <= 0 {
		return nil, ErrInvalidSessionTTL
	}

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewArgon2()
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	sessionManager := services.NewSessionManager(*sessionConfig, config.Sessions)
	auth := services.NewAuthService(config.Users, sessionManager, passwordHasher, !config.DisableRegistration)

	g := &Gatehouse{
		Auth:     auth,
		Sessions: sessionManager,
		BasePath: basePath,
	}

	if err := config.HTTP.RegisterRoutes(auth, basePath); err != nil {
		return nil, err
	}

	return g, nil
}
