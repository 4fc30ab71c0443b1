package gatehouse_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatehouse-dev/gatehouse"
	"github.com/gatehouse-dev/gatehouse/adapters/memory"
)

// nopHTTPAdapter satisfies the HTTP port without a real server; the facade
// tests drive the service layer directly.
type nopHTTPAdapter struct {
	registered bool
	basePath   string
	err        error
}

func (a *nopHTTPAdapter) RegisterRoutes(handler gatehouse.AuthHandler, basePath string) error {
	if a.err != nil {
		return a.err
	}
	a.registered = true
	a.basePath = basePath
	return nil
}

// quickHasher keeps the expiry-focused tests from paying argon2 cost.
type quickHasher struct{}

func (quickHasher) Hash(password string) (string, error) { return "q:" + password, nil }
func (quickHasher) Verify(password, hash string) (bool, error) {
	return hash == "q:"+password, nil
}

func newGatehouse(t *testing.T, mutate func(*gatehouse.Config)) *gatehouse.Gatehouse {
	t.Helper()

	cfg := gatehouse.Config{
		Users:          memory.NewUserStore(),
		Sessions:       memory.NewSessionStore(),
		HTTP:           &nopHTTPAdapter{},
		PasswordHasher: quickHasher{},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := gatehouse.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestNew_Validation(t *testing.T) {
	valid := func() gatehouse.Config {
		return gatehouse.Config{
			Users:    memory.NewUserStore(),
			Sessions: memory.NewSessionStore(),
			HTTP:     &nopHTTPAdapter{},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*gatehouse.Config)
		wantErr error
	}{
		{name: "valid config", mutate: nil, wantErr: nil},
		{
			name:    "missing user store",
			mutate:  func(c *gatehouse.Config) { c.Users = nil },
			wantErr: gatehouse.ErrUserStoreRequired,
		},
		{
			name:    "missing session store",
			mutate:  func(c *gatehouse.Config) { c.Sessions = nil },
			wantErr: gatehouse.ErrSessionStoreRequired,
		},
		{
			name:    "missing http adapter",
			mutate:  func(c *gatehouse.Config) { c.HTTP = nil },
			wantErr: gatehouse.ErrHTTPAdapterRequired,
		},
		{
			name:    "zero ttl",
			mutate:  func(c *gatehouse.Config) { c.SessionConfig = &gatehouse.SessionConfig{} },
			wantErr: gatehouse.ErrInvalidSessionTTL,
		},
		{
			name:    "negative ttl",
			mutate:  func(c *gatehouse.Config) { c.SessionConfig = &gatehouse.SessionConfig{TTL: -time.Hour} },
			wantErr: gatehouse.ErrInvalidSessionTTL,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			cfg := valid()
			if test.mutate != nil {
				test.mutate(&cfg)
			}

			// Act
			g, err := gatehouse.New(cfg)

			// Assert
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if g.Auth == nil || g.Sessions == nil {
				t.Error("New() returned a partially wired instance")
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	// Arrange
	http := &nopHTTPAdapter{}

	// Act
	g, err := gatehouse.New(gatehouse.Config{
		Users:    memory.NewUserStore(),
		Sessions: memory.NewSessionStore(),
		HTTP:     http,
	})

	// Assert
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !http.registered {
		t.Error("New() must register routes on the HTTP adapter")
	}
	if http.basePath != "/api/auth" {
		t.Errorf("base path = %q, want %q", http.basePath, "/api/auth")
	}
	if g.BasePath != "/api/auth" {
		t.Errorf("BasePath = %q, want %q", g.BasePath, "/api/auth")
	}
}

func TestNew_RouteRegistrationFailure(t *testing.T) {
	// Arrange
	boom := errors.New("route conflict")

	// Act
	_, err := gatehouse.New(gatehouse.Config{
		Users:    memory.NewUserStore(),
		Sessions: memory.NewSessionStore(),
		HTTP:     &nopHTTPAdapter{err: boom},
	})

	// Assert
	if !errors.Is(err, boom) {
		t.Fatalf("New() error = %v, want %v", err, boom)
	}
}

func TestNew_DefaultHasherRoundTrip(t *testing.T) {
	// Arrange: no PasswordHasher in the config selects argon2id
	g := newGatehouse(t, func(c *gatehouse.Config) { c.PasswordHasher = nil })
	ctx := context.Background()

	// Act
	registered, err := g.Auth.Register(ctx, gatehouse.Credentials{Username: "alice", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	result, err := g.Auth.Login(ctx, gatehouse.Credentials{Username: "alice", Password: "hunter22"})

	// Assert
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != registered.User.ID {
		t.Error("login resolved to a different user")
	}
}

func TestRegisterAndResolve(t *testing.T) {
	// Arrange
	g := newGatehouse(t, nil)
	ctx := context.Background()

	// Act
	result, err := g.Auth.Register(ctx, gatehouse.Credentials{Username: "alice", Password: "hunter22"})

	// Assert
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	session, err := g.Auth.Resolve(ctx, result.Token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if session.UserID != result.User.ID {
		t.Errorf("resolved userID = %q, want %q", session.UserID, result.User.ID)
	}
	if got := session.ExpiresAt.Sub(session.IssuedAt); got != 24*time.Hour {
		t.Errorf("session lifetime = %v, want %v", got, 24*time.Hour)
	}
}

func TestRegister_Conflicts(t *testing.T) {
	// Arrange
	g := newGatehouse(t, nil)
	ctx := context.Background()
	if _, err := g.Auth.Register(ctx, gatehouse.Credentials{Username: "alice", Password: "hunter22"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Act & Assert: same username is taken for good
	_, err := g.Auth.Register(ctx, gatehouse.Credentials{Username: "alice", Password: "other"})
	if !errors.Is(err, gatehouse.ErrUserExists) {
		t.Fatalf("Register() error = %v, want %v", err, gatehouse.ErrUserExists)
	}
}

func TestRegister_Disabled(t *testing.T) {
	// Arrange
	g := newGatehouse(t, func(c *gatehouse.Config) { c.DisableRegistration = true })

	// Act
	_, err := g.Auth.Register(context.Background(), gatehouse.Credentials{Username: "alice", Password: "hunter22"})

	// Assert
	if !errors.Is(err, gatehouse.ErrRegistrationDisabled) {
		t.Fatalf("Register() error = %v, want %v", err, gatehouse.ErrRegistrationDisabled)
	}
	// Login keeps working for nobody; the store is empty either way
	_, err = g.Auth.Login(context.Background(), gatehouse.Credentials{Username: "alice", Password: "hunter22"})
	if !errors.Is(err, gatehouse.ErrLoginFailed) {
		t.Fatalf("Login() error = %v, want %v", err, gatehouse.ErrLoginFailed)
	}
}

func TestLogin_FailuresAreUniform(t *testing.T) {
	// Arrange
	g := newGatehouse(t, nil)
	ctx := context.Background()
	if _, err := g.Auth.Register(ctx, gatehouse.Credentials{Username: "alice", Password: "hunter22"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Act
	_, unknownErr := g.Auth.Login(ctx, gatehouse.Credentials{Username: "mallory", Password: "hunter22"})
	_, wrongErr := g.Auth.Login(ctx, gatehouse.Credentials{Username: "alice", Password: "wrong-pass"})

	// Assert
	if !errors.Is(unknownErr, gatehouse.ErrLoginFailed) {
		t.Fatalf("unknown user error = %v, want %v", unknownErr, gatehouse.ErrLoginFailed)
	}
	if unknownErr != wrongErr {
		t.Error("unknown-user and wrong-password must be the identical error value")
	}
}

func TestSessionExpiry(t *testing.T) {
	// Arrange
	g := newGatehouse(t, func(c *gatehouse.Config) {
		c.SessionConfig = &gatehouse.SessionConfig{TTL: 50 * time.Millisecond}
	})
	ctx := context.Background()
	result, err := g.Auth.Register(ctx, gatehouse.Credentials{Username: "alice", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Act: live inside the window
	if _, err := g.Auth.Resolve(ctx, result.Token); err != nil {
		t.Fatalf("Resolve() before expiry error = %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	// Assert: dead after, same as a token that never existed
	_, expiredErr := g.Auth.Resolve(ctx, result.Token)
	if !errors.Is(expiredErr, gatehouse.ErrInvalidToken) {
		t.Fatalf("Resolve() after expiry error = %v, want %v", expiredErr, gatehouse.ErrInvalidToken)
	}
	_, ghostErr := g.Auth.Resolve(ctx, "never-issued-token")
	if !errors.Is(ghostErr, gatehouse.ErrInvalidToken) {
		t.Fatalf("Resolve() of unknown token error = %v, want %v", ghostErr, gatehouse.ErrInvalidToken)
	}
	if expiredErr.Error() != ghostErr.Error() {
		t.Error("expired and never-issued tokens must be indistinguishable")
	}

	// Re-login works; credentials outlive sessions
	if _, err := g.Auth.Login(ctx, gatehouse.Credentials{Username: "alice", Password: "hunter22"}); err != nil {
		t.Errorf("Login() after expiry error = %v", err)
	}
}
