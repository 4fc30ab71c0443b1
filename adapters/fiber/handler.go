package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/gatehouse-dev/gatehouse/core"
)

// authResponse is the wire shape of a successful register or login.
type authResponse struct {
	Verified bool   `json:"verified"`
	UserID   string `json:"userID"`
	UserName string `json:"userName"`
	Token    string `json:"token"`
}

func newAuthResponse(result *core.AuthResult) authResponse {
	return authResponse{
		Verified: true,
		UserID:   result.User.ID,
		UserName: result.User.Username,
		Token:    result.Token,
	}
}

// handleRegister returns the handler for the register endpoint
func handleRegister(handler core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var creds core.Credentials
		if err := c.Bind().Body(&creds); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		// Reject malformed input before it reaches the core
		if err := creds.Validate(); err != nil {
			return handleAuthError(c, err)
		}

		result, err := handler.Register(c.Context(), creds)
		if err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusCreated).JSON(newAuthResponse(result))
	}
}

// handleLogin returns the handler for the login endpoint
func handleLogin(handler core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		var creds core.Credentials
		if err := c.Bind().Body(&creds); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		if err := creds.Validate(); err != nil {
			return handleAuthError(c, err)
		}

		result, err := handler.Login(c.Context(), creds)
		if err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(newAuthResponse(result))
	}
}

// handleGetSession returns the handler for the session introspection endpoint
func handleGetSession(handler core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return handleAuthError(c, core.ErrMissingAuthHeader)
		}

		session, err := handler.Resolve(c.Context(), token)
		if err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(session)
	}
}

// extractToken extracts the authentication token from the request.
// Checks Authorization header (Bearer token) first, then falls back to cookie.
func extractToken(c fiber.Ctx) string {
	// Try Bearer token first
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	// Fall back to cookie
	return c.Cookies("auth_token")
}

// handleAuthError maps authentication errors to appropriate HTTP responses
func handleAuthError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// mapErrorToStatus maps gatehouse error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, core.ErrLoginFailed),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrSessionExpired),
		errors.Is(err, core.ErrMissingAuthHeader):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrRegistrationDisabled):
		return http.StatusForbidden

	case errors.Is(err, core.ErrUserExists):
		return http.StatusConflict

	case errors.Is(err, core.ErrUsernameRequired),
		errors.Is(err, core.ErrUsernameTooShort),
		errors.Is(err, core.ErrUsernameTooLong),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrPasswordTooLong):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
