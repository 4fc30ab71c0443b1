package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gatehouse-dev/gatehouse/core"
)

type Adapter struct {
	app *fiber.App
}

var _ core.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

func (a *Adapter) RegisterRoutes(handler core.AuthHandler, basePath string) error {
	api := a.app.Group(basePath)

	// Public routes
	api.Post("/register", handleRegister(handler))
	api.Post("/login", handleLogin(handler))

	// Protected routes
	api.Get("/session", handleGetSession(handler))

	return nil
}
