package settings

import (
	"brevo-connector/internal/common/api"
	"brevo-connector/internal/config"
	"brevo-connector/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SettingsApi struct {
	controller *SettingsController
	config     *config.Config
}

func NewSettingsApi(controller *SettingsController, config *config.Config) api.Route {
	return &SettingsApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all settings routes
func (h *SettingsApi) Setup(app *fiber.App) {
	settingsGroup := app.Group("/api/settings", middleware.AuthMiddleware(h.config.SkipAuth))

	settingsGroup.Get("/", h.controller.GetSettings)
	settingsGroup.Put("/", h.controller.UpdateSettings)
	settingsGroup.Post("/test-connection", h.controller.TestConnection)
}
