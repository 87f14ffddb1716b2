package sync

import (
	"brevo-connector/internal/common/api"
	"brevo-connector/internal/config"
	"brevo-connector/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	controller *SyncController
	config     *config.Config
}

func NewSyncApi(controller *SyncController, config *config.Config) api.Route {
	return &SyncApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all sync routes
func (h *SyncApi) Setup(app *fiber.App) {
	syncGroup := app.Group("/api/sync", middleware.AuthMiddleware(h.config.SkipAuth))

	syncGroup.Post("/contacts", h.controller.SyncContacts)
	syncGroup.Post("/contacts/:id", h.controller.SyncContact)
	syncGroup.Post("/pending", h.controller.SyncPending)
	syncGroup.Post("/lists", h.controller.SyncLists)
	syncGroup.Post("/all", h.controller.SyncAll)
	syncGroup.Get("/status", h.controller.Status)
}
