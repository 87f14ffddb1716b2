package synclog

import (
	"brevo-connector/internal/common/api"
	"brevo-connector/internal/config"
	"brevo-connector/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SyncLogApi struct {
	controller *SyncLogController
	config     *config.Config
}

func NewSyncLogApi(controller *SyncLogController, config *config.Config) api.Route {
	return &SyncLogApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all sync log routes
func (h *SyncLogApi) Setup(app *fiber.App) {
	logGroup := app.Group("/api/logs", middleware.AuthMiddleware(h.config.SkipAuth))

	logGroup.Get("/", h.controller.ListLogs)
	logGroup.Post("/cleanup", h.controller.CleanupLogs)
}
