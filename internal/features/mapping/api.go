package mapping

import (
	"brevo-connector/internal/common/api"
	"brevo-connector/internal/config"
	"brevo-connector/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MappingApi struct {
	controller *MappingController
	config     *config.Config
}

func NewMappingApi(controller *MappingController, config *config.Config) api.Route {
	return &MappingApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all field mapping routes
func (h *MappingApi) Setup(app *fiber.App) {
	mappingGroup := app.Group("/api/mappings", middleware.AuthMiddleware(h.config.SkipAuth))

	mappingGroup.Post("/", h.controller.CreateMapping)
	mappingGroup.Get("/", h.controller.ListMappings)
	mappingGroup.Get("/export", h.controller.ExportMappings)
	mappingGroup.Post("/import", h.controller.ImportMappings)
	mappingGroup.Post("/seed", h.controller.SeedPredefined)
	mappingGroup.Post("/discover", h.controller.DiscoverAttributes)
	mappingGroup.Get("/:id", h.controller.GetMapping)
	mappingGroup.Put("/:id", h.controller.UpdateMapping)
	mappingGroup.Delete("/:id", h.controller.DeactivateMapping)
}
