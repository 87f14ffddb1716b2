package lead

import (
	"brevo-connector/internal/common/api"
	"brevo-connector/internal/config"
	"brevo-connector/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type LeadApi struct {
	controller *LeadController
	config     *config.Config
}

func NewLeadApi(controller *LeadController, config *config.Config) api.Route {
	return &LeadApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all lead routes
func (h *LeadApi) Setup(app *fiber.App) {
	leadGroup := app.Group("/api/leads", middleware.AuthMiddleware(h.config.SkipAuth))

	leadGroup.Get("/", h.controller.ListLeads)
	leadGroup.Get("/:id", h.controller.GetLead)
}
