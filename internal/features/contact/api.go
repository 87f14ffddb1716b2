package contact

import (
	"brevo-connector/internal/common/api"
	"brevo-connector/internal/config"
	"brevo-connector/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ContactApi struct {
	controller *ContactController
	config     *config.Config
}

func NewContactApi(controller *ContactController, config *config.Config) api.Route {
	return &ContactApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all contact routes
func (h *ContactApi) Setup(app *fiber.App) {
	contactGroup := app.Group("/api/contacts", middleware.AuthMiddleware(h.config.SkipAuth))

	contactGroup.Post("/", h.controller.CreateContact)
	contactGroup.Get("/", h.controller.ListContacts)
	contactGroup.Get("/:id", h.controller.GetContact)
	contactGroup.Put("/:id", h.controller.UpdateContact)
	contactGroup.Delete("/:id", h.controller.DeleteContact)
}
