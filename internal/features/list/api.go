package list

import (
	"brevo-connector/internal/common/api"
	"brevo-connector/internal/config"
	"brevo-connector/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ListApi struct {
	controller *ListController
	config     *config.Config
}

func NewListApi(controller *ListController, config *config.Config) api.Route {
	return &ListApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all list routes
func (h *ListApi) Setup(app *fiber.App) {
	listGroup := app.Group("/api/lists", middleware.AuthMiddleware(h.config.SkipAuth))

	listGroup.Get("/", h.controller.ListLists)
	listGroup.Get("/:id", h.controller.GetList)
}
