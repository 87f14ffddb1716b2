package list

import (
	"github.com/gofiber/fiber/v2"
)

type ListController struct {
	Service ListService
}

func NewListController(service ListService) *ListController {
	return &ListController{
		Service: service,
	}
}

// ListLists godoc
func (ctrl *ListController) ListLists(c *fiber.Ctx) error {
	lists, err := ctrl.Service.ListLists(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": lists,
	})
}

// GetList godoc
func (ctrl *ListController) GetList(c *fiber.Ctx) error {
	id := c.Params("id")

	list, err := ctrl.Service.GetList(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(list)
}
