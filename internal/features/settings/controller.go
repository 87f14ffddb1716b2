package settings

import (
	"github.com/gofiber/fiber/v2"
)

type SettingsController struct {
	Service SettingsService
}

func NewSettingsController(service SettingsService) *SettingsController {
	return &SettingsController{
		Service: service,
	}
}

// GetSettings godoc
func (ctrl *SettingsController) GetSettings(c *fiber.Ctx) error {
	s, err := ctrl.Service.GetSettings(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(s)
}

// UpdateSettings godoc
func (ctrl *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	s, err := ctrl.Service.UpdateSettings(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Settings updated successfully",
		"data":    s,
	})
}

// TestConnection godoc
func (ctrl *SettingsController) TestConnection(c *fiber.Ctx) error {
	account, err := ctrl.Service.TestConnection(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Connection successful",
		"account": account,
	})
}
