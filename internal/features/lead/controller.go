package lead

import (
	"github.com/gofiber/fiber/v2"
)

type LeadController struct {
	Service LeadService
}

func NewLeadController(service LeadService) *LeadController {
	return &LeadController{
		Service: service,
	}
}

// ListLeads godoc
func (ctrl *LeadController) ListLeads(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 50))
	offset := int64(c.QueryInt("offset", 0))

	leads, err := ctrl.Service.ListLeads(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": leads,
	})
}

// GetLead godoc
func (ctrl *LeadController) GetLead(c *fiber.Ctx) error {
	id := c.Params("id")

	lead, err := ctrl.Service.GetLead(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(lead)
}
