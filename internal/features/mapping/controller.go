package mapping

import (
	"github.com/gofiber/fiber/v2"
)

type MappingController struct {
	Service MappingService
}

func NewMappingController(service MappingService) *MappingController {
	return &MappingController{
		Service: service,
	}
}

// CreateMapping godoc
func (ctrl *MappingController) CreateMapping(c *fiber.Ctx) error {
	var mapping FieldMapping
	if err := c.BodyParser(&mapping); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	mapping.Active = true

	if err := ctrl.Service.CreateMapping(c.Context(), &mapping); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Field mapping created successfully",
		"data":    mapping,
	})
}

// ListMappings godoc
func (ctrl *MappingController) ListMappings(c *fiber.Ctx) error {
	var (
		mappings []FieldMapping
		err      error
	)
	if c.QueryBool("active", false) {
		mappings, err = ctrl.Service.ListActive(c.Context())
	} else {
		mappings, err = ctrl.Service.ListMappings(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": mappings,
	})
}

// GetMapping godoc
func (ctrl *MappingController) GetMapping(c *fiber.Ctx) error {
	id := c.Params("id")

	mapping, err := ctrl.Service.GetMapping(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(mapping)
}

// UpdateMapping godoc
func (ctrl *MappingController) UpdateMapping(c *fiber.Ctx) error {
	id := c.Params("id")

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.UpdateMapping(c.Context(), id, updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Field mapping updated successfully",
	})
}

// DeactivateMapping godoc
func (ctrl *MappingController) DeactivateMapping(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := ctrl.Service.DeactivateMapping(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Field mapping deactivated",
	})
}

// SeedPredefined godoc
func (ctrl *MappingController) SeedPredefined(c *fiber.Ctx) error {
	created, err := ctrl.Service.SeedPredefined(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Predefined mappings created",
		"created": created,
	})
}

// DiscoverAttributes godoc
func (ctrl *MappingController) DiscoverAttributes(c *fiber.Ctx) error {
	created, err := ctrl.Service.DiscoverAttributes(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Attribute discovery completed",
		"created": created,
	})
}

// ExportMappings godoc
func (ctrl *MappingController) ExportMappings(c *fiber.Ctx) error {
	data, err := ctrl.Service.ExportXLSX(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="field_mappings.xlsx"`)
	return c.Send(data)
}

// ImportMappings godoc
func (ctrl *MappingController) ImportMappings(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not open uploaded file",
		})
	}
	defer file.Close()

	summary, err := ctrl.Service.ImportXLSX(c.Context(), file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Mappings imported",
		"data":    summary,
	})
}
