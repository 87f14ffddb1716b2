package contact

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type ContactController struct {
	Service ContactService
}

func NewContactController(service ContactService) *ContactController {
	return &ContactController{
		Service: service,
	}
}

// CreateContact godoc
func (ctrl *ContactController) CreateContact(c *fiber.Ctx) error {
	var contact Contact
	if err := c.BodyParser(&contact); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.CreateContact(c.Context(), &contact); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Contact created successfully",
		"data":    contact,
	})
}

// ListContacts godoc
func (ctrl *ContactController) ListContacts(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 50))
	offset := int64(c.QueryInt("offset", 0))

	contacts, err := ctrl.Service.ListContacts(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": contacts,
	})
}

// GetContact godoc
func (ctrl *ContactController) GetContact(c *fiber.Ctx) error {
	id := c.Params("id")

	contact, err := ctrl.Service.GetContact(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(contact)
}

// UpdateContact godoc
func (ctrl *ContactController) UpdateContact(c *fiber.Ctx) error {
	id := c.Params("id")

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	contact, err := ctrl.Service.UpdateContact(c.Context(), id, updates)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Contact updated successfully",
		"data":    contact,
	})
}

// DeleteContact godoc
func (ctrl *ContactController) DeleteContact(c *fiber.Ctx) error {
	id := c.Params("id")
	confirmRemote := c.QueryBool("confirm_remote", false)

	if err := ctrl.Service.DeleteContact(c.Context(), id, confirmRemote); err != nil {
		if errors.Is(err, ErrRemoteLinkConfirm) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Contact deleted successfully",
	})
}
