package sync

import (
	"github.com/gofiber/fiber/v2"
)

type SyncController struct {
	Service SyncService
}

func NewSyncController(service SyncService) *SyncController {
	return &SyncController{
		Service: service,
	}
}

// SyncContacts godoc
func (ctrl *SyncController) SyncContacts(c *fiber.Ctx) error {
	result, err := ctrl.Service.SyncContacts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"data":  result,
		})
	}

	return c.JSON(fiber.Map{
		"message": result.Message,
		"data":    result,
	})
}

// SyncPending godoc
func (ctrl *SyncController) SyncPending(c *fiber.Ctx) error {
	result, err := ctrl.Service.SyncPending(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"data":  result,
		})
	}

	return c.JSON(fiber.Map{
		"message": result.Message,
		"data":    result,
	})
}

// SyncLists godoc
func (ctrl *SyncController) SyncLists(c *fiber.Ctx) error {
	result, err := ctrl.Service.SyncLists(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"data":  result,
		})
	}

	return c.JSON(fiber.Map{
		"message": result.Message,
		"data":    result,
	})
}

// SyncAll godoc
func (ctrl *SyncController) SyncAll(c *fiber.Ctx) error {
	result, err := ctrl.Service.SyncAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"data":  result,
		})
	}

	return c.JSON(fiber.Map{
		"message": result.Message,
		"data":    result,
	})
}

// SyncContact godoc
func (ctrl *SyncController) SyncContact(c *fiber.Ctx) error {
	id := c.Params("id")

	result, err := ctrl.Service.SyncContact(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"data":  result,
		})
	}

	return c.JSON(fiber.Map{
		"message": result.Message,
		"data":    result,
	})
}

// Status godoc
func (ctrl *SyncController) Status(c *fiber.Ctx) error {
	s, err := ctrl.Service.Status(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"sync_status":       s.SyncStatus,
		"last_error":        s.LastError,
		"last_contact_sync": s.LastContactSync,
		"last_list_sync":    s.LastListSync,
		"sync_interval":     s.SyncInterval,
	})
}
