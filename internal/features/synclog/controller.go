package synclog

import (
	"brevo-connector/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type SyncLogController struct {
	Service SyncLogService
}

func NewSyncLogController(service SyncLogService) *SyncLogController {
	return &SyncLogController{
		Service: service,
	}
}

// ListLogs godoc
func (ctrl *SyncLogController) ListLogs(c *fiber.Ctx) error {
	filter := Filter{
		Operation: models.Operation(c.Query("operation")),
		Direction: models.Direction(c.Query("direction")),
		Status:    models.LogStatus(c.Query("status")),
		Limit:     int64(c.QueryInt("limit", 50)),
		Offset:    int64(c.QueryInt("offset", 0)),
	}

	logs, err := ctrl.Service.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": logs,
	})
}

// CleanupLogs godoc
func (ctrl *SyncLogController) CleanupLogs(c *fiber.Ctx) error {
	deleted, err := ctrl.Service.Cleanup(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Log cleanup completed",
		"deleted": deleted,
	})
}
