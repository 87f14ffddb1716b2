package webhook

import (
	"encoding/json"

	"brevo-connector/internal/config"
	"brevo-connector/internal/features/settings"

	"github.com/gofiber/fiber/v2"
)

type WebhookController struct {
	Service  WebhookService
	Settings settings.SettingsRepository
	Config   *config.Config
}

func NewWebhookController(service WebhookService, settingsRepo settings.SettingsRepository, cfg *config.Config) *WebhookController {
	return &WebhookController{
		Service:  service,
		Settings: settingsRepo,
		Config:   cfg,
	}
}

// Receive godoc
func (ctrl *WebhookController) Receive(c *fiber.Ctx) error {
	cfg, err := ctrl.Settings.EnsureDefaults(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !cfg.WebhookEnabled {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Webhook processing is disabled",
		})
	}

	body := c.Body()
	if ctrl.Config.WebhookRequireSignature {
		signature := c.Get("X-Sib-Signature")
		if signature == "" {
			signature = c.Get("X-Brevo-Signature")
		}
		if !ctrl.Service.VerifySignature(body, signature) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid webhook signature",
			})
		}
	}

	var envelope struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if envelope.Event == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing event name",
		})
	}

	// Some Brevo event families put the payload at the top level
	// instead of under a data key.
	if len(envelope.Data) == 0 {
		envelope.Data = body
	}

	message, err := ctrl.Service.Process(c.Context(), envelope.Event, envelope.Data)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": message,
	})
}
