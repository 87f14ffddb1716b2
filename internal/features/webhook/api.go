package webhook

import (
	"brevo-connector/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type WebhookApi struct {
	controller *WebhookController
}

func NewWebhookApi(controller *WebhookController) api.Route {
	return &WebhookApi{
		controller: controller,
	}
}

// Setup registers the webhook routes. These stay public; inbound calls
// authenticate with the HMAC signature, not a bearer token.
func (h *WebhookApi) Setup(app *fiber.App) {
	webhookGroup := app.Group("/webhooks")

	webhookGroup.Post("/brevo", h.controller.Receive)
	webhookGroup.Post("/brevo/booking", h.controller.Receive)
}
