package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edis-imaging/client-portal/internal/api/metrics"
	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
	"github.com/edis-imaging/client-portal/internal/pkg/signature"
)

// signatureHeader carries the CRM's hex HMAC-SHA256 of the raw request body.
const signatureHeader = "X-Honeybook-Signature"

// WebhookHandler ingests CRM booking events.
type WebhookHandler struct {
	provisioning ports.ProvisioningService
	secret       string
}

// NewWebhookHandler creates a WebhookHandler verifying signatures with secret.
func NewWebhookHandler(provisioning ports.ProvisioningService, secret string) *WebhookHandler {
	return &WebhookHandler{provisioning: provisioning, secret: secret}
}

// Receive handles POST /api/webhooks/honeybook.
//
// The signature is computed over the exact raw body, so the body is read
// before any JSON decoding. A failed verification produces 401 and no side
// effects of any kind.
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable payload")
	}

	if !signature.Verify(body, c.Request().Header.Get(signatureHeader), h.secret) {
		metrics.WebhookSignatureFailuresTotal.Inc()
		return domain.ErrInvalidSignature
	}

	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&env); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.provisioning.Process(c.Request().Context(), toBookingInput(env))
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(env.EventType, "error").Inc()
		return err
	}

	metrics.WebhookEventsTotal.WithLabelValues(env.EventType, resultLabel(env.EventType, result)).Inc()
	return c.JSON(http.StatusOK, webhookResponse{Success: true, Message: "Webhook processed"})
}

func toBookingInput(env webhookEnvelope) ports.BookingEventInput {
	return ports.BookingEventInput{
		EventType: env.EventType,
		Client: ports.BookingClientInput{
			Name:         env.Client.Name,
			Email:        env.Client.Email,
			Phone:        env.Client.Phone,
			BusinessName: env.Client.BusinessName,
		},
		Project: ports.BookingProjectInput{
			ServiceType:   env.Project.ServiceType,
			Name:          env.Project.Name,
			ScheduledDate: env.Project.ScheduledDate,
			Package:       env.Project.Package,
			TotalAmount:   env.Project.TotalAmount,
		},
	}
}

func resultLabel(eventType string, r *ports.ProvisionResult) string {
	switch {
	case r.AlreadyProvisioned:
		return "duplicate"
	case r.Ignored:
		return "ignored"
	case eventType == ports.EventProjectUpdated:
		return "merged"
	default:
		return "provisioned"
	}
}
