package handler

// webhookClient is the client block of the CRM event envelope.
type webhookClient struct {
	Name         string `json:"name"         validate:"required"`
	Email        string `json:"email"        validate:"required,email"`
	Phone        string `json:"phone"`
	BusinessName string `json:"businessName"`
}

// webhookProject is the project block of the CRM event envelope.
type webhookProject struct {
	ServiceType   string  `json:"serviceType"`
	Name          string  `json:"name"`
	ScheduledDate string  `json:"scheduledDate"`
	Package       string  `json:"package"`
	TotalAmount   float64 `json:"totalAmount"`
}

// webhookEnvelope is the raw CRM webhook payload. Unrecognised event types are
// acknowledged without processing, so eventType is not restricted to a set.
type webhookEnvelope struct {
	EventType string         `json:"eventType" validate:"required"`
	Client    webhookClient  `json:"client"    validate:"required"`
	Project   webhookProject `json:"project"`
}

// webhookResponse acknowledges a processed delivery.
type webhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
