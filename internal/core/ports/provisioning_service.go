package ports

import "context"

// Event classes recognised by the provisioning orchestrator. Booking events
// provision a new client; update events merge project metadata.
const (
	EventProjectBooked  = "project.booked"
	EventInvoicePaid    = "invoice.paid"
	EventContractSigned = "contract.signed"
	EventProjectUpdated = "project.updated"
)

// BookingClientInput is the client block of a CRM webhook envelope.
type BookingClientInput struct {
	Name         string
	Email        string
	Phone        string
	BusinessName string
}

// BookingProjectInput is the project block of a CRM webhook envelope.
type BookingProjectInput struct {
	ServiceType   string
	Name          string
	ScheduledDate string
	Package       string
	TotalAmount   float64
}

// BookingEventInput is the DTO the transport layer hands to the orchestrator
// after signature verification.
type BookingEventInput struct {
	EventType string
	Client    BookingClientInput
	Project   BookingProjectInput
}

// ProvisionResult describes the outcome of processing a webhook event.
type ProvisionResult struct {
	ClientID  string
	ProjectID string
	// AlreadyProvisioned is true when the email matched an existing account and
	// the event was acknowledged as an idempotent no-op.
	AlreadyProvisioned bool
	// Ignored is true for unrecognised event types and out-of-order updates.
	Ignored bool
}

// ProvisioningService consumes verified CRM booking events.
type ProvisioningService interface {
	Process(ctx context.Context, event BookingEventInput) (*ProvisionResult, error)
}
