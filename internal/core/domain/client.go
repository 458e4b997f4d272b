package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// ClientStatus represents the lifecycle state of a portal client account.
type ClientStatus string

const (
	StatusPending   ClientStatus = "pending"
	StatusActive    ClientStatus = "active"
	StatusSuspended ClientStatus = "suspended"
)

// AccessPolicy maps a deliverable type group to whether the client may view it.
// Keys follow the portal convention: "images", "maps", "models", "videos", "reports".
type AccessPolicy map[string]bool

// DefaultAccessPolicy grants access to every deliverable group. New clients get
// this at provisioning time; admins can restrict it later.
func DefaultAccessPolicy() AccessPolicy {
	return AccessPolicy{
		"images":  true,
		"maps":    true,
		"models":  true,
		"videos":  true,
		"reports": true,
	}
}

// Allows reports whether the policy grants access to the given deliverable type.
// A nil policy denies everything.
func (p AccessPolicy) Allows(t DeliverableType) bool {
	if p == nil {
		return false
	}
	return p[t.Group()]
}

// Client models a provisioned portal account. The email is the idempotency key
// for webhook-driven provisioning and is stored lowercased.
type Client struct {
	ClientID           string       `json:"client_id" bson:"client_id"`
	ProjectID          string       `json:"project_id" bson:"project_id"`
	CompanyName        string       `json:"company_name" bson:"company_name"`
	ContactName        string       `json:"contact_name" bson:"contact_name"`
	Email              string       `json:"email" bson:"email"`
	Phone              string       `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash       string       `json:"-" bson:"password_hash"`
	Role               string       `json:"role" bson:"role"`
	Status             ClientStatus `json:"status" bson:"status"`
	DepositReceived    bool         `json:"deposit_received" bson:"deposit_received"`
	DeliverablesAccess AccessPolicy `json:"deliverables_access" bson:"deliverables_access"`
	CreatedAt          time.Time    `json:"created_at" bson:"created_at"`
	ActivatedAt        *time.Time   `json:"activated_at,omitempty" bson:"activated_at,omitempty"`
	LastLogin          *time.Time   `json:"last_login,omitempty" bson:"last_login,omitempty"`
}

// ProjectDetails is the CRM-provided service metadata. The portal stores it and
// hands it back to the dashboard without interpreting it.
type ProjectDetails struct {
	ServiceType   string  `json:"service_type" bson:"service_type"`
	ProjectName   string  `json:"project_name" bson:"project_name"`
	ScheduledDate string  `json:"scheduled_date" bson:"scheduled_date"`
	Package       string  `json:"package" bson:"package"`
	TotalAmount   float64 `json:"total_amount" bson:"total_amount"`
}

// Project is the imaging engagement provisioned alongside a client.
type Project struct {
	ProjectID string         `json:"project_id" bson:"project_id"`
	ClientID  string         `json:"client_id" bson:"client_id"`
	Details   ProjectDetails `json:"details" bson:"details"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// Principal is the authenticated identity derived from a verified session token.
type Principal struct {
	ClientID  string
	ProjectID string
	Email     string
	Role      string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
