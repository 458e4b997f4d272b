package ports

import (
	"context"
	"time"

	"github.com/edis-imaging/client-portal/internal/core/domain"
)

// AccessRequest carries the caller metadata recorded in the audit log.
type AccessRequest struct {
	DeliverableID string
	IPAddress     string
	UserAgent     string
}

// DownloadGrant is a time-boxed retrieval URL for a single deliverable.
type DownloadGrant struct {
	URL       string
	Filename  string
	Type      domain.DeliverableType
	ExpiresIn int // seconds
}

// DeliverableURLs is the size-class URL set exposed to the dashboard.
type DeliverableURLs struct {
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
	Preview   string `json:"preview,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// DeliverableView is the dashboard projection of a deliverable.
type DeliverableView struct {
	ID            string                 `json:"id"`
	Type          domain.DeliverableType `json:"type"`
	Category      string                 `json:"category"`
	Filename      string                 `json:"filename"`
	FileSize      int64                  `json:"file_size"`
	MimeType      string                 `json:"mime_type"`
	Description   string                 `json:"description,omitempty"`
	DownloadCount int64                  `json:"download_count"`
	UploadedAt    time.Time              `json:"uploaded_at"`
	URLs          DeliverableURLs        `json:"urls"`
}

// DeliverableService authorizes and serves access to delivered files.
type DeliverableService interface {
	// RequestDownload authorizes the principal against the deliverable's owning
	// project, generates a time-boxed URL, records the access, and increments
	// the download counter. Ownership mismatch yields domain.ErrDeliverableNotFound.
	RequestDownload(ctx context.Context, principal domain.Principal, req AccessRequest) (*DownloadGrant, error)
	// ListForProject returns dashboard views of the project's deliverables the
	// principal's access policy permits.
	ListForProject(ctx context.Context, principal domain.Principal, projectID string) ([]DeliverableView, error)
}
