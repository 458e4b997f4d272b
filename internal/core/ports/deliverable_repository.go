package ports

import (
	"context"

	"github.com/edis-imaging/client-portal/internal/core/domain"
)

// DeliverableRepository defines read and counter operations on deliverables.
// Deliverable creation belongs to the upload pipeline and is out of core scope.
type DeliverableRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Deliverable, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Deliverable, error)
	// IncrementDownloadCount adds exactly one to the deliverable's counter.
	IncrementDownloadCount(ctx context.Context, id string) error
}

// AccessLogRepository appends audit entries. Entries are write-once.
type AccessLogRepository interface {
	Append(ctx context.Context, entry *domain.AccessLogEntry) error
}

// TimelineRepository reads and appends project milestones.
type TimelineRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]*domain.TimelineEvent, error)
	Append(ctx context.Context, event *domain.TimelineEvent) error
}
