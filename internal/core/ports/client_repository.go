package ports

import (
	"context"

	"github.com/edis-imaging/client-portal/internal/core/domain"
)

// ClientRepository defines persistence for portal client accounts.
//
// Create must be backed by a uniqueness constraint on email and return
// domain.ErrClientExists when a concurrent or repeated insert collides; the
// provisioning orchestrator relies on this instead of a read-then-write check.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	FindByClientID(ctx context.Context, clientID string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	UpdateLastLogin(ctx context.Context, clientID string) error
	UpdateAccessPolicy(ctx context.Context, clientID string, policy domain.AccessPolicy) error
	UpdateStatus(ctx context.Context, clientID string, status domain.ClientStatus, depositReceived *bool) error
}

// ProjectRepository defines persistence for imaging projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, projectID string) (*domain.Project, error)
	// MergeDetails overwrites the service metadata of the client's project.
	// Used by "project.updated" webhook events.
	MergeDetails(ctx context.Context, projectID string, details domain.ProjectDetails) error
}
