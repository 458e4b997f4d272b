package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
)

// bcryptCost matches the portal's historical hashing cost for temporary
// passwords.
const bcryptCost = 12

// DedupChecker abstracts the fast-path idempotency cache (Redis). It is
// advisory only: the authoritative guard is the unique email index enforced by
// the client repository.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, email, eventType string) (bool, error)
	Mark(ctx context.Context, email, eventType string) error
}

// NotificationBuilder renders the provisioning notifications. The welcome
// message is the only place the temporary password appears in plaintext.
type NotificationBuilder interface {
	Welcome(client *domain.Client, tempPassword string) ports.Notification
	OperatorAlert(client *domain.Client) ports.Notification
}

type provisioningService struct {
	clients    ports.ClientRepository
	projects   ports.ProjectRepository
	timeline   ports.TimelineRepository
	issuer     *CredentialIssuer
	dedup      DedupChecker
	notify     NotificationBuilder
	dispatcher ports.NotificationDispatcher
	// activateOnDeposit gates portal access on deposit confirmation: when set,
	// new clients start as pending and an admin flips them to active.
	activateOnDeposit bool
	log               zerolog.Logger
}

// NewProvisioningService returns a ProvisioningService implementation.
func NewProvisioningService(
	clients ports.ClientRepository,
	projects ports.ProjectRepository,
	timeline ports.TimelineRepository,
	issuer *CredentialIssuer,
	dedup DedupChecker,
	notify NotificationBuilder,
	dispatcher ports.NotificationDispatcher,
	activateOnDeposit bool,
	log zerolog.Logger,
) ports.ProvisioningService {
	return &provisioningService{
		clients:           clients,
		projects:          projects,
		timeline:          timeline,
		issuer:            issuer,
		dedup:             dedup,
		notify:            notify,
		dispatcher:        dispatcher,
		activateOnDeposit: activateOnDeposit,
		log:               log,
	}
}

// Process routes a verified CRM event to the matching transition.
func (s *provisioningService) Process(ctx context.Context, in ports.BookingEventInput) (*ports.ProvisionResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Client.Email))
	if email == "" {
		return nil, fmt.Errorf("process event %q: missing client email", in.EventType)
	}

	switch in.EventType {
	case ports.EventProjectBooked, ports.EventInvoicePaid, ports.EventContractSigned:
		return s.provision(ctx, in, email)
	case ports.EventProjectUpdated:
		return s.mergeProject(ctx, in, email)
	default:
		s.log.Info().Str("event_type", in.EventType).Msg("unhandled webhook event")
		return &ports.ProvisionResult{Ignored: true}, nil
	}
}

// provision performs the unknown → provisioned transition. At-least-once
// delivery means the same booking may arrive repeatedly, including
// concurrently; the unique email index turns every replay into an
// acknowledged no-op.
func (s *provisioningService) provision(ctx context.Context, in ports.BookingEventInput, email string) (*ports.ProvisionResult, error) {
	// Fast path: the cache has seen this booking already.
	isDup, err := s.dedup.IsDuplicate(ctx, email, in.EventType)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("dedup check failed, proceeding")
	} else if isDup {
		s.log.Debug().Str("email", email).Str("event_type", in.EventType).Msg("duplicate booking skipped via cache")
		return s.alreadyProvisioned(ctx, email)
	}

	creds, err := s.issuer.Issue(email)
	if err != nil {
		return nil, fmt.Errorf("provision %s: %w", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.TempPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("provision %s: hash password: %w", email, err)
	}

	now := time.Now().UTC()
	status := domain.StatusActive
	var activatedAt *time.Time
	if s.activateOnDeposit {
		status = domain.StatusPending
	} else {
		activatedAt = &now
	}

	companyName := in.Client.BusinessName
	if companyName == "" {
		companyName = in.Client.Name
	}

	client := &domain.Client{
		ClientID:           creds.ClientID,
		ProjectID:          creds.ProjectID,
		CompanyName:        companyName,
		ContactName:        in.Client.Name,
		Email:              email,
		Phone:              in.Client.Phone,
		PasswordHash:       string(hash),
		Role:               domain.RoleClient,
		Status:             status,
		DeliverablesAccess: domain.DefaultAccessPolicy(),
		CreatedAt:          now,
		ActivatedAt:        activatedAt,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		if errors.Is(err, domain.ErrClientExists) {
			// Lost a race or replayed delivery. Either way the record is there.
			s.markProcessed(ctx, email, in.EventType)
			s.log.Info().Str("email", email).Msg("client already provisioned, acknowledging replay")
			return s.alreadyProvisioned(ctx, email)
		}
		return nil, fmt.Errorf("provision %s: create client: %w", email, err)
	}

	project := &domain.Project{
		ProjectID: creds.ProjectID,
		ClientID:  creds.ClientID,
		Details:   projectDetails(in.Project),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("provision %s: create project: %w", email, err)
	}

	s.markProcessed(ctx, email, in.EventType)

	milestone := &domain.TimelineEvent{
		ProjectID:   creds.ProjectID,
		EventType:   "project_created",
		Title:       "Project Booked",
		Description: fmt.Sprintf("%s — %s", project.Details.ServiceType, project.Details.ProjectName),
		EventDate:   now,
	}
	if err := s.timeline.Append(ctx, milestone); err != nil {
		s.log.Warn().Err(err).Str("project_id", creds.ProjectID).Msg("failed to record timeline milestone")
	}

	// Notifications are best-effort: the client record is durable once stored
	// and a send failure must not roll it back.
	s.dispatcher.Enqueue(s.notify.Welcome(client, creds.TempPassword))
	s.dispatcher.Enqueue(s.notify.OperatorAlert(client))

	s.log.Info().
		Str("client_id", creds.ClientID).
		Str("project_id", creds.ProjectID).
		Str("email", email).
		Str("status", string(status)).
		Msg("client provisioned")

	return &ports.ProvisionResult{ClientID: creds.ClientID, ProjectID: creds.ProjectID}, nil
}

// mergeProject handles "project.updated": metadata is merged into the existing
// project. An update for an unknown email is an out-of-order delivery and is
// dropped without error.
func (s *provisioningService) mergeProject(ctx context.Context, in ports.BookingEventInput, email string) (*ports.ProvisionResult, error) {
	client, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			s.log.Info().Str("email", email).Msg("project update for unknown client dropped")
			return &ports.ProvisionResult{Ignored: true}, nil
		}
		return nil, fmt.Errorf("merge project for %s: %w", email, err)
	}

	if err := s.projects.MergeDetails(ctx, client.ProjectID, projectDetails(in.Project)); err != nil {
		return nil, fmt.Errorf("merge project for %s: %w", email, err)
	}

	s.log.Info().Str("client_id", client.ClientID).Str("project_id", client.ProjectID).Msg("project metadata updated")
	return &ports.ProvisionResult{ClientID: client.ClientID, ProjectID: client.ProjectID}, nil
}

// alreadyProvisioned acknowledges a duplicate booking, returning the existing
// identifiers when the record is readable.
func (s *provisioningService) alreadyProvisioned(ctx context.Context, email string) (*ports.ProvisionResult, error) {
	result := &ports.ProvisionResult{AlreadyProvisioned: true}
	if existing, err := s.clients.FindByEmail(ctx, email); err == nil {
		result.ClientID = existing.ClientID
		result.ProjectID = existing.ProjectID
	}
	return result, nil
}

func (s *provisioningService) markProcessed(ctx context.Context, email, eventType string) {
	if err := s.dedup.Mark(ctx, email, eventType); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to set dedup key")
	}
}

func projectDetails(p ports.BookingProjectInput) domain.ProjectDetails {
	return domain.ProjectDetails{
		ServiceType:   p.ServiceType,
		ProjectName:   p.Name,
		ScheduledDate: p.ScheduledDate,
		Package:       p.Package,
		TotalAmount:   p.TotalAmount,
	}
}
