package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
)

// downloadURLTTL is how long a generated retrieval URL stays valid.
const downloadURLTTL = time.Hour

type deliverableService struct {
	deliverables ports.DeliverableRepository
	clients      ports.ClientRepository
	accessLog    ports.AccessLogRepository
	media        ports.MediaStorage
	log          zerolog.Logger
}

// NewDeliverableService returns a DeliverableService implementation.
func NewDeliverableService(
	deliverables ports.DeliverableRepository,
	clients ports.ClientRepository,
	accessLog ports.AccessLogRepository,
	media ports.MediaStorage,
	log zerolog.Logger,
) ports.DeliverableService {
	return &deliverableService{
		deliverables: deliverables,
		clients:      clients,
		accessLog:    accessLog,
		media:        media,
		log:          log,
	}
}

// RequestDownload grants a time-boxed URL for one deliverable. An ownership or
// policy mismatch is answered with ErrDeliverableNotFound rather than
// Forbidden so the response never confirms another tenant's resource exists.
func (s *deliverableService) RequestDownload(ctx context.Context, principal domain.Principal, req ports.AccessRequest) (*ports.DownloadGrant, error) {
	d, err := s.authorize(ctx, principal, req.DeliverableID)
	if err != nil {
		return nil, err
	}

	url := d.SecureURL
	if d.StorageRef != "" {
		signed, err := s.media.SignedDownloadURL(d.StorageRef, d.Type, downloadURLTTL)
		if err != nil {
			return nil, fmt.Errorf("request download %s: %w", d.ID, err)
		}
		url = signed
	}

	// The audit write and counter must survive a caller disconnect, so they run
	// on a context detached from the request's cancellation.
	logCtx := context.WithoutCancel(ctx)

	entry := &domain.AccessLogEntry{
		ClientID:      principal.ClientID,
		ProjectID:     d.ProjectID,
		DeliverableID: d.ID,
		AccessType:    "download",
		IPAddress:     req.IPAddress,
		UserAgent:     req.UserAgent,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.accessLog.Append(logCtx, entry); err != nil {
		s.log.Warn().Err(err).Str("deliverable_id", d.ID).Msg("failed to append access log entry")
	}

	if err := s.deliverables.IncrementDownloadCount(logCtx, d.ID); err != nil {
		s.log.Warn().Err(err).Str("deliverable_id", d.ID).Msg("failed to increment download counter")
	}

	s.log.Info().
		Str("client_id", principal.ClientID).
		Str("deliverable_id", d.ID).
		Str("type", string(d.Type)).
		Msg("download granted")

	return &ports.DownloadGrant{
		URL:       url,
		Filename:  d.OriginalFilename,
		Type:      d.Type,
		ExpiresIn: int(downloadURLTTL.Seconds()),
	}, nil
}

// ListForProject returns dashboard views of the project's deliverables,
// filtered by the principal's access policy and decorated with size-class URL
// sets from the media collaborator.
func (s *deliverableService) ListForProject(ctx context.Context, principal domain.Principal, projectID string) ([]ports.DeliverableView, error) {
	var policy domain.AccessPolicy
	enforcePolicy := !principal.IsAdmin()
	if enforcePolicy {
		if projectID != principal.ProjectID {
			return nil, domain.ErrProjectNotFound
		}
		client, err := s.clients.FindByClientID(ctx, principal.ClientID)
		if err != nil {
			return nil, err
		}
		policy = client.DeliverablesAccess
	}

	items, err := s.deliverables.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list deliverables for %s: %w", projectID, err)
	}

	views := make([]ports.DeliverableView, 0, len(items))
	for _, d := range items {
		if enforcePolicy && !policy.Allows(d.Type) {
			continue
		}
		views = append(views, ports.DeliverableView{
			ID:            d.ID,
			Type:          d.Type,
			Category:      d.Category,
			Filename:      d.OriginalFilename,
			FileSize:      d.FileSize,
			MimeType:      d.MimeType,
			Description:   d.Description,
			DownloadCount: d.DownloadCount,
			UploadedAt:    d.UploadedAt,
			URLs:          s.urlSet(d),
		})
	}
	return views, nil
}

// authorize loads the deliverable and enforces ownership plus access policy.
func (s *deliverableService) authorize(ctx context.Context, principal domain.Principal, deliverableID string) (*domain.Deliverable, error) {
	d, err := s.deliverables.FindByID(ctx, deliverableID)
	if err != nil {
		return nil, err
	}

	if principal.IsAdmin() {
		return d, nil
	}

	if d.ProjectID != principal.ProjectID {
		return nil, domain.ErrDeliverableNotFound
	}

	client, err := s.clients.FindByClientID(ctx, principal.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.DeliverablesAccess.Allows(d.Type) {
		return nil, domain.ErrDeliverableNotFound
	}

	return d, nil
}

// urlSet derives the size-class URLs for a deliverable. Which classes apply is
// type policy: thumbnails for list views, previews and optimized renditions
// for detail views, original always preserved for download.
func (s *deliverableService) urlSet(d *domain.Deliverable) ports.DeliverableURLs {
	urls := ports.DeliverableURLs{Original: d.SecureURL}
	if d.StorageRef == "" {
		return urls
	}
	urls.Optimized = s.media.TransformURL(d.StorageRef, d.Type, ports.SizeOptimized)
	urls.Preview = s.media.TransformURL(d.StorageRef, d.Type, ports.SizePreview)
	urls.Thumbnail = s.media.TransformURL(d.StorageRef, d.Type, ports.SizeThumbnail)
	return urls
}
