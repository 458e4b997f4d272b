package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edis-imaging/client-portal/internal/api/metrics"
	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
)

// ClientHandler serves the authenticated client portal surface.
type ClientHandler struct {
	clients      ports.ClientRepository
	projects     ports.ProjectRepository
	timeline     ports.TimelineRepository
	deliverables ports.DeliverableService
}

func NewClientHandler(
	clients ports.ClientRepository,
	projects ports.ProjectRepository,
	timeline ports.TimelineRepository,
	deliverables ports.DeliverableService,
) *ClientHandler {
	return &ClientHandler{clients: clients, projects: projects, timeline: timeline, deliverables: deliverables}
}

type dashboardClient struct {
	CompanyName        string                `json:"companyName"`
	ContactName        string                `json:"contactName"`
	ProjectID          string                `json:"projectId"`
	ProjectDetails     domain.ProjectDetails `json:"projectDetails"`
	DeliverablesAccess domain.AccessPolicy   `json:"deliverablesAccess"`
}

type dashboardStats struct {
	TotalFiles   int `json:"totalFiles"`
	ImagesCount  int `json:"imagesCount"`
	MapsCount    int `json:"mapsCount"`
	ModelsCount  int `json:"modelsCount"`
	VideosCount  int `json:"videosCount"`
	ReportsCount int `json:"reportsCount"`
}

type dashboardResponse struct {
	Client       dashboardClient         `json:"client"`
	Deliverables []ports.DeliverableView `json:"deliverables"`
	Timeline     []*domain.TimelineEvent `json:"timeline"`
	Stats        dashboardStats          `json:"stats"`
}

// Dashboard handles GET /api/client/dashboard.
func (h *ClientHandler) Dashboard(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	client, err := h.clients.FindByClientID(ctx, principal.ClientID)
	if err != nil {
		return err
	}

	var details domain.ProjectDetails
	project, err := h.projects.FindByID(ctx, principal.ProjectID)
	if err == nil {
		details = project.Details
	} else if !errors.Is(err, domain.ErrProjectNotFound) {
		return err
	}

	views, err := h.deliverables.ListForProject(ctx, principal, principal.ProjectID)
	if err != nil {
		return err
	}

	events, err := h.timeline.ListByProject(ctx, principal.ProjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Client: dashboardClient{
			CompanyName:        client.CompanyName,
			ContactName:        client.ContactName,
			ProjectID:          client.ProjectID,
			ProjectDetails:     details,
			DeliverablesAccess: client.DeliverablesAccess,
		},
		Deliverables: views,
		Timeline:     events,
		Stats:        countByType(views),
	})
}

type downloadResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl"`
	Filename    string `json:"filename"`
	ExpiresIn   int    `json:"expiresIn"`
}

// Download handles GET /api/client/deliverables/:deliverableId/download.
func (h *ClientHandler) Download(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	grant, err := h.deliverables.RequestDownload(c.Request().Context(), principal, ports.AccessRequest{
		DeliverableID: c.Param("deliverableId"),
		IPAddress:     c.RealIP(),
		UserAgent:     c.Request().UserAgent(),
	})
	if err != nil {
		return err
	}

	metrics.DownloadsGrantedTotal.WithLabelValues(string(grant.Type)).Inc()
	return c.JSON(http.StatusOK, downloadResponse{
		Success:     true,
		DownloadURL: grant.URL,
		Filename:    grant.Filename,
		ExpiresIn:   grant.ExpiresIn,
	})
}

func countByType(views []ports.DeliverableView) dashboardStats {
	stats := dashboardStats{TotalFiles: len(views)}
	for _, v := range views {
		switch v.Type {
		case domain.TypeImage:
			stats.ImagesCount++
		case domain.TypeMap:
			stats.MapsCount++
		case domain.TypeModel:
			stats.ModelsCount++
		case domain.TypeVideo:
			stats.VideosCount++
		case domain.TypeReport:
			stats.ReportsCount++
		}
	}
	return stats
}
