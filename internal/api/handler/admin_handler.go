package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
)

// AdminHandler serves the operator surface. All routes are behind
// RBAC(RoleAdmin).
type AdminHandler struct {
	clients ports.ClientRepository
}

func NewAdminHandler(clients ports.ClientRepository) *AdminHandler {
	return &AdminHandler{clients: clients}
}

type adminClientSummary struct {
	ClientID        string              `json:"clientId"`
	ProjectID       string              `json:"projectId"`
	CompanyName     string              `json:"companyName"`
	ContactName     string              `json:"contactName"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone,omitempty"`
	Status          domain.ClientStatus `json:"status"`
	DepositReceived bool                `json:"depositReceived"`
	CreatedAt       string              `json:"createdAt"`
}

// ListClients handles GET /api/admin/clients.
func (h *AdminHandler) ListClients(c echo.Context) error {
	clients, err := h.clients.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]adminClientSummary, 0, len(clients))
	for _, cl := range clients {
		out = append(out, adminClientSummary{
			ClientID:        cl.ClientID,
			ProjectID:       cl.ProjectID,
			CompanyName:     cl.CompanyName,
			ContactName:     cl.ContactName,
			Email:           cl.Email,
			Phone:           cl.Phone,
			Status:          cl.Status,
			DepositReceived: cl.DepositReceived,
			CreatedAt:       cl.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return c.JSON(http.StatusOK, out)
}

type updateAccessRequest struct {
	DeliverablesAccess domain.AccessPolicy `json:"deliverablesAccess" validate:"required"`
}

// UpdateAccess handles PUT /api/admin/clients/:clientId/access.
func (h *AdminHandler) UpdateAccess(c echo.Context) error {
	var req updateAccessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.DeliverablesAccess == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "deliverablesAccess is required")
	}

	if err := h.clients.UpdateAccessPolicy(c.Request().Context(), c.Param("clientId"), req.DeliverablesAccess); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Access updated"})
}

type updateStatusRequest struct {
	Status          domain.ClientStatus `json:"status" validate:"required,oneof=pending active suspended"`
	DepositReceived *bool               `json:"depositReceived"`
}

// UpdateStatus handles PUT /api/admin/clients/:clientId/status. This is the
// administrative path for activation after deposit confirmation and for
// suspension; webhook processing never transitions accounts this way.
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.clients.UpdateStatus(c.Request().Context(), c.Param("clientId"), req.Status, req.DepositReceived); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Status updated"})
}
