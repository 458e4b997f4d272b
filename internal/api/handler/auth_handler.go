package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edis-imaging/client-portal/internal/api/metrics"
	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
)

// AuthHandler serves client and admin login.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginUser struct {
	ClientID           string              `json:"clientId"`
	ProjectID          string              `json:"projectId"`
	CompanyName        string              `json:"companyName"`
	ContactName        string              `json:"contactName"`
	Email              string              `json:"email"`
	DeliverablesAccess domain.AccessPolicy `json:"deliverablesAccess"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type adminLoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Login handles POST /api/auth/login — client portal authentication.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, client, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(domain.RoleClient, "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(domain.RoleClient, "success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User: loginUser{
			ClientID:           client.ClientID,
			ProjectID:          client.ProjectID,
			CompanyName:        client.CompanyName,
			ContactName:        client.ContactName,
			Email:              client.Email,
			DeliverablesAccess: client.DeliverablesAccess,
		},
	})
}

// AdminLogin handles POST /api/admin/login — operator authentication.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.AdminLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(domain.RoleAdmin, "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(domain.RoleAdmin, "success").Inc()
	return c.JSON(http.StatusOK, adminLoginResponse{Token: token, Role: domain.RoleAdmin})
}
