package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edis-imaging/client-portal/internal/core/domain"
)

// ctxPrincipal extracts the Principal injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - client role requires client and project identifiers; without them the
//     token is structurally valid but operationally unusable — reject with 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, _ := c.Get("principal").(domain.Principal)
	if principal.Role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if principal.Role == domain.RoleClient && (principal.ClientID == "" || principal.ProjectID == "") {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}
	return principal, nil
}
