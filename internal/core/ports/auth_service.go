package ports

import (
	"context"

	"github.com/edis-imaging/client-portal/internal/core/domain"
)

// AuthService authenticates portal users and mints session tokens.
//
// Login and AdminLogin return domain.ErrInvalidCredentials for every failure
// mode (unknown user, wrong password, non-active account) so the response never
// reveals which check failed.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Client, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
}
