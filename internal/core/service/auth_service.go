package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
)

const (
	ClientSessionTTL = 24 * time.Hour
	AdminSessionTTL  = 8 * time.Hour
)

// AdminCredentials is the operator account, configured through the environment
// rather than stored with client records.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// AuthService implements portal and admin login. All authentication failures
// collapse into domain.ErrInvalidCredentials so responses never reveal whether
// an account exists, is suspended, or got the password wrong.
type AuthService struct {
	clients   ports.ClientRepository
	jwtSecret string
	admin     AdminCredentials
	log       zerolog.Logger
}

func NewAuthService(clients ports.ClientRepository, jwtSecret string, admin AdminCredentials, log zerolog.Logger) *AuthService {
	return &AuthService{clients: clients, jwtSecret: jwtSecret, admin: admin, log: log}
}

// Login authenticates a client by email and password and returns a 24h session
// token. Accounts that are not active cannot log in.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Client, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	client, err := s.clients.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if client.Status != domain.StatusActive {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.mintToken(client.ClientID, client.ProjectID, client.Email, domain.RoleClient, ClientSessionTTL)
	if err != nil {
		return "", nil, err
	}

	if err := s.clients.UpdateLastLogin(ctx, client.ClientID); err != nil {
		s.log.Warn().Err(err).Str("client_id", client.ClientID).Msg("failed to record last login")
	}

	return token, client, nil
}

// AdminLogin authenticates the configured operator account and returns an 8h
// session token.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" || s.admin.Username == "" {
		return "", domain.ErrInvalidCredentials
	}

	if username != s.admin.Username {
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.mintToken("", "", username, domain.RoleAdmin, AdminSessionTTL)
}

func (s *AuthService) mintToken(clientID, projectID, email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"client_id":  clientID,
		"project_id": projectID,
		"email":      email,
		"role":       role,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
