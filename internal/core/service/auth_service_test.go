package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/edis-imaging/client-portal/internal/core/domain"
)

func seedClient(t *testing.T, repo *stubClientRepo, email, password string, status domain.ClientStatus) *domain.Client {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	c := &domain.Client{
		ClientID:     "EDIS-AAAA11112222",
		ProjectID:    "PRJ-BBBB22223333",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		Status:       status,
	}
	repo.byEmail[email] = c
	return c
}

func parseClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubClientRepo()
	seedClient(t, repo, "carol@x.com", "s3cret-pass", domain.StatusActive)
	svc := NewAuthService(repo, "secret", AdminCredentials{}, zerolog.Nop())

	token, client, err := svc.Login(context.Background(), "Carol@X.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if client == nil || client.ClientID != "EDIS-AAAA11112222" {
		t.Fatalf("unexpected client: %+v", client)
	}

	claims := parseClaims(t, token, "secret")
	if claims["role"] != domain.RoleClient {
		t.Errorf("unexpected role claim: %v", claims["role"])
	}
	if claims["client_id"] != "EDIS-AAAA11112222" || claims["project_id"] != "PRJ-BBBB22223333" {
		t.Errorf("identity claims missing: %+v", claims)
	}
	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	if exp-iat != int64(ClientSessionTTL/time.Second) {
		t.Errorf("expected 24h session, got %ds", exp-iat)
	}

	if len(repo.logins) != 1 || repo.logins[0] != "EDIS-AAAA11112222" {
		t.Errorf("last login not recorded: %v", repo.logins)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubClientRepo()
	seedClient(t, repo, "active@x.com", "right-password", domain.StatusActive)
	seedClient(t, repo, "suspended@x.com", "right-password", domain.StatusSuspended)
	seedClient(t, repo, "pending@x.com", "right-password", domain.StatusPending)
	svc := NewAuthService(repo, "secret", AdminCredentials{}, zerolog.Nop())

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "active@x.com", "wrong-password"},
		{"unknown email", "nobody@x.com", "right-password"},
		{"suspended account", "suspended@x.com", "right-password"},
		{"pending account", "pending@x.com", "right-password"},
		{"empty password", "active@x.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.username, tc.password)
			if err != domain.ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}

	if len(repo.logins) != 0 {
		t.Errorf("failed logins must not touch last_login: %v", repo.logins)
	}
}

func TestAuthService_AdminLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("op-password"), bcrypt.MinCost)
	svc := NewAuthService(newStubClientRepo(), "secret", AdminCredentials{
		Username:     "operator",
		PasswordHash: string(hash),
	}, zerolog.Nop())

	token, err := svc.AdminLogin(context.Background(), "operator", "op-password")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}

	claims := parseClaims(t, token, "secret")
	if claims["role"] != domain.RoleAdmin {
		t.Errorf("unexpected role claim: %v", claims["role"])
	}
	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	if exp-iat != int64(AdminSessionTTL/time.Second) {
		t.Errorf("expected 8h session, got %ds", exp-iat)
	}
}

func TestAuthService_AdminLogin_Failures(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("op-password"), bcrypt.MinCost)
	svc := NewAuthService(newStubClientRepo(), "secret", AdminCredentials{
		Username:     "operator",
		PasswordHash: string(hash),
	}, zerolog.Nop())

	if _, err := svc.AdminLogin(context.Background(), "operator", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.AdminLogin(context.Background(), "intruder", "op-password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong username, got %v", err)
	}

	unconfigured := NewAuthService(newStubClientRepo(), "secret", AdminCredentials{}, zerolog.Nop())
	if _, err := unconfigured.AdminLogin(context.Background(), "operator", "op-password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials when admin account unset, got %v", err)
	}
}
