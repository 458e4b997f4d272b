package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/edis-imaging/client-portal/internal/core/domain"
)

type stubAuthService struct {
	loginFn      func(ctx context.Context, username, password string) (string, *domain.Client, error)
	adminLoginFn func(ctx context.Context, username, password string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Client, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	return s.adminLoginFn(ctx, username, password)
}

func loginContext(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, *domain.Client, error) {
			if username != "jordan@acme.example" || password != "pass-word" {
				t.Fatalf("unexpected credentials: %s / %s", username, password)
			}
			return "jwt-token", &domain.Client{
				ClientID:           "EDIS-AB12CD34EF56",
				ProjectID:          "PRJ-1234ABCD5678",
				CompanyName:        "Acme Builders",
				ContactName:        "Jordan Smith",
				Email:              "jordan@acme.example",
				DeliverablesAccess: domain.DefaultAccessPolicy(),
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := loginContext(t, "/api/auth/login", `{"username":"jordan@acme.example","password":"pass-word"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "jwt-token" {
		t.Errorf("token missing from response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user block in response")
	}
	if user["clientId"] != "EDIS-AB12CD34EF56" || user["projectId"] != "PRJ-1234ABCD5678" {
		t.Errorf("unexpected user payload: %+v", user)
	}
	if _, present := user["passwordHash"]; present {
		t.Error("password hash must never appear in the login response")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.Client, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := loginContext(t, "/api/auth/login", `{"username":"jordan@acme.example","password":"wrong-pass"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_ShortPassword(t *testing.T) {
	called := false
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.Client, error) {
			called = true
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := loginContext(t, "/api/auth/login", `{"username":"jordan@acme.example","password":"abc"}`)
	err := handler.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if called {
		t.Error("auth service must not run on invalid payloads")
	}
}

func TestAuthHandler_AdminLogin_Success(t *testing.T) {
	stub := &stubAuthService{
		adminLoginFn: func(_ context.Context, username, password string) (string, error) {
			if username != "admin" {
				t.Fatalf("unexpected username %s", username)
			}
			return "admin-token", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := loginContext(t, "/api/admin/login", `{"username":"admin","password":"operator-pass"}`)
	if err := handler.AdminLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp adminLoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "admin-token" || resp.Role != domain.RoleAdmin {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_AdminLogin_Failure(t *testing.T) {
	stub := &stubAuthService{
		adminLoginFn: func(context.Context, string, string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := loginContext(t, "/api/admin/login", `{"username":"admin","password":"wrong-pass"}`)
	if err := handler.AdminLogin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
