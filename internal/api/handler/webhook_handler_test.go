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
	"github.com/edis-imaging/client-portal/internal/core/ports"
	"github.com/edis-imaging/client-portal/internal/pkg/signature"
)

const webhookSecret = "whsec_test"

type stubProvisioning struct {
	processFn func(ctx context.Context, event ports.BookingEventInput) (*ports.ProvisionResult, error)
	calls     int
}

func (s *stubProvisioning) Process(ctx context.Context, event ports.BookingEventInput) (*ports.ProvisionResult, error) {
	s.calls++
	return s.processFn(ctx, event)
}

func webhookContext(t *testing.T, body string, sign bool) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/honeybook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if sign {
		req.Header.Set(signatureHeader, signature.Sign([]byte(body), webhookSecret))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const bookedBody = `{
	"eventType": "project.booked",
	"client": {"name": "Jordan Smith", "email": "jordan@acme.example", "phone": "+1 555 0100", "businessName": "Acme Builders"},
	"project": {"serviceType": "aerial_mapping", "name": "Bartow Site", "scheduledDate": "2026-09-15", "package": "premium", "totalAmount": 4800}
}`

func TestWebhookHandler_Receive_Success(t *testing.T) {
	stub := &stubProvisioning{
		processFn: func(_ context.Context, event ports.BookingEventInput) (*ports.ProvisionResult, error) {
			if event.EventType != ports.EventProjectBooked {
				t.Fatalf("unexpected event type %s", event.EventType)
			}
			if event.Client.Email != "jordan@acme.example" || event.Client.BusinessName != "Acme Builders" {
				t.Fatalf("client block not mapped: %+v", event.Client)
			}
			if event.Project.TotalAmount != 4800 {
				t.Fatalf("project block not mapped: %+v", event.Project)
			}
			return &ports.ProvisionResult{ClientID: "EDIS-1", ProjectID: "PRJ-1"}, nil
		},
	}
	handler := NewWebhookHandler(stub, webhookSecret)

	c, rec := webhookContext(t, bookedBody, true)
	if err := handler.Receive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp webhookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success {
		t.Errorf("expected success ack, got %+v", resp)
	}
}

func TestWebhookHandler_Receive_BadSignature(t *testing.T) {
	stub := &stubProvisioning{
		processFn: func(context.Context, ports.BookingEventInput) (*ports.ProvisionResult, error) {
			return &ports.ProvisionResult{}, nil
		},
	}
	handler := NewWebhookHandler(stub, webhookSecret)

	c, _ := webhookContext(t, bookedBody, false)
	c.Request().Header.Set(signatureHeader, signature.Sign([]byte(bookedBody), "wrong-secret"))

	err := handler.Receive(c)
	if !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("provisioning must not run on a failed signature, got %d calls", stub.calls)
	}
}

func TestWebhookHandler_Receive_MissingSignature(t *testing.T) {
	stub := &stubProvisioning{}
	handler := NewWebhookHandler(stub, webhookSecret)

	c, _ := webhookContext(t, bookedBody, false)
	if err := handler.Receive(c); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("provisioning must not run without a signature, got %d calls", stub.calls)
	}
}

func TestWebhookHandler_Receive_MalformedJSON(t *testing.T) {
	stub := &stubProvisioning{}
	handler := NewWebhookHandler(stub, webhookSecret)

	c, _ := webhookContext(t, `{"eventType": `, true)
	err := handler.Receive(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("provisioning must not run on malformed payload")
	}
}

func TestWebhookHandler_Receive_MissingEmail(t *testing.T) {
	stub := &stubProvisioning{}
	handler := NewWebhookHandler(stub, webhookSecret)

	body := `{"eventType": "project.booked", "client": {"name": "No Email"}}`
	c, _ := webhookContext(t, body, true)
	err := handler.Receive(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestWebhookHandler_Receive_DuplicateStillAcked(t *testing.T) {
	stub := &stubProvisioning{
		processFn: func(context.Context, ports.BookingEventInput) (*ports.ProvisionResult, error) {
			return &ports.ProvisionResult{ClientID: "EDIS-1", ProjectID: "PRJ-1", AlreadyProvisioned: true}, nil
		},
	}
	handler := NewWebhookHandler(stub, webhookSecret)

	c, rec := webhookContext(t, bookedBody, true)
	if err := handler.Receive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("replays must be acknowledged with 200, got %d", rec.Code)
	}
}
