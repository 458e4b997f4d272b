package notify

import (
	"strings"
	"testing"

	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
)

func testClient() *domain.Client {
	return &domain.Client{
		ClientID:    "EDIS-AB12CD34EF56",
		ProjectID:   "PRJ-1234ABCD5678",
		CompanyName: "Acme Builders",
		ContactName: "Jordan Smith",
		Email:       "jordan@acme.example",
		Phone:       "+1 555 0100",
	}
}

func TestWelcomeCarriesCredentials(t *testing.T) {
	b := NewEmailBuilder("https://portal.edis.example", "ops@edis.example")

	n := b.Welcome(testClient(), "Temp-Pass-123")

	if n.Kind != ports.NotificationWelcome {
		t.Errorf("kind = %s", n.Kind)
	}
	if n.To != "jordan@acme.example" {
		t.Errorf("to = %s", n.To)
	}
	if !strings.Contains(n.Subject, "PRJ-1234ABCD5678") {
		t.Errorf("subject missing project id: %s", n.Subject)
	}
	for _, want := range []string{"Jordan Smith", "jordan@acme.example", "Temp-Pass-123", "https://portal.edis.example"} {
		if !strings.Contains(n.HTMLBody, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestOperatorAlertOmitsCredentials(t *testing.T) {
	b := NewEmailBuilder("https://portal.edis.example", "ops@edis.example")
	client := testClient()

	welcome := b.Welcome(client, "Temp-Pass-123")
	alert := b.OperatorAlert(client)

	if alert.To != "ops@edis.example" {
		t.Errorf("to = %s", alert.To)
	}
	if alert.Kind != ports.NotificationOperator {
		t.Errorf("kind = %s", alert.Kind)
	}
	if strings.Contains(alert.HTMLBody, "Temp-Pass-123") {
		t.Error("operator alert must not contain the temporary password")
	}
	for _, want := range []string{"Acme Builders", "EDIS-AB12CD34EF56", "PRJ-1234ABCD5678"} {
		if !strings.Contains(alert.HTMLBody, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if welcome.HTMLBody == alert.HTMLBody {
		t.Error("welcome and alert must render different bodies")
	}
}

func TestWelcomeEscapesHTML(t *testing.T) {
	b := NewEmailBuilder("https://portal.edis.example", "ops@edis.example")
	client := testClient()
	client.ContactName = `<script>alert("x")</script>`

	n := b.Welcome(client, "pw")
	if strings.Contains(n.HTMLBody, "<script>") {
		t.Error("contact name must be HTML-escaped")
	}
}
