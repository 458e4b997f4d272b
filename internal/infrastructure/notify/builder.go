// Package notify renders and delivers provisioning emails.
package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
)

// EmailBuilder renders the provisioning notifications. The welcome message is
// the only place the temporary password ever appears in clear text.
type EmailBuilder struct {
	portalBaseURL string
	operatorEmail string
}

// NewEmailBuilder creates a builder that points clients at portalBaseURL and
// sends operator alerts to operatorEmail.
func NewEmailBuilder(portalBaseURL, operatorEmail string) *EmailBuilder {
	return &EmailBuilder{portalBaseURL: portalBaseURL, operatorEmail: operatorEmail}
}

// Welcome renders the client onboarding email carrying the login credentials.
func (b *EmailBuilder) Welcome(client *domain.Client, tempPassword string) ports.Notification {
	var body strings.Builder
	_ = welcomeTemplate.Execute(&body, welcomeData{
		ContactName:  client.ContactName,
		Username:     client.Email,
		TempPassword: tempPassword,
		ProjectID:    client.ProjectID,
		PortalURL:    b.portalBaseURL,
	})

	return ports.Notification{
		Kind:     ports.NotificationWelcome,
		To:       client.Email,
		Subject:  fmt.Sprintf("Welcome to EDIS Portal - Project %s", client.ProjectID),
		HTMLBody: body.String(),
	}
}

// OperatorAlert renders the internal heads-up about a freshly provisioned
// account. It never contains credentials.
func (b *EmailBuilder) OperatorAlert(client *domain.Client) ports.Notification {
	var body strings.Builder
	_ = operatorTemplate.Execute(&body, operatorData{
		CompanyName: client.CompanyName,
		ContactName: client.ContactName,
		Email:       client.Email,
		Phone:       client.Phone,
		ClientID:    client.ClientID,
		ProjectID:   client.ProjectID,
	})

	return ports.Notification{
		Kind:     ports.NotificationOperator,
		To:       b.operatorEmail,
		Subject:  fmt.Sprintf("New Client: %s - %s", client.CompanyName, client.ProjectID),
		HTMLBody: body.String(),
	}
}

type welcomeData struct {
	ContactName  string
	Username     string
	TempPassword string
	ProjectID    string
	PortalURL    string
}

type operatorData struct {
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	ClientID    string
	ProjectID   string
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Inter, Arial, sans-serif; background: #000; color: #fff;">
  <div style="max-width: 600px; margin: 0 auto; padding: 40px 20px;">
    <h1 style="text-align: center; color: #00BFFF;">EDIS</h1>
    <p style="text-align: center;">Enhanced Digital Imaging Solutions</p>

    <h2>Welcome to the EDIS TrueView Portal!</h2>
    <p>Dear {{.ContactName}},</p>
    <p>Thank you for choosing EDIS for your imaging needs. Your project has been
    set up and you now have access to our client portal.</p>

    <div style="border: 1px solid #00BFFF; border-radius: 12px; padding: 20px;">
      <h3>Your Login Credentials</h3>
      <p><strong>Portal URL:</strong> <a href="{{.PortalURL}}">{{.PortalURL}}</a></p>
      <p><strong>Username:</strong> {{.Username}}</p>
      <p><strong>Temporary Password:</strong> {{.TempPassword}}</p>
      <p><strong>Project ID:</strong> {{.ProjectID}}</p>
    </div>

    <p><strong>What you can access:</strong></p>
    <ul>
      <li>High-resolution imagery</li>
      <li>Interactive maps and orthomosaics</li>
      <li>3D models and visualizations</li>
      <li>Detailed project reports</li>
      <li>Video content and fly-throughs</li>
    </ul>

    <p><small><strong>Security note:</strong> please change your password after
    first login.</small></p>

    <p style="text-align: center; color: #8B95A7;">Questions? Contact us at
    support@edis-imaging.com</p>
  </div>
</body>
</html>
`))

var operatorTemplate = template.Must(template.New("operator").Parse(`<div style="font-family: Inter, Arial, sans-serif;">
  <h2>New Client Account Created</h2>
  <h3>Client Information</h3>
  <p><strong>Company:</strong> {{.CompanyName}}</p>
  <p><strong>Contact:</strong> {{.ContactName}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Client ID:</strong> {{.ClientID}}</p>
  <p><strong>Project ID:</strong> {{.ProjectID}}</p>
  <h3>Next Steps</h3>
  <ul>
    <li>Set up project folders</li>
    <li>Schedule imaging services</li>
    <li>Prepare the deliverables structure</li>
  </ul>
</div>
`))
