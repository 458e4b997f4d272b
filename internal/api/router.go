package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edis-imaging/client-portal/internal/api/handler"
	"github.com/edis-imaging/client-portal/internal/api/middleware"
	"github.com/edis-imaging/client-portal/internal/core/domain"
	"github.com/edis-imaging/client-portal/internal/core/ports"
)

// Deps carries the constructed services and collaborators the router wires
// into handlers.
type Deps struct {
	Provisioning ports.ProvisioningService
	Auth         ports.AuthService
	Deliverables ports.DeliverableService
	Clients      ports.ClientRepository
	Projects     ports.ProjectRepository
	Timeline     ports.TimelineRepository

	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret     string
	WebhookSecret string
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	auth := middleware.Auth(d.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Handlers ---
	webhookHandler := handler.NewWebhookHandler(d.Provisioning, d.WebhookSecret)
	authHandler := handler.NewAuthHandler(d.Auth)
	clientHandler := handler.NewClientHandler(d.Clients, d.Projects, d.Timeline, d.Deliverables)
	adminHandler := handler.NewAdminHandler(d.Clients)

	// --- Webhook ingestion (signature-verified, no session auth) ---
	e.POST("/api/webhooks/honeybook", webhookHandler.Receive)

	// --- Authentication ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/admin/login", authHandler.AdminLogin)

	// --- Client portal ---
	client := e.Group("/api/client", auth)
	client.GET("/dashboard", clientHandler.Dashboard)
	client.GET("/deliverables/:deliverableId/download", clientHandler.Download)

	// --- Admin portal ---
	admin := e.Group("/api/admin", auth, adminOnly)
	admin.GET("/clients", adminHandler.ListClients)
	admin.PUT("/clients/:clientId/access", adminHandler.UpdateAccess)
	admin.PUT("/clients/:clientId/status", adminHandler.UpdateStatus)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
