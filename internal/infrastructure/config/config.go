package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every runtime setting, populated from environment variables.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret     string `env:"JWT_SECRET, required"`
	WebhookSecret string `env:"HONEYBOOK_WEBHOOK_SECRET, required"`

	// PortalBaseURL is embedded in welcome emails as the login link.
	PortalBaseURL string `env:"PORTAL_BASE_URL, default=http://localhost:8080"`

	// ActivateOnDeposit gates new accounts behind deposit confirmation:
	// when true, provisioned clients start pending and an operator must
	// activate them once payment clears.
	ActivateOnDeposit bool `env:"ACTIVATE_ON_DEPOSIT, default=false"`

	Admin      AdminConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	SMTP       SMTPConfig
	Cloudinary CloudinaryConfig
}

// AdminConfig identifies the single operator account.
type AdminConfig struct {
	Username     string `env:"ADMIN_USERNAME, default=admin"`
	PasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	Email        string `env:"ADMIN_EMAIL"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=client_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig configures the outbound mail transport.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM, default=noreply@edis-imaging.com"`
}

// CloudinaryConfig configures deliverable storage URL generation.
type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
