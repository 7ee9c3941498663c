package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Mail dispatch strategies selectable via MAIL_STRATEGY
const (
	StrategyGmailAPI = "gmail_api"
	StrategySMTP     = "smtp"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"3000"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"./public"`
	LogFile     string `env:"LOG_FILE"`

	// Mail Account Configuration
	MailUser           string `env:"MAIL_USER"`
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `env:"GOOGLE_REDIRECT_URI"`
	GoogleRefreshToken string `env:"GOOGLE_REFRESH_TOKEN"`
	ReceiverEmail      string `env:"RECEIVER_EMAIL"`

	// Mail Dispatch Configuration
	MailStrategy string `env:"MAIL_STRATEGY" envDefault:"gmail_api"`
	MailSubject  string `env:"MAIL_SUBJECT" envDefault:"新域名购买咨询"`
	MailTimezone string `env:"MAIL_TIMEZONE" envDefault:"Asia/Shanghai"`
	SMTPAddr     string `env:"SMTP_ADDR" envDefault:"smtp.gmail.com:587"`

	// CORS Configuration
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,https://crownnewmaterial.com,https://www.crownnewmaterial.com,https://crownnewmaterials.com,https://www.crownnewmaterials.com"`

	// Rate Limit Configuration (two deployed policies: 100/15m and 20/60m)
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
}

// Load loads the configuration from environment variables and a .env file
func Load() (*Config, error) {
	// Load .env file if present; real environment wins
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MailStrategy != StrategyGmailAPI && cfg.MailStrategy != StrategySMTP {
		return nil, fmt.Errorf("invalid MAIL_STRATEGY: %s", cfg.MailStrategy)
	}

	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.Environment == "production" {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
// Production hides diagnostic detail from responses and the port from logs.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RequiredVars returns the credential variables checked at startup, keyed by
// environment variable name.
func (c *Config) RequiredVars() map[string]string {
	return map[string]string{
		"MAIL_USER":            c.MailUser,
		"GOOGLE_CLIENT_ID":     c.GoogleClientID,
		"GOOGLE_CLIENT_SECRET": c.GoogleClientSecret,
		"GOOGLE_REDIRECT_URI":  c.GoogleRedirectURI,
		"GOOGLE_REFRESH_TOKEN": c.GoogleRefreshToken,
		"RECEIVER_EMAIL":       c.ReceiverEmail,
	}
}
