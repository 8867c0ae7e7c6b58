package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFile     string `env:"LOG_FILE"`

	// CORS
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Firebase Configuration
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE" envDefault:"internal/config/firebase/service-account.json"`

	// The single superadmin identity. Stored roles are advisory; this email
	// is the source of truth on every session resolution.
	SuperadminEmail string `env:"SUPERADMIN_EMAIL"`

	// Alert defaults
	AlertDefaultTTLMinutes int `env:"ALERT_DEFAULT_TTL_MINUTES" envDefault:"15"`

	// Twilio Configuration
	TwilioAccountSID  string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `env:"TWILIO_PHONE_NUMBER"`

	// Rate limit for the SMS fan-out endpoint
	SMSRateRPS   int `env:"SMS_RATE_RPS" envDefault:"2"`
	SMSRateBurst int `env:"SMS_RATE_BURST" envDefault:"5"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if it exists. The environment-specific file wins.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.Environment == "production" {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// SMSConfigured reports whether the Twilio transport has everything it needs.
func (c *Config) SMSConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}
