// File: /config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DBDriver    string `env:"DB_DRIVER" envDefault:"mysql"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"user:password@tcp(localhost:3306)/eventhub?charset=utf8mb4&parseTime=True&loc=Local"`
	JWTSecret   string `env:"JWT_SECRET" envDefault:"your-secret-key"`
	Timezone    string `env:"TIMEZONE" envDefault:"Local"`
	GinMode     string `env:"GIN_MODE" envDefault:"debug"`

	// Allowed browser origins; empty allows any origin
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Staff account created on an empty database
	SeedStaffUsername string `env:"SEED_STAFF_USERNAME" envDefault:"admin"`
	SeedStaffEmail    string `env:"SEED_STAFF_EMAIL" envDefault:"admin@eventhub.local"`
	SeedStaffPassword string `env:"SEED_STAFF_PASSWORD" envDefault:"admin123"`

	// Reminder policy
	ReminderWindowDays       int           `env:"REMINDER_WINDOW_DAYS" envDefault:"14"`
	ReminderSameDayThreshold time.Duration `env:"REMINDER_SAME_DAY_THRESHOLD" envDefault:"12h"`

	// Booking rate limit, per client IP
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST" envDefault:"5"`

	// Email Configuration
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"2525"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	FromEmail    string `env:"FROM_EMAIL" envDefault:"noreply@eventhub.local"`
	FromName     string `env:"FROM_NAME" envDefault:"EventHub"`

	// Notification outbox relay
	RabbitMQURL      string        `env:"RABBITMQ_URL"`
	RabbitMQExchange string        `env:"RABBITMQ_EXCHANGE" envDefault:"notifications"`
	OutboxInterval   time.Duration `env:"OUTBOX_INTERVAL" envDefault:"30s"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
		log.Println("Loaded configuration from .env")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.ReminderWindowDays < 0 {
		return nil, fmt.Errorf("REMINDER_WINDOW_DAYS must be >= 0, got %d", cfg.ReminderWindowDays)
	}
	return cfg, nil
}

// Location resolves the configured timezone used to interpret event dates.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

func (c *Config) BrokerEnabled() bool {
	return c.RabbitMQURL != ""
}
