package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Proveedores de email soportados.
const (
	EmailProviderSMTP     = "smtp"
	EmailProviderSES      = "ses"
	EmailProviderDisabled = "disabled"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort        string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL     string `env:"DATABASE_URL"`
	CatalogFile     string `env:"CATALOG_FILE"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"nl"`
	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`

	EmailProvider   string        `env:"EMAIL_PROVIDER" envDefault:"smtp"`
	ReportInbox     string        `env:"REPORT_INBOX" envDefault:"info@scaleupsucces.nl"`
	ReportContact   string        `env:"REPORT_CONTACT_URL" envDefault:"https://scaleupsucces.nl/contact"`
	ReportLogoURL   string        `env:"REPORT_LOGO_URL"`
	DeliveryTimeout time.Duration `env:"DELIVERY_TIMEOUT" envDefault:"15s"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME" envDefault:"Founder Dependency Assessment"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	AWSRegion string `env:"AWS_REGION" envDefault:"eu-west-1"`
	SESFrom   string `env:"SES_FROM"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.EmailProvider {
	case EmailProviderSMTP, EmailProviderSES, EmailProviderDisabled:
	default:
		return fmt.Errorf("EMAIL_PROVIDER: unsupported value %q", c.EmailProvider)
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}
	return nil
}
