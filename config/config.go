// Package config loads runtime settings from the process environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env         string        `env:"ENV"             envDefault:"dev"`
	Port        string        `env:"PORT"            envDefault:"4444"`
	AppSecret   string        `env:"APP_SECRET,required,notEmpty"`
	FrontendURL string        `env:"FRONTEND_URL"    envDefault:"http://localhost:4444"`
	SessionTTL  time.Duration `env:"SESSION_TTL"     envDefault:"8760h"`
	ResetTTL    time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1h"`
	AutoMigrate bool          `env:"AUTO_MIGRATE"    envDefault:"false"`
	LogLevel    string        `env:"LOG_LEVEL"       envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT"      envDefault:"auto"`
	Tracing     string        `env:"TRACING"`
	DB          DBConfig      `envPrefix:"DB_"`
	Mail        MailConfig    `envPrefix:"MAIL_"`
	S3          S3Config      `envPrefix:"S3_"`
}

// DBConfig selects PostgreSQL when Name is set and SQLite otherwise.
type DBConfig struct {
	Host       string `env:"HOST"     envDefault:"localhost"`
	Port       string `env:"PORT"     envDefault:"5432"`
	User       string `env:"USER"`
	Password   string `env:"PASSWORD"`
	Name       string `env:"NAME"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"sick-fits.db"`
}

// MailConfig configures outgoing SMTP. An empty Host logs messages instead
// of sending them.
type MailConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"2525"`
	User     string `env:"USER"`
	Password string `env:"PASS"`
	From     string `env:"FROM" envDefault:"noreply@sick-fits.local"`
}

// S3Config configures item image uploads. Uploads are disabled when Bucket
// is empty.
type S3Config struct {
	Bucket    string        `env:"BUCKET"`
	Region    string        `env:"REGION"     envDefault:"us-east-1"`
	Endpoint  string        `env:"ENDPOINT"`
	AccessKey string        `env:"ACCESS_KEY"`
	SecretKey string        `env:"SECRET_KEY"`
	PublicURL string        `env:"PUBLIC_URL"`
	UploadTTL time.Duration `env:"UPLOAD_TTL" envDefault:"15m"`
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.ResetTTL <= 0 {
		return nil, fmt.Errorf("RESET_TOKEN_TTL must be positive, got %s", cfg.ResetTTL)
	}
	return &cfg, nil
}
