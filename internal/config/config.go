// Package config loads startup configuration from the environment (plus an
// optional .env file). Everything the original deployment hardcoded —
// allowed origins, cookie flags, the session secret — is an option here.
package config

import (
	"log"
	"net/http"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddr     string `env:"SERVER_ADDRESS" envDefault:":3000"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"loglevel"`
	DatabaseDSN string `env:"DB_DSN"`
	RedisAddr   string `env:"REDIS_ADDR"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	CookieSecure   bool     `env:"COOKIE_SECURE" envDefault:"false"`
	CookieSameSite string   `env:"COOKIE_SAME_SITE" envDefault:"lax" validate:"samesite"`
	SessionSecret  string   `env:"SESSION_SECRET" envDefault:"local-dev-session-secret" validate:"min=16"`
	SessionMaxAge  int      `env:"SESSION_MAX_AGE_SECONDS" envDefault:"86400" validate:"gt=0"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	EmailFrom    string `env:"EMAIL_FROM"`
}

// Values holds the loaded configuration. Populated by Init().
var Values Config

// SessionTTL is the session (and cookie) lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionMaxAge) * time.Second
}

// SameSite maps the configured samesite name to the http constant.
// "none" is for cross-origin production deployments and requires
// CookieSecure; "lax" is for same-origin local development.
func (c Config) SameSite() http.SameSite {
	if c.CookieSameSite == "none" {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[value]
}

func validateSameSite(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()
	return value == "lax" || value == "none"
}

func validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("samesite", validateSameSite)
	if err != nil {
		return err
	}

	return validate.Struct(Values)
}

// Init loads .env (if present), parses the environment into Values and
// validates the result.
func Init() error {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	Values = Config{}
	if err := env.Parse(&Values); err != nil {
		return err
	}

	return validate()
}
