// Package mailer delivers transactional mail over SMTP. Configuration is
// resolved at send time through an ordered chain: the settings store,
// then the environment, then static defaults.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"vnnews/internal/repository"
)

// ErrNotConfigured indicates that no usable SMTP credentials were found
// anywhere in the chain. Callers treat this as a soft failure: the send
// is skipped and logged, never escalated.
var ErrNotConfigured = errors.New("smtp credentials not configured")

// settingsCategory is the settings-store category holding SMTP keys.
const settingsCategory = "smtp"

// Config is a fully resolved SMTP configuration.
type Config struct {
	Server    string
	Port      int
	UseTLS    bool
	Username  string
	Password  string
	FromEmail string
}

// Configured reports whether the config carries credentials. An empty
// username means the operator never set SMTP up.
func (c Config) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// Resolver builds the effective SMTP configuration. Each key falls back
// independently: settings store, then MAIL_* environment variable, then
// the static default. Resolution happens on every send so settings
// changed through the admin panel apply without a restart.
type Resolver struct {
	Settings repository.SettingsRepository
}

var defaults = Config{
	Server: "smtp.gmail.com",
	Port:   587,
	UseTLS: true,
}

// Resolve returns the effective configuration. A failing settings store
// degrades to environment and defaults rather than blocking mail.
func (r *Resolver) Resolve(ctx context.Context) Config {
	stored := map[string]string{}
	if r.Settings != nil {
		got, err := r.Settings.GetCategory(ctx, settingsCategory)
		if err == nil {
			stored = got
		}
	}

	pick := func(key, envKey, fallback string) string {
		if v, ok := stored[key]; ok && v != "" {
			return v
		}
		if v := os.Getenv(envKey); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Server:    pick("smtp_server", "MAIL_SERVER", defaults.Server),
		Username:  pick("smtp_username", "MAIL_USERNAME", ""),
		Password:  pick("smtp_password", "MAIL_PASSWORD", ""),
		FromEmail: pick("smtp_from_email", "MAIL_FROM_EMAIL", ""),
	}
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.Username
	}

	cfg.Port = defaults.Port
	if v := pick("smtp_port", "MAIL_PORT", ""); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}

	cfg.UseTLS = defaults.UseTLS
	if v := pick("smtp_use_tls", "MAIL_USE_TLS", ""); v != "" {
		if useTLS, err := strconv.ParseBool(v); err == nil {
			cfg.UseTLS = useTLS
		}
	}

	return cfg
}

// Describe returns a redacted one-line summary for logs.
func (c Config) Describe() string {
	return fmt.Sprintf("%s:%d tls=%t user=%q", c.Server, c.Port, c.UseTLS, c.Username)
}

// Describe resolves the current configuration and summarizes it for the
// health endpoint. Credentials are never included.
func (r *Resolver) Describe(ctx context.Context) string {
	cfg := r.Resolve(ctx)
	if !cfg.Configured() {
		return "not configured: " + cfg.Describe()
	}
	return cfg.Describe()
}
