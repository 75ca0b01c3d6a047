// Package config loads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ggoodman/zendesk-mcp-server-go/zendesk"
	"github.com/joeshaw/envdecode"
)

// Zendesk holds the account credentials. Missing values are not a load
// error; the client reports them on first use.
type Zendesk struct {
	Subdomain string `env:"ZENDESK_SUBDOMAIN"`
	Email     string `env:"ZENDESK_EMAIL"`
	APIToken  string `env:"ZENDESK_API_TOKEN"`
}

// Config is the full process configuration.
type Config struct {
	Zendesk Zendesk

	// AuthToken is the static bearer token for /mcp. Empty disables auth.
	AuthToken string `env:"MCP_AUTH_TOKEN"`

	Port        int    `env:"PORT,default=3000"`
	Host        string `env:"HOST,default=0.0.0.0"`
	Environment string `env:"ENVIRONMENT,default=production"`
	LocalMode   bool   `env:"LOCAL_MODE,default=false"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	SessionTimeout  time.Duration `env:"SESSION_TIMEOUT,default=30m"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL,default=5m"`
}

// Load decodes the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects malformed values.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.SessionTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TIMEOUT must be positive: %s", c.SessionTimeout))
	}
	if c.CleanupInterval <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive: %s", c.CleanupInterval))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Development reports whether human-oriented output is wanted.
func (c *Config) Development() bool {
	return c.LocalMode || strings.EqualFold(c.Environment, "development")
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Credentials returns the Zendesk client credentials.
func (c *Config) Credentials() zendesk.Credentials {
	return zendesk.Credentials{
		Subdomain: c.Zendesk.Subdomain,
		Email:     c.Zendesk.Email,
		APIToken:  c.Zendesk.APIToken,
	}
}
