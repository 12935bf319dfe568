// Package config loads Grounds configuration from defaults, file, env, and flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/grounds-studio/grounds/internal/tokens"
)

// Config is the full application configuration.
type Config struct {
	Tokens  TokensConfig  `mapstructure:"tokens"`
	Server  ServerConfig  `mapstructure:"server"`
	Mail    MailConfig    `mapstructure:"mail"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// TokensConfig locates the design-token sources and generated stylesheet.
// Relative paths are resolved against Root.
type TokensConfig struct {
	Root       string `mapstructure:"root"`
	Base       string `mapstructure:"base"`
	Aliases    string `mapstructure:"aliases"`
	Typography string `mapstructure:"typography"`
	Output     string `mapstructure:"output"`
	Policy     string `mapstructure:"policy"`
}

// ServerConfig configures the waitlist HTTP server.
type ServerConfig struct {
	Listen          string          `mapstructure:"listen"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
	// TrustForwarded keys rate limiting on X-Forwarded-For. Only enable
	// behind a reverse proxy that overwrites the header.
	TrustForwarded bool `mapstructure:"trust_forwarded"`
}

// RateLimitConfig bounds waitlist submissions per client.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// MailConfig selects and configures the outbound mail provider.
type MailConfig struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	From     string        `mapstructure:"from"`
	To       string        `mapstructure:"to"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// StoreConfig locates the SQLite signup log. An empty Path disables it.
type StoreConfig struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMs int    `mapstructure:"busy_timeout_ms"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TUIConfig configures the terminal token preview.
type TUIConfig struct {
	Theme string `mapstructure:"theme"`
}

// Mail providers.
const (
	MailProviderResend = "resend"
	MailProviderLog    = "log"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Tokens: TokensConfig{
			Root:       ".",
			Base:       tokens.DefaultBasePath,
			Aliases:    tokens.DefaultAliasesPath,
			Typography: tokens.DefaultTypographyPath,
			Output:     tokens.DefaultOutputPath,
		},
		Server: ServerConfig{
			Listen:          ":3000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 0.2,
				Burst:             5,
			},
		},
		Mail: MailConfig{
			Provider: MailProviderLog,
			Endpoint: "https://api.resend.com/emails",
			From:     "Grounds Waitlist <onboarding@resend.dev>",
			Timeout:  10 * time.Second,
		},
		Store: StoreConfig{
			BusyTimeoutMs: 5000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		TUI: TUIConfig{
			Theme: "site",
		},
	}
}

// TokenPaths resolves the token file locations.
func (c *Config) TokenPaths() tokens.Paths {
	root := c.Tokens.Root
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	resolve := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(root, path)
	}

	return tokens.Paths{
		Root:       root,
		Base:       resolve(c.Tokens.Base),
		Aliases:    resolve(c.Tokens.Aliases),
		Typography: resolve(c.Tokens.Typography),
		Output:     resolve(c.Tokens.Output),
	}
}

// PolicyPath resolves the literal policy file, or "" for the builtin policy.
func (c *Config) PolicyPath() string {
	if strings.TrimSpace(c.Tokens.Policy) == "" {
		return ""
	}
	if filepath.IsAbs(c.Tokens.Policy) {
		return c.Tokens.Policy
	}
	return filepath.Join(c.TokenPaths().Root, c.Tokens.Policy)
}

// StorePath resolves the signup database path, or "" when disabled.
func (c *Config) StorePath() string {
	path := strings.TrimSpace(c.Store.Path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.TokenPaths().Root, path)
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []string

	if c.Tokens.Base == "" || c.Tokens.Aliases == "" || c.Tokens.Typography == "" {
		errs = append(errs, "tokens.base, tokens.aliases and tokens.typography are required")
	}
	if c.Tokens.Output == "" {
		errs = append(errs, "tokens.output is required")
	}

	if c.Server.Listen == "" {
		errs = append(errs, "server.listen is required")
	}
	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, "server.rate_limit.requests_per_second must be positive")
		}
		if c.Server.RateLimit.Burst <= 0 {
			errs = append(errs, "server.rate_limit.burst must be positive")
		}
	}

	switch c.Mail.Provider {
	case MailProviderLog:
	case MailProviderResend:
		if c.Mail.APIKey == "" {
			errs = append(errs, "mail.api_key is required for the resend provider (RESEND_API_KEY)")
		}
		if c.Mail.To == "" {
			errs = append(errs, "mail.to is required for the resend provider (CONTACT_EMAIL)")
		}
		if c.Mail.Endpoint == "" {
			errs = append(errs, "mail.endpoint is required for the resend provider")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown mail.provider %q (want %s or %s)", c.Mail.Provider, MailProviderResend, MailProviderLog))
	}
	if c.Mail.From == "" {
		errs = append(errs, "mail.from is required")
	}

	if c.Store.Path != "" && c.Store.BusyTimeoutMs < 0 {
		errs = append(errs, "store.busy_timeout_ms must not be negative")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("unknown logging.format %q", c.Logging.Format))
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}
	return nil
}
