package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. GROUNDS_SERVER_LISTEN.
const EnvPrefix = "GROUNDS"

var envKeyReplacer = strings.NewReplacer(".", "_")

// Loader reads configuration into a Config.
type Loader struct {
	v          *viper.Viper
	configFile string
	dotenv     []string
}

// NewLoader creates a loader bound to v. Pass nil for a fresh viper instance.
func NewLoader(v *viper.Viper) *Loader {
	if v == nil {
		v = viper.New()
	}
	return &Loader{v: v}
}

// SetConfigFile forces a specific config file instead of the search path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// SetDotenvFiles overrides the .env files loaded before reading the environment.
func (l *Loader) SetDotenvFiles(paths ...string) {
	l.dotenv = append([]string{}, paths...)
}

// Viper exposes the underlying instance so commands can bind flags.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load resolves defaults, config file, .env, and environment into a Config.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDotenv(); err != nil {
		return nil, err
	}

	setDefaults(l.v, DefaultConfig())

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(envKeyReplacer)
	if err := l.v.BindEnv("mail.api_key", EnvPrefix+"_MAIL_API_KEY", "RESEND_API_KEY"); err != nil {
		return nil, err
	}
	if err := l.v.BindEnv("mail.to", EnvPrefix+"_MAIL_TO", "CONTACT_EMAIL"); err != nil {
		return nil, err
	}

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName("grounds")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		if dir := ConfigDir(); dir != "" {
			l.v.AddConfigPath(dir)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || l.configFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ConfigFileUsed reports the config file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) loadDotenv() error {
	files := l.dotenv
	if files == nil {
		files = []string{".env"}
	}
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// Existing environment variables take precedence.
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// ConfigDir returns the per-user config directory.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "grounds")
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("tokens.root", cfg.Tokens.Root)
	v.SetDefault("tokens.base", cfg.Tokens.Base)
	v.SetDefault("tokens.aliases", cfg.Tokens.Aliases)
	v.SetDefault("tokens.typography", cfg.Tokens.Typography)
	v.SetDefault("tokens.output", cfg.Tokens.Output)
	v.SetDefault("tokens.policy", cfg.Tokens.Policy)

	v.SetDefault("server.listen", cfg.Server.Listen)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	v.SetDefault("server.rate_limit.enabled", cfg.Server.RateLimit.Enabled)
	v.SetDefault("server.rate_limit.requests_per_second", cfg.Server.RateLimit.RequestsPerSecond)
	v.SetDefault("server.rate_limit.burst", cfg.Server.RateLimit.Burst)
	v.SetDefault("server.trust_forwarded", cfg.Server.TrustForwarded)

	v.SetDefault("mail.provider", cfg.Mail.Provider)
	v.SetDefault("mail.api_key", cfg.Mail.APIKey)
	v.SetDefault("mail.endpoint", cfg.Mail.Endpoint)
	v.SetDefault("mail.from", cfg.Mail.From)
	v.SetDefault("mail.to", cfg.Mail.To)
	v.SetDefault("mail.timeout", cfg.Mail.Timeout)

	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("store.busy_timeout_ms", cfg.Store.BusyTimeoutMs)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("tui.theme", cfg.TUI.Theme)
}
