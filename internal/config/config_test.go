package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	loader := NewLoader(nil)
	loader.SetDotenvFiles()
	return loader
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := newTestLoader(t).Load()
	require.NoError(t, err)

	want := DefaultConfig()
	require.Equal(t, want.Tokens, cfg.Tokens)
	require.Equal(t, want.Server, cfg.Server)
	require.Equal(t, want.Mail.Provider, cfg.Mail.Provider)
	require.Equal(t, 10*time.Second, cfg.Mail.Timeout)
	require.False(t, cfg.Server.TrustForwarded)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grounds.yaml")
	data := `tokens:
  root: site
  output: public/tokens.css
server:
  listen: ":8080"
  rate_limit:
    burst: 2
  trust_forwarded: true
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loader := newTestLoader(t)
	loader.SetConfigFile(path)
	cfg, err := loader.Load()
	require.NoError(t, err)

	require.Equal(t, "site", cfg.Tokens.Root)
	require.Equal(t, "public/tokens.css", cfg.Tokens.Output)
	require.Equal(t, ":8080", cfg.Server.Listen)
	require.Equal(t, 2, cfg.Server.RateLimit.Burst)
	require.True(t, cfg.Server.TrustForwarded)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, path, loader.ConfigFileUsed())
}

func TestLoadMissingExplicitConfigFile(t *testing.T) {
	loader := newTestLoader(t)
	loader.SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := loader.Load()
	require.Error(t, err)
}

func TestLoadEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GROUNDS_SERVER_LISTEN", ":9999")
	t.Setenv("GROUNDS_MAIL_PROVIDER", "resend")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("CONTACT_EMAIL", "team@example.com")

	cfg, err := newTestLoader(t).Load()
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Server.Listen)
	require.Equal(t, MailProviderResend, cfg.Mail.Provider)
	require.Equal(t, "re_test", cfg.Mail.APIKey)
	require.Equal(t, "team@example.com", cfg.Mail.To)
	require.NoError(t, cfg.Validate())
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("GROUNDS_LOGGING_LEVEL=warn\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("GROUNDS_LOGGING_LEVEL") })

	loader := NewLoader(nil)
	loader.SetDotenvFiles(envPath)
	cfg, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateAccumulatesErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Listen = ""
	cfg.Mail.Provider = MailProviderResend
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"server.listen", "mail.api_key", "mail.to", "logging.format"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mail.Provider = "smtp"
	require.ErrorContains(t, cfg.Validate(), `unknown mail.provider "smtp"`)
}

func TestTokenPaths(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Tokens.Root = root
	cfg.Tokens.Output = "/abs/out.css"
	cfg.Tokens.Policy = "policy.yaml"

	paths := cfg.TokenPaths()
	require.Equal(t, root, paths.Root)
	require.Equal(t, filepath.Join(root, "design-system", "tokens", "base.tokens.json"), paths.Base)
	require.Equal(t, "/abs/out.css", paths.Output)
	require.Equal(t, filepath.Join(root, "policy.yaml"), cfg.PolicyPath())

	cfg.Tokens.Policy = ""
	require.Equal(t, "", cfg.PolicyPath())
}

func TestStorePath(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Tokens.Root = root

	require.Equal(t, "", cfg.StorePath())

	cfg.Store.Path = "data/waitlist.db"
	require.Equal(t, filepath.Join(root, "data", "waitlist.db"), cfg.StorePath())

	cfg.Store.Path = "/var/lib/grounds/waitlist.db"
	require.Equal(t, "/var/lib/grounds/waitlist.db", cfg.StorePath())
}

func TestLoadStoreFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GROUNDS_STORE_PATH", "signups.db")

	cfg, err := newTestLoader(t).Load()
	require.NoError(t, err)
	require.Equal(t, "signups.db", cfg.Store.Path)
	require.Equal(t, 5000, cfg.Store.BusyTimeoutMs)
}
