package testsupport

import (
	"path/filepath"
	"testing"

	"bujonow/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults to the offline keyword analyzer and applies any provided
// options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.UsersDir = filepath.Join(base, "users")
	cfg.Paths.UploadsDir = filepath.Join(base, "uploads")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Paths.DefaultUser = "local"
	cfg.Analysis.Provider = "keyword"
	cfg.Analysis.CachePath = filepath.Join(base, "cache", "analysis.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAPIToken sets the API bearer token on the test config.
func WithAPIToken(token string) ConfigOption {
	return func(c *config.Config) {
		c.Paths.APIToken = token
	}
}

// WithProvider overrides the analysis provider on the test config.
func WithProvider(provider string) ConfigOption {
	return func(c *config.Config) {
		c.Analysis.Provider = provider
	}
}

// WithNtfyTopic enables ntfy notifications against the given topic URL.
func WithNtfyTopic(topic string) ConfigOption {
	return func(c *config.Config) {
		c.Notifications.NtfyTopic = topic
		c.Notifications.Entries = true
		c.Notifications.Summaries = true
		c.Notifications.Errors = true
	}
}
