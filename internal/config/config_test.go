package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Analysis.Provider != "keyword" {
		t.Fatalf("unexpected default provider: %q", cfg.Analysis.Provider)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected default log format: %q", cfg.Logging.Format)
	}
	if cfg.Paths.DefaultUser != "local" {
		t.Fatalf("unexpected default user: %q", cfg.Paths.DefaultUser)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, `
[paths]
users_dir = "`+filepath.Join(base, "users")+`"
default_user = "hana"

[analysis]
provider = "keyword"

[logging]
format = "json"
level = "debug"
`)

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Paths.UsersDir != filepath.Join(base, "users") {
		t.Fatalf("users_dir not applied: %q", cfg.Paths.UsersDir)
	}
	if cfg.Paths.DefaultUser != "hana" {
		t.Fatalf("default_user not applied: %q", cfg.Paths.DefaultUser)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not applied: %+v", cfg.Logging)
	}
}

func TestLoadRejectsGeminiWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	path := writeConfig(t, `
[analysis]
provider = "gemini"
`)

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected error for gemini provider without api key")
	}
	if !strings.Contains(err.Error(), "gemini.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadReadsGeminiKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	path := writeConfig(t, `
[analysis]
provider = "gemini"
`)

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Fatalf("expected env key, got %q", cfg.Gemini.APIKey)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, `
[analysis]
provider = "oracle"
`)

	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestExpandPathResolvesHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := expandPath("~/journals")
	if err != nil {
		t.Fatalf("expandPath failed: %v", err)
	}
	if got != filepath.Join(home, "journals") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := writeConfig(t, "# existing\n")
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestWriteSampleCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[gemini]") {
		t.Fatalf("sample missing sections: %s", data)
	}
}
