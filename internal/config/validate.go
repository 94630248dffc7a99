package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Paths.UsersDir == "" {
		return errors.New("paths.users_dir must be set")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	switch c.Analysis.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			defaultPath, err := DefaultConfigPath()
			if err != nil {
				defaultPath = "~/.config/bujonow/config.toml"
			}
			return fmt.Errorf("gemini.api_key is required when analysis.provider is \"gemini\". Set GEMINI_API_KEY env var or edit %s (create with 'bujonow config init')", defaultPath)
		}
	case "keyword":
	default:
		return fmt.Errorf("analysis.provider must be \"gemini\" or \"keyword\", got %q", c.Analysis.Provider)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
