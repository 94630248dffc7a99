package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"bujonow/internal/api"
	"bujonow/internal/config"
	"bujonow/internal/logging"
)

type commandContext struct {
	configFlag *string
	userFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	serviceOnce sync.Once
	service     *api.JournalService
	serviceErr  error
}

func newCommandContext(configFlag, userFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		userFlag:   userFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// journalService builds the service on first use. The CLI logs at warn level
// so command output stays clean; the log file still captures everything.
func (c *commandContext) journalService() (*api.JournalService, error) {
	c.serviceOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.serviceErr = err
			return
		}
		logger, err := logging.NewFromSettings("warn", cfg.Logging.Format, cfg.Paths.LogDir)
		if err != nil {
			c.serviceErr = err
			return
		}
		c.service, c.serviceErr = api.NewFromConfig(cfg, logger)
	})
	return c.service, c.serviceErr
}

// user resolves the acting journal user: --user flag first, then the
// configured default.
func (c *commandContext) user() string {
	if c.userFlag != nil {
		if user := strings.TrimSpace(*c.userFlag); user != "" {
			return user
		}
	}
	if cfg := c.configValue(); cfg != nil {
		return cfg.Paths.DefaultUser
	}
	return "local"
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
