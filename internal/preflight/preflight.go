package preflight

import (
	"context"

	"bujonow/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Users directory (always checked)
	results = append(results, CheckDirectoryAccess("Users directory", cfg.Paths.UsersDir))
	results = append(results, CheckDiskSpace("Disk space", cfg.Paths.UsersDir))

	// Uploads directory (when configured)
	if cfg.Paths.UploadsDir != "" {
		results = append(results, CheckDirectoryAccess("Uploads directory", cfg.Paths.UploadsDir))
	}

	// Gemini API
	if cfg.Analysis.Provider == "gemini" {
		results = append(results, CheckGemini(ctx, cfg.Gemini))
	}

	return results
}
