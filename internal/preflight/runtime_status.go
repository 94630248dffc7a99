package preflight

import (
	"context"
	"strings"

	"bujonow/internal/config"
)

// CheckGeminiFromConfig evaluates Gemini status from config and connectivity.
func CheckGeminiFromConfig(cfg *config.Config) Result {
	const name = "Gemini API"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if cfg.Analysis.Provider != "gemini" {
		return Result{Name: name, Passed: true, Detail: "Disabled (keyword analyzer)"}
	}
	if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
		return Result{Name: name, Detail: "Missing API key"}
	}
	check := CheckGemini(context.Background(), cfg.Gemini)
	if check.Passed {
		return Result{Name: name, Passed: true, Detail: check.Detail}
	}
	return Result{Name: name, Detail: check.Detail}
}

// CheckNtfyFromConfig evaluates push notification status from config.
func CheckNtfyFromConfig(cfg *config.Config) Result {
	const name = "Notifications"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	return Result{Name: name, Passed: true, Detail: "Publishing to " + topic}
}
