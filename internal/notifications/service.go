package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bujonow/internal/config"
)

const userAgent = "BujoNow-Go/0.1.0"

// Service defines the notification surface exposed to journal components.
type Service interface {
	NotifyEntrySaved(ctx context.Context, userID, date, emotion string) error
	NotifyWeeklySummary(ctx context.Context, userID, trend string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:  topic,
		client:    &http.Client{Timeout: timeout},
		entries:   cfg.Notifications.Entries,
		summaries: cfg.Notifications.Summaries,
		errors:    cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	entries   bool
	summaries bool
	errors    bool
}

func (n *ntfyService) NotifyEntrySaved(ctx context.Context, userID, date, emotion string) error {
	if !n.entries {
		return nil
	}
	emotion = strings.TrimSpace(emotion)
	message := fmt.Sprintf("Journal entry saved for %s", date)
	if emotion != "" {
		message = fmt.Sprintf("%s (feeling %s)", message, emotion)
	}
	data := payload{
		title:   "BujoNow - Entry Saved",
		message: message,
		tags:    []string{"bujonow", "entry", userID},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyWeeklySummary(ctx context.Context, userID, trend string) error {
	if !n.summaries {
		return nil
	}
	trend = strings.TrimSpace(trend)
	if trend == "" {
		trend = "mixed"
	}
	data := payload{
		title:   "BujoNow - Weekly Summary",
		message: fmt.Sprintf("Your weekly summary is ready. Emotional trend: %s", trend),
		tags:    []string{"bujonow", "summary", userID},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "BujoNow - Error",
		message:  builder.String(),
		tags:     []string{"bujonow", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "BujoNow - Test",
		message:  "Notification system test",
		tags:     []string{"bujonow", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyEntrySaved(context.Context, string, string, string) error { return nil }
func (noopService) NotifyWeeklySummary(context.Context, string, string) error      { return nil }
func (noopService) NotifyError(context.Context, error, string) error               { return nil }
func (noopService) TestNotification(context.Context) error                         { return nil }
