package notifications

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bujonow/internal/config"
)

type capturedRequest struct {
	body     string
	title    string
	tags     string
	priority string
}

func newCaptureServer(t *testing.T, captured *[]capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*captured = append(*captured, capturedRequest{
			body:     string(body),
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
		})
		w.WriteHeader(http.StatusOK)
	}))
}

func serviceWithTopic(topic string) *config.Config {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = topic
	cfg.Notifications.Entries = true
	cfg.Notifications.Summaries = true
	cfg.Notifications.Errors = true
	return &cfg
}

func TestNoTopicReturnsNoop(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	service := NewService(&cfg)
	if _, ok := service.(noopService); !ok {
		t.Fatalf("expected noop service, got %T", service)
	}
	if err := service.NotifyEntrySaved(context.Background(), "local", "2026-05-01", "happy"); err != nil {
		t.Fatalf("noop must not error: %v", err)
	}
}

func TestNotifyEntrySavedSendsHeaders(t *testing.T) {
	var captured []capturedRequest
	server := newCaptureServer(t, &captured)
	defer server.Close()

	service := NewService(serviceWithTopic(server.URL))
	if err := service.NotifyEntrySaved(context.Background(), "local", "2026-05-01", "grateful"); err != nil {
		t.Fatalf("NotifyEntrySaved failed: %v", err)
	}
	if len(captured) != 1 {
		t.Fatalf("expected 1 request, got %d", len(captured))
	}
	got := captured[0]
	if got.title != "BujoNow - Entry Saved" {
		t.Fatalf("unexpected title: %q", got.title)
	}
	if !strings.Contains(got.body, "2026-05-01") || !strings.Contains(got.body, "grateful") {
		t.Fatalf("unexpected body: %q", got.body)
	}
	if !strings.Contains(got.tags, "entry") {
		t.Fatalf("unexpected tags: %q", got.tags)
	}
}

func TestEntryNotificationsCanBeDisabled(t *testing.T) {
	var captured []capturedRequest
	server := newCaptureServer(t, &captured)
	defer server.Close()

	cfg := serviceWithTopic(server.URL)
	cfg.Notifications.Entries = false
	service := NewService(cfg)
	if err := service.NotifyEntrySaved(context.Background(), "local", "2026-05-01", "happy"); err != nil {
		t.Fatalf("NotifyEntrySaved failed: %v", err)
	}
	if len(captured) != 0 {
		t.Fatalf("disabled category must not send, got %d requests", len(captured))
	}
}

func TestNotifyErrorSetsHighPriority(t *testing.T) {
	var captured []capturedRequest
	server := newCaptureServer(t, &captured)
	defer server.Close()

	service := NewService(serviceWithTopic(server.URL))
	if err := service.NotifyError(context.Background(), errors.New("disk full"), "entry store"); err != nil {
		t.Fatalf("NotifyError failed: %v", err)
	}
	got := captured[0]
	if got.priority != "high" {
		t.Fatalf("expected high priority, got %q", got.priority)
	}
	if !strings.Contains(got.body, "entry store") || !strings.Contains(got.body, "disk full") {
		t.Fatalf("unexpected body: %q", got.body)
	}
}

func TestSendSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	service := NewService(serviceWithTopic(server.URL))
	err := service.TestNotification(context.Background())
	if err == nil {
		t.Fatal("expected error from 403 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("error should carry status: %v", err)
	}
}
