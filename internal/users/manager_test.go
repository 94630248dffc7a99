package users

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	manager, err := NewManager(filepath.Join(t.TempDir(), "users"), nil)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return manager
}

func TestJournalDirSanitizesUserID(t *testing.T) {
	manager := newTestManager(t)

	dir, err := manager.JournalDir("Hana@Example.com")
	if err != nil {
		t.Fatalf("JournalDir failed: %v", err)
	}
	if filepath.Base(filepath.Dir(dir)) != "hana_example_com" {
		t.Fatalf("unexpected user dir: %s", dir)
	}
	if filepath.Base(dir) != "journals" {
		t.Fatalf("expected journals subdir: %s", dir)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	manager := newTestManager(t)

	saved, err := manager.SaveProfile(Profile{UserID: "hana", Username: "hana", Name: "Hana"})
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if saved.CreatedAt == "" || saved.LastLogin == "" {
		t.Fatalf("expected stamps to be set: %+v", saved)
	}

	loaded, err := manager.Profile("hana")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if loaded == nil || loaded.Name != "Hana" {
		t.Fatalf("unexpected profile: %+v", loaded)
	}
}

func TestProfileAbsentReturnsNil(t *testing.T) {
	manager := newTestManager(t)

	profile, err := manager.Profile("nobody")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile != nil {
		t.Fatalf("expected nil for missing profile, got %+v", profile)
	}
}

func TestSaveProfilePreservesCreatedAt(t *testing.T) {
	manager := newTestManager(t)
	manager.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	first, err := manager.SaveProfile(Profile{UserID: "hana"})
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	manager.now = func() time.Time { return time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC) }
	second, err := manager.SaveProfile(Profile{UserID: "hana", Name: "Hana"})
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if second.CreatedAt != first.CreatedAt {
		t.Fatalf("created_at changed: %q -> %q", first.CreatedAt, second.CreatedAt)
	}
	if second.LastLogin == first.LastLogin {
		t.Fatal("last_login should advance")
	}
}

func TestSessionValidity(t *testing.T) {
	manager := newTestManager(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return now }

	if manager.SessionValid("ghost") {
		t.Fatal("missing profile must be invalid")
	}

	if _, err := manager.SaveProfile(Profile{
		UserID:           "fresh",
		SessionExpiresAt: now.Add(time.Hour).Format(time.RFC3339),
	}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if !manager.SessionValid("fresh") {
		t.Fatal("unexpired session must be valid")
	}

	if _, err := manager.SaveProfile(Profile{
		UserID:           "stale",
		SessionExpiresAt: now.Add(-time.Hour).Format(time.RFC3339),
	}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if manager.SessionValid("stale") {
		t.Fatal("expired session must be invalid")
	}
}

func TestListUsers(t *testing.T) {
	manager := newTestManager(t)
	for _, id := range []string{"a", "b"} {
		if _, err := manager.JournalDir(id); err != nil {
			t.Fatalf("JournalDir failed: %v", err)
		}
	}
	ids, err := manager.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 users, got %v", ids)
	}
}
