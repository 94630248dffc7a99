package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bujonow/internal/logging"
	"bujonow/internal/textutil"
)

const profileFileName = "user_data.json"

// Profile is the stored user document. The JSON shape matches documents
// written by earlier versions of the application.
type Profile struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at"`
	LastLogin string `json:"last_login"`
	// SessionExpiresAt bounds the stored session; empty means no session.
	SessionExpiresAt string `json:"session_expires_at,omitempty"`
}

// Manager maps user identifiers to their on-disk scope.
type Manager struct {
	root   string
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// NewManager creates a manager rooted at dir, creating the directory if needed.
func NewManager(dir string, logger *slog.Logger) (*Manager, error) {
	if dir == "" {
		return nil, errors.New("users: root directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("users: create root: %w", err)
	}
	return &Manager{
		root:   dir,
		logger: logging.NewComponentLogger(logger, "users"),
		now:    time.Now,
	}, nil
}

// Normalize sanitizes a caller-supplied user identifier into the token used
// for directory names.
func Normalize(userID string) string {
	return textutil.SanitizeToken(userID)
}

func (m *Manager) userDir(userID string) string {
	return filepath.Join(m.root, Normalize(userID))
}

// JournalDir returns (and creates) the journal root for the user.
func (m *Manager) JournalDir(userID string) (string, error) {
	dir := filepath.Join(m.userDir(userID), "journals")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("users: create journal dir: %w", err)
	}
	return dir, nil
}

// Profile returns the stored profile for the user, or nil when none exists.
func (m *Manager) Profile(userID string) (*Profile, error) {
	data, err := os.ReadFile(filepath.Join(m.userDir(userID), profileFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("users: read profile: %w", err)
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("users: decode profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile persists the profile, stamping created_at on first write.
func (m *Manager) SaveProfile(profile Profile) (*Profile, error) {
	if profile.UserID == "" {
		return nil, errors.New("users: user id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	profile.UserID = Normalize(profile.UserID)
	existing, err := m.Profile(profile.UserID)
	if err != nil {
		return nil, err
	}
	nowStamp := m.now().Format(time.RFC3339)
	if existing != nil && existing.CreatedAt != "" {
		profile.CreatedAt = existing.CreatedAt
	} else if profile.CreatedAt == "" {
		profile.CreatedAt = nowStamp
	}
	if profile.LastLogin == "" {
		profile.LastLogin = nowStamp
	}

	dir := m.userDir(profile.UserID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("users: create user dir: %w", err)
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("users: encode profile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, profileFileName), append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("users: write profile: %w", err)
	}
	return &profile, nil
}

// TouchLastLogin updates the last_login stamp for an existing profile.
// A missing profile is a no-op.
func (m *Manager) TouchLastLogin(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	profile, err := m.Profile(userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}
	profile.LastLogin = m.now().Format(time.RFC3339)
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("users: encode profile: %w", err)
	}
	return os.WriteFile(filepath.Join(m.userDir(userID), profileFileName), append(data, '\n'), 0o644)
}

// SessionValid reports whether the user has a stored session that has not
// expired. Missing profiles, missing sessions, and unparsable stamps are all
// invalid, never errors.
func (m *Manager) SessionValid(userID string) bool {
	profile, err := m.Profile(userID)
	if err != nil || profile == nil || profile.SessionExpiresAt == "" {
		if err != nil && m.logger != nil {
			m.logger.Warn("session check failed", logging.String(logging.FieldUser, Normalize(userID)), logging.Error(err))
		}
		return false
	}
	expires, err := time.Parse(time.RFC3339, profile.SessionExpiresAt)
	if err != nil {
		return false
	}
	return m.now().Before(expires)
}

// List returns the normalized IDs of every user with a data directory.
func (m *Manager) List() ([]string, error) {
	dirEntries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	ids := make([]string, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			ids = append(ids, dirEntry.Name())
		}
	}
	return ids, nil
}
