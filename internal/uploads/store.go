package uploads

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"bujonow/internal/logging"
)

// Store persists uploaded media under a root directory.
type Store struct {
	root   string
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates an upload store rooted at dir.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("uploads: root directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create root: %w", err)
	}
	return &Store{
		root:   dir,
		logger: logging.NewComponentLogger(logger, "uploads"),
		now:    time.Now,
	}, nil
}

// allowed extensions per media kind; anything else is rejected.
var allowedExtensions = map[string][]string{
	"audio": {".m4a", ".mp3", ".ogg", ".wav", ".webm"},
	"image": {".jpg", ".jpeg", ".png", ".gif", ".webp"},
}

// Save writes the reader's content under a fresh UUID name and returns the
// stored path. kind selects the accepted extensions ("audio" or "image");
// originalName only contributes its extension.
func (s *Store) Save(kind, originalName string, r io.Reader) (string, error) {
	extensions, ok := allowedExtensions[kind]
	if !ok {
		return "", fmt.Errorf("uploads: unknown media kind %q", kind)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if !contains(extensions, ext) {
		return "", fmt.Errorf("uploads: extension %q not allowed for %s", ext, kind)
	}

	day := s.now().Format("2006-01-02")
	dir := filepath.Join(s.root, kind, day)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("uploads: create directory: %w", err)
	}

	dest := filepath.Join(dir, uuid.NewString()+ext)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("uploads: create file: %w", err)
	}
	written, err := io.Copy(f, r)
	closeErr := f.Close()
	if err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("uploads: write file: %w", err)
	}
	if closeErr != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("uploads: close file: %w", closeErr)
	}

	s.logger.Debug("stored upload",
		logging.String("kind", kind),
		logging.String("path", dest),
		logging.Int64("bytes", written))
	return dest, nil
}

// Remove deletes a stored upload. Paths outside the store root are rejected.
func (s *Store) Remove(path string) error {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("uploads: path %q outside store", path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("uploads: remove: %w", err)
	}
	return nil
}

// List returns stored upload paths for a kind, newest day first.
func (s *Store) List(kind string) ([]string, error) {
	if _, ok := allowedExtensions[kind]; !ok {
		return nil, fmt.Errorf("uploads: unknown media kind %q", kind)
	}
	var paths []string
	root := filepath.Join(s.root, kind)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("uploads: list: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
