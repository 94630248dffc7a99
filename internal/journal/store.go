package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"bujonow/internal/logging"
	"bujonow/internal/textutil"
)

// Store maps (calendar date) -> persisted entry document under a single user
// root. All mutation is read-modify-write of the whole document; a per-date
// mutex keeps concurrent writers from interleaving partial writes, preserving
// last-write-wins without corruption.
type Store struct {
	root   string
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	dates map[string]*sync.Mutex
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("journal: root directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: create root: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		root:   dir,
		logger: logging.NewComponentLogger(logger, "journal"),
		now:    time.Now,
		dates:  make(map[string]*sync.Mutex),
	}, nil
}

// Root returns the directory backing the store.
func (s *Store) Root() string {
	return s.root
}

// EntryParams carries the caller-supplied fields for Create and Record.
type EntryParams struct {
	Text        string
	Analysis    map[string]any
	Date        time.Time // zero value means now
	Tasks       []Task
	Goals       []Goal
	Tags        []string
	Category    string
	ChatHistory []ChatMessage
	AISummary   string
}

// UpdateFields names the fields Update overwrites. Nil fields are left
// untouched; Text is additionally skipped when empty so a blank PATCH cannot
// erase the body.
type UpdateFields struct {
	Text        *string
	Analysis    map[string]any
	Tasks       *[]Task
	Goals       *[]Goal
	Tags        *[]string
	ChatHistory *[]ChatMessage
	AISummary   *string
}

// Create builds a fresh entry for the date and writes it, silently replacing
// anything previously stored there. Callers wanting merge semantics use
// Record instead.
func (s *Store) Create(params EntryParams) (*Entry, error) {
	date := params.Date
	if date.IsZero() {
		date = s.now()
	}
	unlock := s.lockDate(date)
	defer unlock()
	return s.createLocked(params, date)
}

func (s *Store) createLocked(params EntryParams, date time.Time) (*Entry, error) {
	category := params.Category
	if category == "" {
		category = DefaultCategory
	}
	analysis := params.Analysis
	if analysis == nil {
		analysis = map[string]any{}
	}
	entry := &Entry{
		Date:      FormatDate(date),
		Timestamp: s.now().Format(time.RFC3339),
		Category:  category,
		Content: Content{
			Text:        params.Text,
			Tasks:       emptyIfNil(params.Tasks),
			Goals:       emptyIfNil(params.Goals),
			Tags:        emptyIfNil(params.Tags),
			ChatHistory: emptyIfNil(params.ChatHistory),
			AISummary:   AISummary(params.AISummary),
		},
		EmotionAnalysis: analysis,
	}
	s.recomputeMetadata(entry)
	if err := s.save(entry, date); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get returns the decoded document for the exact date, or nil when no entry
// exists. A document that exists but cannot be decoded is an error.
func (s *Store) Get(date time.Time) (*Entry, error) {
	data, err := os.ReadFile(s.entryPath(date))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("journal: read entry %s: %w", FormatDate(date), err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("journal: decode entry %s: %w", FormatDate(date), err)
	}
	return &entry, nil
}

// Update loads the entry for the date, overwrites each explicitly supplied
// field, recomputes metadata, and writes the result. It returns nil without
// writing when no entry exists; it never creates one.
func (s *Store) Update(date time.Time, fields UpdateFields) (*Entry, error) {
	unlock := s.lockDate(date)
	defer unlock()
	return s.updateLocked(date, fields)
}

func (s *Store) updateLocked(date time.Time, fields UpdateFields) (*Entry, error) {
	entry, err := s.Get(date)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	if fields.Text != nil && *fields.Text != "" {
		entry.Content.Text = *fields.Text
	}
	if len(fields.Analysis) > 0 {
		entry.EmotionAnalysis = fields.Analysis
	}
	if fields.Tasks != nil {
		entry.Content.Tasks = emptyIfNil(*fields.Tasks)
	}
	if fields.Goals != nil {
		entry.Content.Goals = emptyIfNil(*fields.Goals)
	}
	if fields.Tags != nil {
		entry.Content.Tags = emptyIfNil(*fields.Tags)
	}
	if fields.ChatHistory != nil {
		entry.Content.ChatHistory = emptyIfNil(*fields.ChatHistory)
	}
	if fields.AISummary != nil {
		entry.Content.AISummary = AISummary(*fields.AISummary)
	}

	s.recomputeMetadata(entry)
	if err := s.save(entry, date); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListAll returns every stored entry sorted ascending by date.
func (s *Store) ListAll() ([]*Entry, error) {
	return s.scan(nil)
}

// SearchQuery bounds and filters a Search scan. Nil Start defaults to the
// first of the current month, nil End to now. Tags match when the entry
// carries any of the requested tags; Emotion is a case-insensitive exact
// match on the primary emotion.
type SearchQuery struct {
	Start   *time.Time
	End     *time.Time
	Tags    []string
	Emotion string
}

// Search scans all stored documents, retaining entries whose date lies in
// [start, end] inclusive and that pass the tag and emotion filters. Results
// are sorted ascending by date. Corrupt documents are skipped and logged.
func (s *Store) Search(query SearchQuery) ([]*Entry, error) {
	now := s.now()
	start := monthStart(now)
	if query.Start != nil {
		start = *query.Start
	}
	end := now
	if query.End != nil {
		end = *query.End
	}
	startKey := FormatDate(start)
	endKey := FormatDate(end)

	return s.scan(func(entry *Entry) bool {
		if entry.Date < startKey || entry.Date > endKey {
			return false
		}
		if len(query.Tags) > 0 && !hasAnyTag(entry.Content.Tags, query.Tags) {
			return false
		}
		if query.Emotion != "" && !strings.EqualFold(entry.PrimaryEmotion(), query.Emotion) {
			return false
		}
		return true
	})
}

// scan walks the store, decoding every .json document and keeping those the
// filter accepts (nil filter keeps everything). Unreadable or malformed
// documents are logged and skipped; the scan continues.
func (s *Store) scan(keep func(*Entry) bool) ([]*Entry, error) {
	var entries []*Entry
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".json" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable entry", logging.String("path", path), logging.Error(err))
			return nil
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			s.logger.Warn("skipping malformed entry", logging.String("path", path), logging.Error(err))
			return nil
		}
		if _, err := ParseDate(entry.Date); err != nil {
			s.logger.Warn("skipping entry with unparsable date", logging.String("path", path), logging.Error(err))
			return nil
		}
		if keep == nil || keep(&entry) {
			entries = append(entries, &entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("journal: scan entries: %w", err)
	}
	sortByDate(entries)
	return entries, nil
}

func (s *Store) recomputeMetadata(entry *Entry) {
	entry.Metadata = Metadata{
		LastModified:   s.now().Format(time.RFC3339),
		WordCount:      textutil.WordCount(entry.Content.Text),
		HasTasks:       len(entry.Content.Tasks) > 0,
		HasGoals:       len(entry.Content.Goals) > 0,
		HasChatHistory: len(entry.Content.ChatHistory) > 0,
		HasAISummary:   entry.Content.AISummary != "",
	}
}

// save writes the whole document, indented UTF-8 JSON. Failures propagate;
// there is no rollback or partial-write protection.
func (s *Store) save(entry *Entry, date time.Time) error {
	path := s.entryPath(date)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("journal: create month directory: %w", err)
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("journal: encode entry %s: %w", entry.Date, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("journal: write entry %s: %w", entry.Date, err)
	}
	return nil
}

// lockDate serializes writers for one calendar date.
func (s *Store) lockDate(date time.Time) func() {
	key := FormatDate(date)
	s.mu.Lock()
	lock, ok := s.dates[key]
	if !ok {
		lock = &sync.Mutex{}
		s.dates[key] = lock
	}
	s.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}

func emptyIfNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

func sortByDate(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}

func hasAnyTag(entryTags, wanted []string) bool {
	for _, tag := range wanted {
		for _, have := range entryTags {
			if have == tag {
				return true
			}
		}
	}
	return false
}
