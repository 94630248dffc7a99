package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"bujonow/internal/analysis"
	"bujonow/internal/analysis/cache"
	"bujonow/internal/journal"
	"bujonow/internal/logging"
	"bujonow/internal/notifications"
	"bujonow/internal/services/gemini"
	"bujonow/internal/services/whisperx"
	"bujonow/internal/uploads"
	"bujonow/internal/users"
)

// Transcriber converts a recorded voice note into text.
type Transcriber interface {
	TranscribeVoiceNote(ctx context.Context, source, workDir string) (whisperx.Result, error)
}

// VisionAnalyzer describes a photo attached to a journal entry.
type VisionAnalyzer interface {
	AnalyzeImage(ctx context.Context, mimeType string, data []byte) (gemini.ImageAnalysis, error)
}

// Options carries the collaborators JournalService composes.
type Options struct {
	Users       *users.Manager
	Analyzer    analysis.Analyzer
	Provider    string
	Cache       *cache.Store
	Uploads     *uploads.Store
	Transcriber Transcriber
	Vision      VisionAnalyzer
	Notifier    notifications.Service
	Logger      *slog.Logger
}

// JournalService is the application service behind the CLI and HTTP API.
type JournalService struct {
	users       *users.Manager
	analyzer    analysis.Analyzer
	provider    string
	cache       *cache.Store
	uploads     *uploads.Store
	transcriber Transcriber
	vision      VisionAnalyzer
	notifier    notifications.Service
	chat        *analysis.ChatResponder
	logger      *slog.Logger

	mu     sync.Mutex
	stores map[string]*journal.Store
}

// NewJournalService wires the service. Users and Analyzer are required; the
// rest degrade to noops when absent.
func NewJournalService(opts Options) (*JournalService, error) {
	if opts.Users == nil {
		return nil, errors.New("api: users manager required")
	}
	if opts.Analyzer == nil {
		return nil, errors.New("api: analyzer required")
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &JournalService{
		users:       opts.Users,
		analyzer:    opts.Analyzer,
		provider:    opts.Provider,
		cache:       opts.Cache,
		uploads:     opts.Uploads,
		transcriber: opts.Transcriber,
		vision:      opts.Vision,
		notifier:    notifier,
		chat:        analysis.NewChatResponder(),
		logger:      logging.NewComponentLogger(opts.Logger, "journal-service"),
		stores:      make(map[string]*journal.Store),
	}, nil
}

// storeFor returns (creating on first use) the entry store for a user.
func (s *JournalService) storeFor(userID string) (*journal.Store, error) {
	key := users.Normalize(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores[key]; ok {
		return store, nil
	}
	dir, err := s.users.JournalDir(userID)
	if err != nil {
		return nil, err
	}
	store, err := journal.NewStore(dir, s.logger)
	if err != nil {
		return nil, err
	}
	s.stores[key] = store
	return store, nil
}

// analyze runs the analyzer with the cache in front of it. A nil result map
// means analysis failed; the caller stores the entry without a payload.
func (s *JournalService) analyze(ctx context.Context, text string) map[string]any {
	if s.cache != nil {
		if result, found, err := s.cache.Lookup(ctx, text); err == nil && found {
			return analysis.ToEmotionAnalysis(result)
		} else if err != nil {
			s.logger.Warn("analysis cache lookup failed", logging.Error(err))
		}
	}

	result, err := s.analyzer.AnalyzeEntry(ctx, text)
	if err != nil {
		s.logger.Warn("entry analysis failed", logging.Error(err))
		_ = s.notifier.NotifyError(ctx, err, "entry analysis")
		return nil
	}
	if s.cache != nil {
		if err := s.cache.Store(ctx, text, s.provider, result); err != nil {
			s.logger.Warn("analysis cache store failed", logging.Error(err))
		}
	}
	return analysis.ToEmotionAnalysis(result)
}

type noopNotifier struct{}

func (noopNotifier) NotifyEntrySaved(context.Context, string, string, string) error { return nil }
func (noopNotifier) NotifyWeeklySummary(context.Context, string, string) error      { return nil }
func (noopNotifier) NotifyError(context.Context, error, string) error               { return nil }
func (noopNotifier) TestNotification(context.Context) error                         { return nil }

// readLimited reads an upload, refusing anything above maxUploadBytes.
const maxUploadBytes = 32 << 20

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("upload exceeds %d bytes", maxUploadBytes)
	}
	return data, nil
}
