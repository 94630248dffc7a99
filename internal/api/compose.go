package api

import (
	"log/slog"

	"bujonow/internal/analysis"
	"bujonow/internal/analysis/cache"
	"bujonow/internal/config"
	"bujonow/internal/deps"
	"bujonow/internal/logging"
	"bujonow/internal/notifications"
	"bujonow/internal/services/gemini"
	"bujonow/internal/services/whisperx"
	"bujonow/internal/uploads"
	"bujonow/internal/users"
)

// NewFromConfig assembles the JournalService the way both binaries need it:
// analyzer picked by provider, cache and uploads when configured, and voice
// transcription only when enabled. A broken analysis cache is logged and
// skipped rather than refusing to start; entries still save without it.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*JournalService, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	manager, err := users.NewManager(cfg.Paths.UsersDir, logger)
	if err != nil {
		return nil, err
	}

	opts := Options{
		Users:    manager,
		Provider: cfg.Analysis.Provider,
		Notifier: notifications.NewService(cfg),
		Logger:   logger,
	}

	var geminiClient *gemini.Client
	if cfg.Analysis.Provider == "gemini" {
		geminiClient = gemini.NewClient(gemini.Config{
			APIKey:         cfg.Gemini.APIKey,
			BaseURL:        cfg.Gemini.BaseURL,
			Model:          cfg.Gemini.Model,
			VisionModel:    cfg.Gemini.VisionModel,
			TimeoutSeconds: cfg.Gemini.TimeoutSeconds,
		})
		opts.Analyzer = analysis.NewGeminiAnalyzer(geminiClient)
		opts.Vision = geminiClient
	} else {
		opts.Analyzer = analysis.NewKeywordAnalyzer()
	}

	if cfg.Analysis.CachePath != "" {
		store, err := cache.Open(cfg.Analysis.CachePath)
		if err != nil {
			logger.Warn("analysis cache unavailable", logging.Error(err))
		} else {
			opts.Cache = store
		}
	}

	if cfg.Paths.UploadsDir != "" {
		store, err := uploads.NewStore(cfg.Paths.UploadsDir, logger)
		if err != nil {
			return nil, err
		}
		opts.Uploads = store
	}

	if cfg.Transcription.Enabled {
		opts.Transcriber = whisperx.NewService(whisperx.Config{
			Model:       cfg.Transcription.WhisperXModel,
			CUDAEnabled: cfg.Transcription.CUDAEnabled,
		}, deps.ResolveFFmpegPath(cfg.Transcription.FFmpegBinary))
	}

	return NewJournalService(opts)
}
