package testsupport

import (
	"testing"

	"bujonow/internal/analysis"
	"bujonow/internal/api"
	"bujonow/internal/config"
	"bujonow/internal/logging"
	"bujonow/internal/uploads"
	"bujonow/internal/users"
)

// MustService builds a JournalService backed by the config's temp
// directories and the offline keyword analyzer.
func MustService(t testing.TB, cfg *config.Config) *api.JournalService {
	t.Helper()

	logger := logging.NewNop()
	manager, err := users.NewManager(cfg.Paths.UsersDir, logger)
	if err != nil {
		t.Fatalf("users.NewManager: %v", err)
	}
	uploadStore, err := uploads.NewStore(cfg.Paths.UploadsDir, logger)
	if err != nil {
		t.Fatalf("uploads.NewStore: %v", err)
	}
	service, err := api.NewJournalService(api.Options{
		Users:    manager,
		Analyzer: analysis.NewKeywordAnalyzer(),
		Provider: cfg.Analysis.Provider,
		Uploads:  uploadStore,
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("api.NewJournalService: %v", err)
	}
	return service
}
