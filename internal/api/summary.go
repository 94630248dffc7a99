package api

import (
	"context"
	"time"

	"bujonow/internal/analysis"
	"bujonow/internal/journal"
	"bujonow/internal/logging"
	"bujonow/internal/report"
)

// WeeklySummary summarizes the seven days ending at the given date (empty
// means today) and stores the summary on the final day's entry.
func (s *JournalService) WeeklySummary(ctx context.Context, userID, endDate string) (analysis.Summary, error) {
	var empty analysis.Summary
	end, err := s.resolveDate(endDate)
	if err != nil {
		return empty, err
	}
	start := end.AddDate(0, 0, -7)

	store, err := s.storeFor(userID)
	if err != nil {
		return empty, err
	}
	found, err := store.Search(journal.SearchQuery{Start: &start, End: &end})
	if err != nil {
		return empty, err
	}
	entries := make([]journal.Entry, 0, len(found))
	for _, entry := range found {
		entries = append(entries, *entry)
	}

	summary, err := s.analyzer.SummarizeWeek(ctx, entries)
	if err != nil {
		_ = s.notifier.NotifyError(ctx, err, "weekly summary")
		return empty, err
	}

	// Persist the summary on the final day when an entry exists there.
	if len(found) > 0 && summary.Summary != "" {
		last := found[len(found)-1]
		if lastDate, parseErr := journal.ParseDate(last.Date); parseErr == nil {
			text := summary.Summary
			if _, updateErr := store.Update(lastDate, journal.UpdateFields{AISummary: &text}); updateErr != nil {
				s.logger.Warn("failed to store weekly summary", logging.Error(updateErr))
			}
		}
	}

	_ = s.notifier.NotifyWeeklySummary(ctx, userID, summary.EmotionTrend)
	return summary, nil
}

// MoodReport returns the mood trend and emotion distribution for a date
// range. Zero bounds default to the store's search window (current month).
func (s *JournalService) MoodReport(ctx context.Context, userID string, start, end *time.Time) ([]report.Point, []report.EmotionCount, error) {
	store, err := s.storeFor(userID)
	if err != nil {
		return nil, nil, err
	}
	found, err := store.Search(journal.SearchQuery{Start: start, End: end})
	if err != nil {
		return nil, nil, err
	}
	entries := make([]journal.Entry, 0, len(found))
	for _, entry := range found {
		entries = append(entries, *entry)
	}
	return report.MoodTrend(entries), report.Distribution(entries), nil
}
