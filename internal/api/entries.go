package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"bujonow/internal/journal"
	"bujonow/internal/logging"
)

// RecordText saves a text entry for the date, merging into any existing
// entry. An empty date string means today.
func (s *JournalService) RecordText(ctx context.Context, userID, date, text string) (*journal.Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("journal text cannot be empty")
	}
	entryDate, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	store, err := s.storeFor(userID)
	if err != nil {
		return nil, err
	}

	entry, err := store.Record(journal.EntryParams{
		Text:     text,
		Analysis: s.analyze(ctx, text),
		Date:     entryDate,
	})
	if err != nil {
		_ = s.notifier.NotifyError(ctx, err, "entry store")
		return nil, err
	}

	s.logger.Info("entry recorded",
		logging.String(logging.FieldUser, userID),
		logging.String("date", entry.Date),
		logging.String("emotion", entry.PrimaryEmotion()))
	_ = s.notifier.NotifyEntrySaved(ctx, userID, entry.Date, entry.PrimaryEmotion())
	return entry, nil
}

// Entry returns the stored entry for a date, or nil when absent.
func (s *JournalService) Entry(ctx context.Context, userID, date string) (*journal.Entry, error) {
	entryDate, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	store, err := s.storeFor(userID)
	if err != nil {
		return nil, err
	}
	return store.Get(entryDate)
}

// UpdateEntry overwrites the supplied fields on an existing entry. A missing
// entry returns nil without writing.
func (s *JournalService) UpdateEntry(ctx context.Context, userID, date string, fields journal.UpdateFields) (*journal.Entry, error) {
	entryDate, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	store, err := s.storeFor(userID)
	if err != nil {
		return nil, err
	}
	return store.Update(entryDate, fields)
}

// Search returns entries matching the query, oldest first.
func (s *JournalService) Search(ctx context.Context, userID string, query journal.SearchQuery) ([]*journal.Entry, error) {
	store, err := s.storeFor(userID)
	if err != nil {
		return nil, err
	}
	return store.Search(query)
}

// ListAll returns every stored entry for the user, oldest first.
func (s *JournalService) ListAll(ctx context.Context, userID string) ([]*journal.Entry, error) {
	store, err := s.storeFor(userID)
	if err != nil {
		return nil, err
	}
	return store.ListAll()
}

// resolveDate parses a YYYY-MM-DD date, with empty meaning today.
func (s *JournalService) resolveDate(date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return time.Now(), nil
	}
	return journal.ParseDate(date)
}
