package api

import (
	"context"
	"time"

	"bujonow/internal/journal"
	"bujonow/internal/logging"
)

// Chat answers a question about the user's journal, grounded in the week of
// entries ending at the chat date (empty means today), and appends the
// exchange to that day's chat history. When no entry exists there, a
// chat-only entry is created to hold it.
func (s *JournalService) Chat(ctx context.Context, userID, date, message string) (string, error) {
	entryDate, err := s.resolveDate(date)
	if err != nil {
		return "", err
	}
	store, err := s.storeFor(userID)
	if err != nil {
		return "", err
	}

	weekAgo := entryDate.AddDate(0, 0, -7)
	recent, err := store.Search(journal.SearchQuery{Start: &weekAgo, End: &entryDate})
	if err != nil {
		// A failed scan degrades to an uncontextualized reply.
		s.logger.Warn("chat context scan failed", logging.Error(err))
		recent = nil
	}
	entries := make([]journal.Entry, 0, len(recent))
	for _, entry := range recent {
		entries = append(entries, *entry)
	}

	reply := s.chat.Reply(message, entries)

	stamp := time.Now().Format(time.RFC3339)
	exchange := []journal.ChatMessage{
		{Role: "user", Content: message, Timestamp: stamp},
		{Role: "assistant", Content: reply, Timestamp: stamp},
	}

	existing, err := store.Get(entryDate)
	if err != nil {
		return reply, err
	}
	if existing != nil {
		history := append(append([]journal.ChatMessage{}, existing.Content.ChatHistory...), exchange...)
		_, err = store.Update(entryDate, journal.UpdateFields{ChatHistory: &history})
		return reply, err
	}

	_, err = store.Create(journal.EntryParams{
		Date:        entryDate,
		Tags:        []string{"chat"},
		Category:    "chat",
		ChatHistory: exchange,
		Analysis: map[string]any{
			"primary_emotion":   "neutral",
			"emotion_intensity": 5,
			"emotional_themes":  []string{"chat"},
			"mood_summary":      "Chat interaction with journal assistant",
			"suggested_actions": []string{"Consider writing a journal entry for today"},
		},
	})
	return reply, err
}
