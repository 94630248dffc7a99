package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bujonow/internal/journal"
)

var titleCaser = cases.Title(language.English)

// emotionLabel renders an emotion key for display ("happy" -> "Happy").
func emotionLabel(emotion string) string {
	emotion = strings.TrimSpace(emotion)
	if emotion == "" {
		return "Unknown"
	}
	return titleCaser.String(emotion)
}

// preview truncates text to at most n runes for table cells.
func preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// printEntry writes a full journal entry in a readable block format.
func printEntry(out io.Writer, entry *journal.Entry) {
	fmt.Fprintf(out, "Date:     %s\n", entry.Date)
	if entry.Category != "" {
		fmt.Fprintf(out, "Category: %s\n", entry.Category)
	}
	if emotion := entry.PrimaryEmotion(); emotion != "" {
		fmt.Fprintf(out, "Emotion:  %s\n", emotionLabel(emotion))
	}
	if len(entry.Content.Tags) > 0 {
		fmt.Fprintf(out, "Tags:     %s\n", strings.Join(entry.Content.Tags, ", "))
	}
	if entry.Content.Text != "" {
		fmt.Fprintf(out, "\n%s\n", entry.Content.Text)
	}
	if summary, ok := entry.EmotionAnalysis["mood_summary"].(string); ok && summary != "" {
		fmt.Fprintf(out, "\nMood: %s\n", summary)
	}
	if affirmation, ok := entry.EmotionAnalysis["affirmation"].(string); ok && affirmation != "" {
		fmt.Fprintf(out, "Affirmation: %s\n", affirmation)
	}
	if entry.Content.AISummary != "" {
		fmt.Fprintf(out, "\nWeekly summary: %s\n", entry.Content.AISummary)
	}
	if len(entry.Content.ChatHistory) > 0 {
		fmt.Fprintf(out, "\nChat (%d messages):\n", len(entry.Content.ChatHistory))
		for _, msg := range entry.Content.ChatHistory {
			fmt.Fprintf(out, "  %s: %s\n", msg.Role, msg.Content)
		}
	}
}

// entryRows converts entries into table rows of date, emotion, words, preview.
func entryRows(entries []*journal.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.Date,
			emotionLabel(entry.PrimaryEmotion()),
			fmt.Sprintf("%d", entry.Metadata.WordCount),
			preview(entry.Content.Text, 48),
		})
	}
	return rows
}
