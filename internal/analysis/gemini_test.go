package analysis

import (
	"context"
	"errors"
	"testing"

	"bujonow/internal/journal"
	"bujonow/internal/services/gemini"
)

type fakeGeminiClient struct {
	analysis gemini.Analysis
	summary  gemini.WeeklySummary
	combined string
	err      error
}

func (f *fakeGeminiClient) AnalyzeEntry(_ context.Context, text string) (gemini.Analysis, error) {
	return f.analysis, f.err
}

func (f *fakeGeminiClient) SummarizeWeek(_ context.Context, combined string) (gemini.WeeklySummary, error) {
	f.combined = combined
	return f.summary, f.err
}

func TestGeminiAnalyzerNormalizesResult(t *testing.T) {
	client := &fakeGeminiClient{analysis: gemini.Analysis{
		Emotion:     "grateful",
		Themes:      []string{"connection"},
		Suggestion:  "Keep reaching out.",
		Affirmation: "You are supported.",
	}}
	analyzer := NewGeminiAnalyzer(client)

	result, err := analyzer.AnalyzeEntry(context.Background(), "Saw friends today.")
	if err != nil {
		t.Fatalf("AnalyzeEntry failed: %v", err)
	}
	if result.Emotion != "grateful" || result.Intensity != 10 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.MoodSummary == "" {
		t.Fatal("mood summary should be synthesized")
	}
}

func TestGeminiAnalyzerPropagatesError(t *testing.T) {
	client := &fakeGeminiClient{err: errors.New("quota exceeded")}
	analyzer := NewGeminiAnalyzer(client)

	if _, err := analyzer.AnalyzeEntry(context.Background(), "text"); err == nil {
		t.Fatal("expected error from client")
	}
}

func TestGeminiAnalyzerSummarizeJoinsTexts(t *testing.T) {
	client := &fakeGeminiClient{summary: gemini.WeeklySummary{Summary: "A good week."}}
	analyzer := NewGeminiAnalyzer(client)

	entries := []journal.Entry{
		{Date: "2026-05-01", Content: journal.Content{Text: "monday note"}},
		{Date: "2026-05-02", Content: journal.Content{Text: "tuesday note"}},
	}
	summary, err := analyzer.SummarizeWeek(context.Background(), entries)
	if err != nil {
		t.Fatalf("SummarizeWeek failed: %v", err)
	}
	if summary.Summary != "A good week." {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if client.combined != "monday note tuesday note" {
		t.Fatalf("unexpected combined text: %q", client.combined)
	}
}

func TestGeminiAnalyzerSummarizeEmptyEntries(t *testing.T) {
	analyzer := NewGeminiAnalyzer(&fakeGeminiClient{})
	summary, err := analyzer.SummarizeWeek(context.Background(), nil)
	if err != nil {
		t.Fatalf("SummarizeWeek failed: %v", err)
	}
	if summary.Summary != "No entries found for this week." {
		t.Fatalf("unexpected summary: %q", summary.Summary)
	}
}
