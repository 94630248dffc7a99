package analysis

import (
	"context"
	"strings"
	"testing"

	"bujonow/internal/journal"
)

func entryWithEmotion(date, emotion string) journal.Entry {
	return journal.Entry{
		Date:            date,
		EmotionAnalysis: map[string]any{"primary_emotion": emotion},
	}
}

func TestKeywordAnalyzerDetectsEmotion(t *testing.T) {
	analyzer := NewKeywordAnalyzer()

	result, err := analyzer.AnalyzeEntry(context.Background(), "I am so grateful and thankful for my friends.")
	if err != nil {
		t.Fatalf("AnalyzeEntry failed: %v", err)
	}
	if result.Emotion != "grateful" {
		t.Fatalf("expected grateful, got %q", result.Emotion)
	}
	if result.Affirmation != keywordAffirmations["grateful"] {
		t.Fatalf("unexpected affirmation: %q", result.Affirmation)
	}
	if !strings.Contains(result.MoodSummary, "grateful") {
		t.Fatalf("mood summary should name the emotion: %q", result.MoodSummary)
	}
}

func TestKeywordAnalyzerDefaultsToNeutral(t *testing.T) {
	analyzer := NewKeywordAnalyzer()

	result, err := analyzer.AnalyzeEntry(context.Background(), "Went to the store. Bought bread.")
	if err != nil {
		t.Fatalf("AnalyzeEntry failed: %v", err)
	}
	if result.Emotion != "neutral" {
		t.Fatalf("expected neutral, got %q", result.Emotion)
	}
	if len(result.Themes) != 1 || result.Themes[0] != "general" {
		t.Fatalf("expected general theme, got %v", result.Themes)
	}
}

func TestKeywordAnalyzerExtractsThemes(t *testing.T) {
	analyzer := NewKeywordAnalyzer()

	result, err := analyzer.AnalyzeEntry(context.Background(),
		"Work was stressful, then I did a workout and called a friend.")
	if err != nil {
		t.Fatalf("AnalyzeEntry failed: %v", err)
	}
	if len(result.Themes) > 3 {
		t.Fatalf("themes must be capped at 3: %v", result.Themes)
	}
	joined := strings.Join(result.Themes, ",")
	for _, want := range []string{"work", "health", "relationships"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing theme %q in %v", want, result.Themes)
		}
	}
}

func TestKeywordAnalyzerIsDeterministic(t *testing.T) {
	analyzer := NewKeywordAnalyzer()
	text := "Feeling anxious and worried about the deadline."

	first, err := analyzer.AnalyzeEntry(context.Background(), text)
	if err != nil {
		t.Fatalf("AnalyzeEntry failed: %v", err)
	}
	second, err := analyzer.AnalyzeEntry(context.Background(), text)
	if err != nil {
		t.Fatalf("AnalyzeEntry failed: %v", err)
	}
	if first.Suggestion != second.Suggestion {
		t.Fatalf("suggestion should be stable: %q vs %q", first.Suggestion, second.Suggestion)
	}
}

func TestKeywordSummarizeWeekReportsPredominantEmotion(t *testing.T) {
	analyzer := NewKeywordAnalyzer()
	entries := []journal.Entry{
		entryWithEmotion("2026-05-01", "happy"),
		entryWithEmotion("2026-05-02", "happy"),
		entryWithEmotion("2026-05-03", "sad"),
	}

	summary, err := analyzer.SummarizeWeek(context.Background(), entries)
	if err != nil {
		t.Fatalf("SummarizeWeek failed: %v", err)
	}
	if summary.EmotionTrend != "happy" {
		t.Fatalf("expected happy trend, got %q", summary.EmotionTrend)
	}
	if !strings.Contains(summary.Summary, "3 journal entries") {
		t.Fatalf("summary should count entries: %q", summary.Summary)
	}
	if len(summary.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %v", summary.Recommendations)
	}
}

func TestKeywordSummarizeWeekEmpty(t *testing.T) {
	analyzer := NewKeywordAnalyzer()
	summary, err := analyzer.SummarizeWeek(context.Background(), nil)
	if err != nil {
		t.Fatalf("SummarizeWeek failed: %v", err)
	}
	if summary.Summary != "No entries found for this week." {
		t.Fatalf("unexpected summary: %q", summary.Summary)
	}
}

func TestToEmotionAnalysisShape(t *testing.T) {
	payload := ToEmotionAnalysis(Result{
		Emotion:     "hopeful",
		Intensity:   8,
		Themes:      []string{"personal growth"},
		Suggestion:  "Capture your goals.",
		Affirmation: "You are capable.",
		MoodSummary: "Your entry suggests you're feeling hopeful.",
	})
	if payload["primary_emotion"] != "hopeful" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	actions, ok := payload["suggested_actions"].([]string)
	if !ok || len(actions) != 1 {
		t.Fatalf("suggested_actions should carry the suggestion: %v", payload["suggested_actions"])
	}
	if payload["emotion_intensity"] != 8 {
		t.Fatalf("unexpected intensity: %v", payload["emotion_intensity"])
	}
}

func TestScoreForUnknownEmotion(t *testing.T) {
	if got := ScoreFor("bewildered"); got != 3 {
		t.Fatalf("unknown emotion should score neutral, got %v", got)
	}
	if got := ScoreFor("grateful"); got != 5 {
		t.Fatalf("grateful should score 5, got %v", got)
	}
}

func TestChatResponderEmotionalPatterns(t *testing.T) {
	responder := NewChatResponder()
	recent := []journal.Entry{
		entryWithEmotion("2026-05-01", "anxious"),
		entryWithEmotion("2026-05-02", "anxious"),
	}

	reply := responder.Reply("What patterns do you notice in my mood?", recent)
	if !strings.Contains(reply, "anxious") {
		t.Fatalf("reply should name predominant emotion: %q", reply)
	}
}

func TestChatResponderWithoutEntries(t *testing.T) {
	responder := NewChatResponder()
	reply := responder.Reply("How have I been feeling?", nil)
	if !strings.Contains(reply, "don't have enough information") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestChatResponderGreeting(t *testing.T) {
	responder := NewChatResponder()
	reply := responder.Reply("hello", nil)
	if !strings.Contains(reply, "journal assistant") {
		t.Fatalf("unexpected greeting: %q", reply)
	}
}

func TestChatResponderEmptyInput(t *testing.T) {
	responder := NewChatResponder()
	reply := responder.Reply("   ", nil)
	if !strings.Contains(reply, "type a message") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestChatResponderSuggestions(t *testing.T) {
	responder := NewChatResponder()
	reply := responder.Reply("Any advice for my journaling?", nil)
	if !strings.Contains(reply, "suggestions for your journaling practice") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}
