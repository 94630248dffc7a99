package analysis

import (
	"context"

	"bujonow/internal/journal"
)

// Result is the normalized outcome of analyzing one journal entry.
type Result struct {
	Emotion     string
	Intensity   int
	Themes      []string
	Suggestion  string
	Affirmation string
	MoodSummary string
}

// Summary is the outcome of summarizing a week of entries.
type Summary struct {
	Summary         string
	EmotionTrend    string
	Recommendations []string
}

// Analyzer produces emotion analysis for journal entries.
type Analyzer interface {
	// AnalyzeEntry analyzes a single entry's text.
	AnalyzeEntry(ctx context.Context, text string) (Result, error)
	// SummarizeWeek summarizes a set of entries from one week.
	SummarizeWeek(ctx context.Context, entries []journal.Entry) (Summary, error)
}

// EmotionScores maps emotion labels to a 1-5 mood scale used for trend
// reporting and intensity estimates.
var EmotionScores = map[string]float64{
	"hopeless":   1,
	"angry":      1.5,
	"anxious":    1.7,
	"sad":        2,
	"frustrated": 2.2,
	"confused":   2.5,
	"neutral":    3,
	"okay":       3.2,
	"content":    3.5,
	"hopeful":    4,
	"happy":      4.2,
	"excited":    4.5,
	"grateful":   5,
}

// ScoreFor returns the mood score for an emotion label, defaulting to the
// neutral midpoint for labels outside the scale.
func ScoreFor(emotion string) float64 {
	if score, ok := EmotionScores[emotion]; ok {
		return score
	}
	return EmotionScores["neutral"]
}

// intensityFor derives a 1-10 intensity from the mood scale.
func intensityFor(emotion string) int {
	return int(ScoreFor(emotion) * 2)
}

// ToEmotionAnalysis converts a result into the document payload stored on
// journal entries.
func ToEmotionAnalysis(result Result) map[string]any {
	themes := result.Themes
	if len(themes) == 0 {
		themes = []string{"general"}
	}
	suggested := []string{}
	if result.Suggestion != "" {
		suggested = []string{result.Suggestion}
	}
	return map[string]any{
		"primary_emotion":   result.Emotion,
		"emotion_intensity": result.Intensity,
		"emotional_themes":  themes,
		"mood_summary":      result.MoodSummary,
		"suggested_actions": suggested,
		"affirmation":       result.Affirmation,
	}
}
