package analysis

import (
	"context"
	"fmt"
	"strings"

	"bujonow/internal/journal"
	"bujonow/internal/services/gemini"
)

// geminiClient is the surface of the Gemini API client this adapter needs.
type geminiClient interface {
	AnalyzeEntry(ctx context.Context, text string) (gemini.Analysis, error)
	SummarizeWeek(ctx context.Context, combined string) (gemini.WeeklySummary, error)
}

// GeminiAnalyzer adapts the Gemini API client to the Analyzer interface.
type GeminiAnalyzer struct {
	client geminiClient
}

// NewGeminiAnalyzer wraps a Gemini client.
func NewGeminiAnalyzer(client geminiClient) *GeminiAnalyzer {
	return &GeminiAnalyzer{client: client}
}

// AnalyzeEntry delegates to the API and normalizes the payload.
func (a *GeminiAnalyzer) AnalyzeEntry(ctx context.Context, text string) (Result, error) {
	payload, err := a.client.AnalyzeEntry(ctx, text)
	if err != nil {
		return Result{}, err
	}
	emotion := payload.Emotion
	if emotion == "" {
		emotion = "neutral"
	}
	return Result{
		Emotion:     emotion,
		Intensity:   intensityFor(emotion),
		Themes:      payload.Themes,
		Suggestion:  payload.Suggestion,
		Affirmation: payload.Affirmation,
		MoodSummary: fmt.Sprintf("Your entry suggests you're feeling %s.", emotion),
	}, nil
}

// SummarizeWeek joins the entry texts and delegates to the API.
func (a *GeminiAnalyzer) SummarizeWeek(ctx context.Context, entries []journal.Entry) (Summary, error) {
	if len(entries) == 0 {
		return Summary{Summary: "No entries found for this week."}, nil
	}
	texts := make([]string, 0, len(entries))
	for i := range entries {
		if text := strings.TrimSpace(entries[i].Content.Text); text != "" {
			texts = append(texts, text)
		}
	}
	payload, err := a.client.SummarizeWeek(ctx, strings.Join(texts, " "))
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Summary:         payload.Summary,
		EmotionTrend:    payload.EmotionTrend,
		Recommendations: payload.Recommendations,
	}, nil
}
