package analysis

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"bujonow/internal/journal"
)

// KeywordAnalyzer is the offline analyzer. It matches emotion and theme
// keywords in the entry text and never touches the network, so it works
// without an API key and gives deterministic output for the same input.
type KeywordAnalyzer struct{}

// NewKeywordAnalyzer returns the offline keyword analyzer.
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

var emotionKeywords = map[string][]string{
	"happy":     {"happy", "joy", "excited", "great", "wonderful"},
	"sad":       {"sad", "unhappy", "depressed", "down", "miserable"},
	"angry":     {"angry", "mad", "frustrated", "annoyed", "upset"},
	"anxious":   {"anxious", "worried", "nervous", "stressed", "fear"},
	"grateful":  {"grateful", "thankful", "appreciate", "blessed"},
	"motivated": {"motivated", "inspired", "energized", "determined"},
}

// emotionOrder fixes iteration order so ties resolve the same way every run.
var emotionOrder = []string{"happy", "sad", "angry", "anxious", "grateful", "motivated"}

var themeKeywords = []struct {
	theme    string
	keywords []string
}{
	{"work", []string{"work", "job", "career", "office", "boss", "colleague"}},
	{"family", []string{"family", "parent", "child", "mom", "dad", "brother", "sister"}},
	{"health", []string{"health", "exercise", "workout", "diet", "sleep", "sick"}},
	{"relationships", []string{"friend", "partner", "relationship", "date", "love"}},
	{"personal growth", []string{"goal", "learn", "improve", "growth", "develop", "progress"}},
	{"stress", []string{"stress", "overwhelm", "pressure", "burnout", "tired"}},
}

var keywordSuggestions = map[string][]string{
	"happy": {
		"Continue activities that bring you joy.",
		"Share your positive energy with others who might need it.",
		"Document what's working well so you can return to these practices.",
	},
	"sad": {
		"Be gentle with yourself during difficult times.",
		"Try a brief activity that has lifted your mood in the past.",
		"Consider reaching out to someone you trust about your feelings.",
	},
	"angry": {
		"Take a few deep breaths before responding to situations.",
		"Physical activity can help release tension from anger.",
		"Consider if there's a boundary you need to establish.",
	},
	"anxious": {
		"Practice a few minutes of mindful breathing.",
		"Break down overwhelming tasks into smaller steps.",
		"Try writing out your worries then challenge each one.",
	},
	"grateful": {
		"Continue your gratitude practice regularly.",
		"Consider expressing your appreciation directly to others.",
		"Notice how gratitude shifts your perspective on challenges.",
	},
	"motivated": {
		"Capture your goals while you're feeling motivated.",
		"Break down your inspiration into actionable steps.",
		"Schedule time to work on what's exciting you.",
	},
	"neutral": {
		"Reflect on what would bring more meaning to your day.",
		"Try a new activity that interests you.",
		"Check in with your body - are you hungry, tired, or in need of movement?",
	},
}

var keywordAffirmations = map[string]string{
	"happy":     "Your joy is a gift - both to yourself and others around you.",
	"sad":       "It's okay to not be okay. Your feelings are valid and part of being human.",
	"angry":     "Your anger offers insight into what matters to you. Listen to it, then choose your response.",
	"anxious":   "You've moved through difficult feelings before, and you have that same strength today.",
	"grateful":  "Noticing the good in your life creates more space for positivity to grow.",
	"motivated": "Your energy and vision can create meaningful change in your life.",
	"neutral":   "Each day offers new opportunities for discovery and growth.",
}

var weeklyRecommendations = []string{
	"Consider journaling at the same time each day to build a consistent habit.",
	"Try adding more detail about your emotions in future entries.",
	"Reflect on patterns you notice in your journaling over time.",
	"Consider adding a gratitude section to your journal practice.",
	"Look back at entries from a month ago to see how things have changed.",
	"Try using different journaling prompts to explore new perspectives.",
}

// AnalyzeEntry detects the dominant emotion and themes from keyword matches.
func (a *KeywordAnalyzer) AnalyzeEntry(_ context.Context, text string) (Result, error) {
	lower := strings.ToLower(text)

	emotion := "neutral"
	best := 0
	for _, name := range emotionOrder {
		count := 0
		for _, keyword := range emotionKeywords[name] {
			if strings.Contains(lower, keyword) {
				count++
			}
		}
		if count > best {
			best = count
			emotion = name
		}
	}

	var themes []string
	for _, group := range themeKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				themes = append(themes, group.theme)
				break
			}
		}
		if len(themes) == 3 {
			break
		}
	}
	if len(themes) == 0 {
		themes = []string{"general"}
	}

	suggestions := keywordSuggestions[emotion]
	suggestion := suggestions[pick(text, len(suggestions))]

	return Result{
		Emotion:     emotion,
		Intensity:   intensityFor(emotion),
		Themes:      themes,
		Suggestion:  suggestion,
		Affirmation: keywordAffirmations[emotion],
		MoodSummary: fmt.Sprintf("Your entry suggests you're feeling %s.", emotion),
	}, nil
}

// SummarizeWeek counts stored emotions across the entries and reports the
// predominant one.
func (a *KeywordAnalyzer) SummarizeWeek(_ context.Context, entries []journal.Entry) (Summary, error) {
	if len(entries) == 0 {
		return Summary{Summary: "No entries found for this week."}, nil
	}

	counts := make(map[string]int)
	for i := range entries {
		if emotion := entries[i].PrimaryEmotion(); emotion != "" && emotion != "unknown" {
			counts[emotion]++
		}
	}
	predominant := "mixed"
	best := 0
	for _, name := range sortedEmotions(counts) {
		if counts[name] > best {
			best = counts[name]
			predominant = name
		}
	}

	summary := fmt.Sprintf("You made %d journal entries this week. ", len(entries))
	if predominant != "mixed" {
		summary += fmt.Sprintf("You predominantly felt %s. ", predominant)
	} else {
		summary += "You experienced a mix of emotions. "
	}

	start := pick(summary, len(weeklyRecommendations))
	recommendations := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		recommendations = append(recommendations, weeklyRecommendations[(start+i)%len(weeklyRecommendations)])
	}

	return Summary{
		Summary:         summary,
		EmotionTrend:    predominant,
		Recommendations: recommendations,
	}, nil
}

// pick maps input text to a stable index in [0, n).
func pick(text string, n int) int {
	if n <= 0 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	return int(h.Sum32() % uint32(n))
}

// sortedEmotions fixes iteration order so ties resolve deterministically.
func sortedEmotions(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
