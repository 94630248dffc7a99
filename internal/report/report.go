package report

import (
	"sort"
	"strings"

	"bujonow/internal/analysis"
	"bujonow/internal/journal"
)

// Point is one sample in a mood trend series.
type Point struct {
	Date    string  `json:"date"`
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// EmotionCount is one bar in the emotion distribution.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

// MoodTrend converts entries into a date-ordered mood series. Entries with
// an unparsable date or no stored emotion are skipped.
func MoodTrend(entries []journal.Entry) []Point {
	points := make([]Point, 0, len(entries))
	for i := range entries {
		emotion := strings.ToLower(entries[i].PrimaryEmotion())
		if emotion == "" {
			continue
		}
		if _, err := journal.ParseDate(entries[i].Date); err != nil {
			continue
		}
		points = append(points, Point{
			Date:    entries[i].Date,
			Emotion: emotion,
			Score:   analysis.ScoreFor(emotion),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// Distribution counts emotions across entries, most frequent first. Ties
// break alphabetically.
func Distribution(entries []journal.Entry) []EmotionCount {
	counts := make(map[string]int)
	for i := range entries {
		emotion := strings.ToLower(entries[i].PrimaryEmotion())
		if emotion == "" {
			continue
		}
		counts[emotion]++
	}
	distribution := make([]EmotionCount, 0, len(counts))
	for emotion, count := range counts {
		distribution = append(distribution, EmotionCount{Emotion: emotion, Count: count})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Count != distribution[j].Count {
			return distribution[i].Count > distribution[j].Count
		}
		return distribution[i].Emotion < distribution[j].Emotion
	})
	return distribution
}

// AverageScore returns the mean mood score of a trend series, or 0 when the
// series is empty.
func AverageScore(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	var total float64
	for _, point := range points {
		total += point.Score
	}
	return total / float64(len(points))
}
