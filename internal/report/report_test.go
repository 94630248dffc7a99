package report

import (
	"testing"

	"bujonow/internal/journal"
)

func entry(date, emotion string) journal.Entry {
	return journal.Entry{
		Date:            date,
		EmotionAnalysis: map[string]any{"primary_emotion": emotion},
	}
}

func TestMoodTrendOrdersByDate(t *testing.T) {
	entries := []journal.Entry{
		entry("2026-05-03", "sad"),
		entry("2026-05-01", "happy"),
		entry("2026-05-02", "grateful"),
	}
	points := MoodTrend(entries)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Date != "2026-05-01" || points[2].Date != "2026-05-03" {
		t.Fatalf("points out of order: %+v", points)
	}
	if points[0].Score != 4.2 {
		t.Fatalf("happy should score 4.2, got %v", points[0].Score)
	}
}

func TestMoodTrendSkipsUnusableEntries(t *testing.T) {
	entries := []journal.Entry{
		entry("2026-05-01", "happy"),
		{Date: "2026-05-02"},
		entry("not-a-date", "sad"),
	}
	points := MoodTrend(entries)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %+v", points)
	}
}

func TestMoodTrendUnknownEmotionScoresNeutral(t *testing.T) {
	points := MoodTrend([]journal.Entry{entry("2026-05-01", "bewildered")})
	if len(points) != 1 || points[0].Score != 3 {
		t.Fatalf("unknown emotion should score neutral: %+v", points)
	}
}

func TestDistributionSortsByFrequency(t *testing.T) {
	entries := []journal.Entry{
		entry("2026-05-01", "sad"),
		entry("2026-05-02", "happy"),
		entry("2026-05-03", "happy"),
	}
	distribution := Distribution(entries)
	if len(distribution) != 2 {
		t.Fatalf("expected 2 emotions, got %+v", distribution)
	}
	if distribution[0].Emotion != "happy" || distribution[0].Count != 2 {
		t.Fatalf("expected happy first: %+v", distribution)
	}
}

func TestAverageScore(t *testing.T) {
	points := []Point{{Score: 2}, {Score: 4}}
	if got := AverageScore(points); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := AverageScore(nil); got != 0 {
		t.Fatalf("empty series should average 0, got %v", got)
	}
}
