package api

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bujonow/internal/analysis"
	"bujonow/internal/journal"
	"bujonow/internal/services/gemini"
	"bujonow/internal/services/whisperx"
	"bujonow/internal/uploads"
	"bujonow/internal/users"
)

type stubAnalyzer struct {
	result analysis.Result
	err    error
	calls  int
}

func (a *stubAnalyzer) AnalyzeEntry(_ context.Context, text string) (analysis.Result, error) {
	a.calls++
	return a.result, a.err
}

func (a *stubAnalyzer) SummarizeWeek(_ context.Context, entries []journal.Entry) (analysis.Summary, error) {
	if a.err != nil {
		return analysis.Summary{}, a.err
	}
	return analysis.Summary{Summary: "week summary", EmotionTrend: a.result.Emotion}, nil
}

type stubTranscriber struct {
	text string
	err  error
}

func (t *stubTranscriber) TranscribeVoiceNote(_ context.Context, source, workDir string) (whisperx.Result, error) {
	return whisperx.Result{Text: t.text}, t.err
}

type stubVision struct {
	result gemini.ImageAnalysis
	err    error
}

func (v *stubVision) AnalyzeImage(_ context.Context, mimeType string, data []byte) (gemini.ImageAnalysis, error) {
	return v.result, v.err
}

func newTestService(t *testing.T, analyzer analysis.Analyzer) *JournalService {
	t.Helper()
	root := t.TempDir()
	manager, err := users.NewManager(filepath.Join(root, "users"), nil)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	uploadStore, err := uploads.NewStore(filepath.Join(root, "uploads"), nil)
	if err != nil {
		t.Fatalf("uploads.NewStore failed: %v", err)
	}
	service, err := NewJournalService(Options{
		Users:    manager,
		Analyzer: analyzer,
		Provider: "keyword",
		Uploads:  uploadStore,
	})
	if err != nil {
		t.Fatalf("NewJournalService failed: %v", err)
	}
	return service
}

func TestRecordTextStoresAnalyzedEntry(t *testing.T) {
	analyzer := &stubAnalyzer{result: analysis.Result{Emotion: "happy", Intensity: 8}}
	service := newTestService(t, analyzer)
	ctx := context.Background()

	entry, err := service.RecordText(ctx, "hana", "2026-05-01", "A wonderful day.")
	if err != nil {
		t.Fatalf("RecordText failed: %v", err)
	}
	if entry.PrimaryEmotion() != "happy" {
		t.Fatalf("expected analysis on entry: %+v", entry.EmotionAnalysis)
	}

	loaded, err := service.Entry(ctx, "hana", "2026-05-01")
	if err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	if loaded == nil || loaded.Content.Text != "A wonderful day." {
		t.Fatalf("unexpected entry: %+v", loaded)
	}
}

func TestRecordTextRejectsEmptyText(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{})
	if _, err := service.RecordText(context.Background(), "hana", "", "   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestRecordTextRejectsInvalidDate(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{})
	if _, err := service.RecordText(context.Background(), "hana", "01-05-2026", "text"); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

func TestRecordTextSurvivesAnalysisFailure(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("api down")}
	service := newTestService(t, analyzer)

	entry, err := service.RecordText(context.Background(), "hana", "2026-05-01", "Still journaling.")
	if err != nil {
		t.Fatalf("RecordText should succeed without analysis: %v", err)
	}
	if len(entry.EmotionAnalysis) != 0 {
		t.Fatalf("expected empty analysis payload, got %+v", entry.EmotionAnalysis)
	}
}

func TestRecordTextMergesRepeatedWrites(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{})
	ctx := context.Background()

	if _, err := service.RecordText(ctx, "hana", "2026-05-01", "A"); err != nil {
		t.Fatalf("RecordText failed: %v", err)
	}
	entry, err := service.RecordText(ctx, "hana", "2026-05-01", "B")
	if err != nil {
		t.Fatalf("RecordText failed: %v", err)
	}
	if entry.Content.Text != "B \n A" {
		t.Fatalf("unexpected merged text: %q", entry.Content.Text)
	}
}

func TestEntryAbsentReturnsNil(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{})
	entry, err := service.Entry(context.Background(), "hana", "2026-05-01")
	if err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil for absent entry, got %+v", entry)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{})
	ctx := context.Background()

	if _, err := service.RecordText(ctx, "hana", "2026-05-01", "hana's entry"); err != nil {
		t.Fatalf("RecordText failed: %v", err)
	}
	entry, err := service.Entry(ctx, "jun", "2026-05-01")
	if err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	if entry != nil {
		t.Fatalf("users must not share entries: %+v", entry)
	}
}

func TestRecordVoiceTranscribesAndRecords(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{result: analysis.Result{Emotion: "content"}})
	service.transcriber = &stubTranscriber{text: "Spoken thoughts about the day."}
	ctx := context.Background()

	voice, err := service.RecordVoice(ctx, "hana", "2026-05-01", "note.m4a", strings.NewReader("audio-bytes"))
	if err != nil {
		t.Fatalf("RecordVoice failed: %v", err)
	}
	if voice.Transcript != "Spoken thoughts about the day." {
		t.Fatalf("unexpected transcript: %q", voice.Transcript)
	}
	if voice.Entry.Content.Text != voice.Transcript {
		t.Fatalf("entry text should be the transcript: %q", voice.Entry.Content.Text)
	}
	if len(voice.Entry.Content.Tags) != 1 || voice.Entry.Content.Tags[0] != "audio" {
		t.Fatalf("voice entry should be tagged audio, got %v", voice.Entry.Content.Tags)
	}

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	matches, err := service.Search(ctx, "hana", journal.SearchQuery{Start: &start, End: &end, Tags: []string{"audio"}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected voice entry to be findable by tag, got %d matches", len(matches))
	}
}

func TestRecordVoiceEmptyTranscriptFails(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{})
	service.transcriber = &stubTranscriber{text: "   "}

	_, err := service.RecordVoice(context.Background(), "hana", "", "note.m4a", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error for silent recording")
	}
}

func TestRecordPhotoTagsImageEntry(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{})
	service.vision = &stubVision{result: gemini.ImageAnalysis{
		DetectedEmotion: "happy",
		Faces:           1,
		Description:     "A person smiling at the beach.",
	}}
	ctx := context.Background()

	photo, err := service.RecordPhoto(ctx, "hana", "2026-05-01", "beach.jpg", strings.NewReader("img-bytes"), "Beach day")
	if err != nil {
		t.Fatalf("RecordPhoto failed: %v", err)
	}
	if photo.Detected != "happy" {
		t.Fatalf("unexpected detected emotion: %q", photo.Detected)
	}
	tags := photo.Entry.Content.Tags
	if len(tags) != 1 || tags[0] != "image" {
		t.Fatalf("expected image tag, got %v", tags)
	}
	summary, _ := photo.Entry.EmotionAnalysis["mood_summary"].(string)
	if !strings.Contains(summary, "Image analysis:") {
		t.Fatalf("unexpected mood summary: %q", summary)
	}
}

func TestRecordPhotoWithoutVisionStillSaves(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{})
	photo, err := service.RecordPhoto(context.Background(), "hana", "2026-05-01", "pic.png", strings.NewReader("x"), "notes")
	if err != nil {
		t.Fatalf("RecordPhoto failed: %v", err)
	}
	if photo.Entry.PrimaryEmotion() != "unknown" {
		t.Fatalf("expected unknown emotion, got %q", photo.Entry.PrimaryEmotion())
	}
}

func TestChatCreatesChatOnlyEntry(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{})
	ctx := context.Background()

	reply, err := service.Chat(ctx, "hana", "", "hello")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply == "" {
		t.Fatal("expected a reply")
	}

	today := journal.FormatDate(time.Now())
	entry, err := service.Entry(ctx, "hana", today)
	if err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	if entry == nil || entry.Category != "chat" {
		t.Fatalf("expected chat-only entry: %+v", entry)
	}
	if len(entry.Content.ChatHistory) != 2 {
		t.Fatalf("expected user+assistant messages, got %v", entry.Content.ChatHistory)
	}
}

func TestChatAppendsToExistingEntry(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{})
	ctx := context.Background()
	today := journal.FormatDate(time.Now())

	if _, err := service.RecordText(ctx, "hana", today, "Morning pages."); err != nil {
		t.Fatalf("RecordText failed: %v", err)
	}
	if _, err := service.Chat(ctx, "hana", "", "any advice?"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	entry, err := service.Entry(ctx, "hana", today)
	if err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	if entry.Content.Text != "Morning pages." {
		t.Fatalf("chat must not replace entry text: %q", entry.Content.Text)
	}
	if len(entry.Content.ChatHistory) != 2 {
		t.Fatalf("expected appended chat history, got %v", entry.Content.ChatHistory)
	}
}

func TestWeeklySummaryStoresOnFinalEntry(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{result: analysis.Result{Emotion: "hopeful"}})
	ctx := context.Background()
	today := time.Now()

	for offset := 2; offset >= 1; offset-- {
		date := journal.FormatDate(today.AddDate(0, 0, -offset))
		if _, err := service.RecordText(ctx, "hana", date, "entry text"); err != nil {
			t.Fatalf("RecordText failed: %v", err)
		}
	}

	summary, err := service.WeeklySummary(ctx, "hana", "")
	if err != nil {
		t.Fatalf("WeeklySummary failed: %v", err)
	}
	if summary.Summary != "week summary" {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	lastDate := journal.FormatDate(today.AddDate(0, 0, -1))
	entry, err := service.Entry(ctx, "hana", lastDate)
	if err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	if string(entry.Content.AISummary) != "week summary" {
		t.Fatalf("summary not persisted: %q", entry.Content.AISummary)
	}
}

func TestMoodReportCountsEmotions(t *testing.T) {
	service := newTestService(t, &stubAnalyzer{result: analysis.Result{Emotion: "happy"}})
	ctx := context.Background()

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	for day := 1; day <= 3; day++ {
		date := journal.FormatDate(time.Date(2026, 5, day, 0, 0, 0, 0, time.UTC))
		if _, err := service.RecordText(ctx, "hana", date, "entry"); err != nil {
			t.Fatalf("RecordText failed: %v", err)
		}
	}

	trend, distribution, err := service.MoodReport(ctx, "hana", &start, &end)
	if err != nil {
		t.Fatalf("MoodReport failed: %v", err)
	}
	if len(trend) != 3 {
		t.Fatalf("expected 3 trend points, got %v", trend)
	}
	if len(distribution) != 1 || distribution[0].Emotion != "happy" || distribution[0].Count != 3 {
		t.Fatalf("unexpected distribution: %v", distribution)
	}
}
