package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"bujonow/internal/journal"
	"bujonow/internal/logging"
)

// VoiceEntry is the result of recording a voice note.
type VoiceEntry struct {
	Entry      *journal.Entry
	Transcript string
	AudioPath  string
}

// RecordVoice stores the voice note, transcribes it, and records the
// transcript as the day's entry tagged "audio".
func (s *JournalService) RecordVoice(ctx context.Context, userID, date, filename string, audio io.Reader) (*VoiceEntry, error) {
	if s.uploads == nil || s.transcriber == nil {
		return nil, errors.New("voice journaling is not configured")
	}
	entryDate, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	audioPath, err := s.uploads.Save("audio", filename, audio)
	if err != nil {
		return nil, err
	}
	result, err := s.transcriber.TranscribeVoiceNote(ctx, audioPath, filepath.Dir(audioPath))
	if err != nil {
		_ = s.notifier.NotifyError(ctx, err, "voice transcription")
		return nil, fmt.Errorf("transcribe voice note: %w", err)
	}
	transcript := strings.TrimSpace(result.Text)
	if transcript == "" {
		return nil, errors.New("voice note produced no speech")
	}

	store, err := s.storeFor(userID)
	if err != nil {
		return nil, err
	}
	entry, err := store.Record(journal.EntryParams{
		Text:     transcript,
		Analysis: s.analyze(ctx, transcript),
		Date:     entryDate,
		Tags:     []string{"audio"},
	})
	if err != nil {
		_ = s.notifier.NotifyError(ctx, err, "entry store")
		return nil, err
	}

	s.logger.Info("voice entry recorded",
		logging.String(logging.FieldUser, userID),
		logging.String("date", entry.Date),
		logging.String("emotion", entry.PrimaryEmotion()))
	_ = s.notifier.NotifyEntrySaved(ctx, userID, entry.Date, entry.PrimaryEmotion())
	return &VoiceEntry{Entry: entry, Transcript: transcript, AudioPath: audioPath}, nil
}

// PhotoEntry is the result of recording a photo entry.
type PhotoEntry struct {
	Entry     *journal.Entry
	ImagePath string
	Detected  string
}

// RecordPhoto stores the photo, runs vision analysis, and records an entry
// tagged "image" carrying the detected emotion. notes becomes the entry text;
// when empty, the photo description stands in.
func (s *JournalService) RecordPhoto(ctx context.Context, userID, date, filename string, image io.Reader, notes string) (*PhotoEntry, error) {
	if s.uploads == nil {
		return nil, errors.New("photo journaling is not configured")
	}
	entryDate, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	data, err := readLimited(image)
	if err != nil {
		return nil, err
	}
	imagePath, err := s.uploads.Save("image", filename, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	emotionAnalysis := map[string]any{
		"primary_emotion":   "unknown",
		"emotion_intensity": 5,
		"emotional_themes":  []string{},
		"mood_summary":      "No content analysis available",
		"suggested_actions": []string{},
	}
	detected := ""
	if s.vision != nil {
		mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
		visionResult, visionErr := s.vision.AnalyzeImage(ctx, mimeType, data)
		if visionErr != nil {
			s.logger.Warn("photo analysis failed", logging.Error(visionErr))
			_ = s.notifier.NotifyError(ctx, visionErr, "photo analysis")
		} else {
			detected = visionResult.DetectedEmotion
			if detected == "" {
				detected = "unknown"
			}
			emotionAnalysis["primary_emotion"] = detected
			emotionAnalysis["mood_summary"] = "Image analysis: " + visionResult.Description
		}
	}

	text := strings.TrimSpace(notes)
	if text == "" {
		if summary, ok := emotionAnalysis["mood_summary"].(string); ok {
			text = summary
		}
	}

	store, err := s.storeFor(userID)
	if err != nil {
		return nil, err
	}
	entry, err := store.Record(journal.EntryParams{
		Text:     text,
		Analysis: emotionAnalysis,
		Date:     entryDate,
		Tags:     []string{"image"},
	})
	if err != nil {
		_ = s.notifier.NotifyError(ctx, err, "entry store")
		return nil, err
	}

	s.logger.Info("photo entry recorded",
		logging.String(logging.FieldUser, userID),
		logging.String("date", entry.Date),
		logging.String("emotion", detected))
	_ = s.notifier.NotifyEntrySaved(ctx, userID, entry.Date, detected)
	return &PhotoEntry{Entry: entry, ImagePath: imagePath, Detected: detected}, nil
}
