package whisperx

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConvertToWAVBuildsFFmpegArgs(t *testing.T) {
	service := NewService(Config{}, "ffmpeg")
	var gotName string
	var gotArgs []string
	service.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	if err := service.ConvertToWAV(context.Background(), "note.m4a", "note.wav"); err != nil {
		t.Fatalf("ConvertToWAV failed: %v", err)
	}
	if gotName != "ffmpeg" {
		t.Fatalf("expected ffmpeg, got %s", gotName)
	}
	joined := strings.Join(gotArgs, " ")
	for _, want := range []string{"-i note.m4a", "-ac 1", "-ar 16000", "-c:a pcm_s16le", "note.wav"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %s", want, joined)
		}
	}
}

func TestTranscribeFileReadsJSONOutput(t *testing.T) {
	workDir := t.TempDir()
	service := NewService(Config{Model: "small"}, "")
	service.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		if name != UVXCommand {
			t.Errorf("expected uvx, got %s", name)
		}
		joined := strings.Join(args, " ")
		if !strings.Contains(joined, "--model small") {
			t.Errorf("args missing model: %s", joined)
		}
		if !strings.Contains(joined, "--device cpu") {
			t.Errorf("args missing cpu device: %s", joined)
		}
		payload := `{"segments":[{"text":" Today was a good day. ","start":0,"end":2.5},{"text":"I went for a run.","start":2.5,"end":4}]}`
		return os.WriteFile(filepath.Join(workDir, "note.json"), []byte(payload), 0o644)
	})

	result, err := service.TranscribeFile(context.Background(), filepath.Join(workDir, "note.wav"), workDir)
	if err != nil {
		t.Fatalf("TranscribeFile failed: %v", err)
	}
	if result.Text != "Today was a good day. I went for a run." {
		t.Fatalf("unexpected transcript: %q", result.Text)
	}
}

func TestTranscribeVoiceNoteConvertsThenTranscribes(t *testing.T) {
	workDir := t.TempDir()
	service := NewService(Config{}, "")
	var calls []string
	service.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		calls = append(calls, name)
		if name == UVXCommand {
			payload := `{"segments":[{"text":"hello"}]}`
			return os.WriteFile(filepath.Join(workDir, "voice.json"), []byte(payload), 0o644)
		}
		return nil
	})

	result, err := service.TranscribeVoiceNote(context.Background(), "/tmp/voice.m4a", workDir)
	if err != nil {
		t.Fatalf("TranscribeVoiceNote failed: %v", err)
	}
	if len(calls) != 2 || calls[0] != "ffmpeg" || calls[1] != UVXCommand {
		t.Fatalf("unexpected call order: %v", calls)
	}
	if result.Text != "hello" {
		t.Fatalf("unexpected transcript: %q", result.Text)
	}
}

func TestCUDAEnabledSelectsGPUArgs(t *testing.T) {
	workDir := t.TempDir()
	service := NewService(Config{CUDAEnabled: true}, "")
	var joined string
	service.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		joined = strings.Join(args, " ")
		return os.WriteFile(filepath.Join(workDir, "note.json"), []byte(`{"segments":[]}`), 0o644)
	})

	if _, err := service.TranscribeFile(context.Background(), filepath.Join(workDir, "note.wav"), workDir); err != nil {
		t.Fatalf("TranscribeFile failed: %v", err)
	}
	if !strings.Contains(joined, "--device cuda") {
		t.Fatalf("expected cuda device args: %s", joined)
	}
	if !strings.Contains(joined, CUDAIndexURL) {
		t.Fatalf("expected cuda index url: %s", joined)
	}
}

func TestTranscribeFileRequiresSource(t *testing.T) {
	service := NewService(Config{}, "")
	if _, err := service.TranscribeFile(context.Background(), "", t.TempDir()); err == nil {
		t.Fatal("expected error for missing source")
	}
}
