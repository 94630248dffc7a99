package main

import "testing"

func TestEmotionLabel(t *testing.T) {
	cases := map[string]string{
		"happy":   "Happy",
		"":        "Unknown",
		"  calm ": "Calm",
	}
	for input, want := range cases {
		if got := emotionLabel(input); got != want {
			t.Errorf("emotionLabel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestPreviewTruncates(t *testing.T) {
	if got := preview("short", 48); got != "short" {
		t.Fatalf("short text altered: %q", got)
	}
	long := "one two three four five six seven eight nine ten eleven twelve"
	got := preview(long, 20)
	if len([]rune(got)) != 20 {
		t.Fatalf("truncated length = %d, want 20", len([]rune(got)))
	}
	if got[len(got)-3:] != "..." {
		t.Fatalf("missing ellipsis: %q", got)
	}
}

func TestPreviewCollapsesWhitespace(t *testing.T) {
	if got := preview("a\nb\t c", 48); got != "a b c" {
		t.Fatalf("whitespace not collapsed: %q", got)
	}
}
