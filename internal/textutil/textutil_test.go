package textutil

import "testing"

func TestWordCount(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"went for a walk today", 5},
		{"tabs\tand\nnewlines count", 4},
	}
	for _, tc := range cases {
		if got := WordCount(tc.text); got != tc.want {
			t.Fatalf("WordCount(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestContentHashIgnoresSurroundingWhitespace(t *testing.T) {
	a := ContentHash("felt better today")
	b := ContentHash("  felt better today\n")
	if a != b {
		t.Fatalf("expected identical hashes, got %q and %q", a, b)
	}
	if a == ContentHash("felt worse today") {
		t.Fatal("different text must not collide")
	}
	if len(a) != 64 {
		t.Fatalf("unexpected digest length: %d", len(a))
	}
}

func TestSanitizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "unknown"},
		{"Hana", "hana"},
		{"user@example.com", "user_example_com"},
		{"../../etc", "etc"},
		{"__", "unknown"},
	}
	for _, tc := range cases {
		if got := SanitizeToken(tc.in); got != tc.want {
			t.Fatalf("SanitizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
