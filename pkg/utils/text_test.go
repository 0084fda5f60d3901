package utils

import (
	"testing"
	"unicode/utf8"
)

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("hello", 10); got != "hello" {
		t.Errorf("short string: got %q", got)
	}
	if got := TruncateRunes("hello", 3); got != "hel..." {
		t.Errorf("truncated: got %q", got)
	}
	// Arabic is multi-byte; the cut must land on a rune boundary.
	got := TruncateRunes("الحمد لله رب العالمين", 9)
	if !utf8.ValidString(got) {
		t.Fatalf("invalid UTF-8: %q", got)
	}
	if got != "الحمد لله..." {
		t.Errorf("arabic truncate: got %q", got)
	}
}

func TestFirstRunes(t *testing.T) {
	if got := FirstRunes("سؤال طويل", 4); got != "سؤال" {
		t.Errorf("got %q", got)
	}
	if got := FirstRunes("abc", 0); got != "" {
		t.Errorf("zero max: got %q", got)
	}
	if got := FirstRunes("abc", 10); got != "abc" {
		t.Errorf("short: got %q", got)
	}
}
