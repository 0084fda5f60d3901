package normalize

import (
	"testing"
)

func TestNormalize_Diacritics(t *testing.T) {
	n := New(nil)
	got := n.Normalize("الصَّلَاةُ")
	if got != "الصلاه" {
		t.Errorf("Normalize: got %q", got)
	}
}

func TestNormalize_HamzaFolding(t *testing.T) {
	n := New(nil)
	tests := []struct {
		in, want string
	}{
		{"أحكام", "احكام"},
		{"إسلام", "اسلام"},
		{"آيات", "ايات"},
		{"فتوى", "فتوي"},
	}
	for _, tt := range tests {
		if got := n.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_TaMarbutaWordFinal(t *testing.T) {
	n := New(nil)
	// Word-final ta marbuta folds to ha; word-internal stays.
	if got := n.Normalize("الزكاة واجبة"); got != "الزكاه واجبه" {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_Tatweel(t *testing.T) {
	n := New(nil)
	if got := n.Normalize("الصـــلاة"); got != "الصلاه" {
		t.Errorf("got %q", got)
	}
	// A trailing tatweel must not hide the word end: the ta marbuta still
	// folds on the first pass.
	if got := n.Normalize("الزكاةـ"); got != "الزكاه" {
		t.Errorf("trailing tatweel: got %q", got)
	}
}

func TestNormalize_DialectRewrite(t *testing.T) {
	n := New(nil)
	got := n.Normalize("وش حكم الصيام")
	if got != "ما حكم الصيام" {
		t.Errorf("got %q", got)
	}
	// Rewrites are whole-word only: a token containing a dialect word as a
	// substring must not change.
	if got := n.Normalize("وشاح"); got != "وشاح" {
		t.Errorf("substring rewrite: got %q", got)
	}
}

func TestNormalize_CustomDialectTable(t *testing.T) {
	n := New(map[string]string{"ايوه": "نعم"})
	if got := n.Normalize("ايوه"); got != "نعم" {
		t.Errorf("got %q", got)
	}
	// Custom table replaces the defaults entirely.
	if got := n.Normalize("وش"); got != "وش" {
		t.Errorf("default leaked through custom table: got %q", got)
	}
}

func TestNormalize_PunctuationDedupe(t *testing.T) {
	n := New(nil)
	if got := n.Normalize("ما الحكم؟؟؟"); got != "ما الحكم؟" {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_Whitespace(t *testing.T) {
	n := New(nil)
	if got := n.Normalize("  ما   حكم\tالصيام \n"); got != "ما حكم الصيام" {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_Empty(t *testing.T) {
	n := New(nil)
	if got := n.Normalize(""); got != "" {
		t.Errorf("got %q", got)
	}
	if got := n.Normalize("   "); got != "" {
		t.Errorf("whitespace-only: got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := New(nil)
	inputs := []string{
		"وش حكم الصَّلاة؟؟",
		"أريد فتوى عن الزكاة",
		"ليش إسلام",
		"هذي المسألة",
		"الزكاةـ",
		"plain latin text",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestDefaultDialectTable_KeysSurviveFolding(t *testing.T) {
	// Letter folding runs before the dialect lookup, so a key containing a
	// foldable letter would never match.
	for key := range DefaultDialectTable() {
		if got := foldLetters(key); got != key {
			t.Errorf("key %q folds to %q and can never match", key, got)
		}
	}
}

func TestDefaultDialectTable_TargetsAreFixpoints(t *testing.T) {
	// Every rewrite target must itself be stable, otherwise normalization
	// would not be idempotent.
	n := New(nil)
	for from, to := range DefaultDialectTable() {
		if got := n.Normalize(to); got != to {
			t.Errorf("target %q (from %q) not a fixpoint: got %q", to, from, got)
		}
	}
}
