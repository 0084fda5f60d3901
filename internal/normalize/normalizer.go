// Package normalize canonicalizes Arabic query text before embedding.
//
// The scope is intentionally narrow: diacritic stripping, hamza folding,
// orthographic collapsing, and a small whole-word dialect-to-standard table.
// No stemming and no synonym expansion; the embedding model absorbs the
// remaining semantic variation.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const tatweel = 'ـ' // elongation character, carries no meaning

// stripMarks decomposes, removes combining marks (tashkeel), and recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizer rewrites raw query text into canonical form. It is pure and
// safe for concurrent use; the dialect table is fixed at construction.
type Normalizer struct {
	dialect map[string]string
}

// New creates a Normalizer with the given dialect-to-standard token table.
// A nil or empty table falls back to the built-in defaults.
func New(dialect map[string]string) *Normalizer {
	if len(dialect) == 0 {
		dialect = DefaultDialectTable()
	}
	table := make(map[string]string, len(dialect))
	for k, v := range dialect {
		table[k] = v
	}
	return &Normalizer{dialect: table}
}

// Normalize canonicalizes text. It is total over any input including the
// empty string, never fails, and is idempotent: a second pass is a no-op.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		// transform errors only on malformed UTF-8; keep the raw input rather than fail.
		folded = text
	}
	folded = foldLetters(folded)
	folded = dedupePunctuation(folded)

	words := strings.Fields(folded)
	for i, w := range words {
		if std, ok := n.dialect[w]; ok {
			words[i] = std
		}
	}
	return strings.Join(words, " ")
}

// foldLetters drops tatweel, then applies the orthographic collapses: the
// hamza-bearing alef variants fold to bare alef, alef maksura to ya, and
// word-final ta marbuta to ha. Tatweel goes first; it counts as a letter in
// unicode, and a trailing tatweel must not make a ta marbuta look
// word-internal.
func foldLetters(s string) string {
	in := make([]rune, 0, len(s))
	for _, r := range s {
		if r != tatweel {
			in = append(in, r)
		}
	}
	out := make([]rune, 0, len(in))
	for i, r := range in {
		switch r {
		case 'أ', 'إ', 'آ', 'ٱ':
			out = append(out, 'ا')
		case 'ى':
			out = append(out, 'ي')
		case 'ة':
			if i+1 == len(in) || !unicode.IsLetter(in[i+1]) {
				out = append(out, 'ه')
			} else {
				out = append(out, r)
			}
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

// dedupePunctuation collapses runs of the same punctuation mark ("؟؟؟" -> "؟").
func dedupePunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if r == prev && isDedupedPunct(r) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func isDedupedPunct(r rune) bool {
	switch r {
	case '?', '.', '!', ',', '،', '؛', '؟':
		return true
	}
	return false
}
