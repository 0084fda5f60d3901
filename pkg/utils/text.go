package utils

// TruncateRunes truncates s to maxRunes runes and appends "..." if truncated.
// Rune-based so multi-byte scripts (Arabic) are never cut mid-character.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// FirstRunes returns up to maxRunes runes of s with no ellipsis.
func FirstRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
